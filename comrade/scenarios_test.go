package comrade

import (
	"crypto/sha256"
	"testing"

	"github.com/ArkLabsHQ/comrade/internal/pairs"
	"github.com/ArkLabsHQ/comrade/internal/value"
	"github.com/ArkLabsHQ/comrade/internal/wireformat"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/multiformats/go-multihash"
	"github.com/stretchr/testify/require"
)

// These scenarios mirror spec.md §8's concrete end-to-end walkthroughs.
// The literal hex fixture in scenario (1) of spec.md does not reproduce
// under sha2-256 (its multicodec prefix doesn't even match a 32-byte
// sha2-256 tag), so these tests generate their own preimage/signature
// fixtures with the real hashing and signing libraries instead of
// copying that fixture verbatim.

const proofText = "for great justice, move every zig!"

func unlockProofAndEntry() string {
	return `push("/entry/") && push("/entry/proof")`
}

func disjunctiveLock() string {
	return `check_signature("/tpubkey", "/entry/") || check_signature("/pubkey", "/entry/") || check_preimage("/hash")`
}

func TestScenarioPreimageAcceptViaDisjunction(t *testing.T) {
	sum, err := multihash.Sum([]byte(proofText), multihash.SHA2_256, -1)
	require.NoError(t, err)

	current := pairs.NewMap()
	current.Put("/hash", value.FromBytes(sum))
	proposed := pairs.NewMap()
	proposed.Put("/entry/", value.FromString("blah"))
	proposed.Put("/entry/proof", value.FromString(proofText))

	b := New(unlockProofAndEntry(), current, proposed)
	unlocked, err := b.TryUnlock()
	require.NoError(t, err)

	result, err := unlocked.TryLock(disjunctiveLock())
	require.NoError(t, err)
	require.NotNil(t, result)
	require.True(t, result.IsSuccess())
	require.EqualValues(t, 2, result.Count())
	require.Equal(t, 3, unlocked.Returns().Len())
}

func TestScenarioSignatureAcceptSecondBranch(t *testing.T) {
	priv, err := btcec.NewPrivateKey()
	require.NoError(t, err)
	digest := sha256.Sum256([]byte("message bytes being authorised"))
	sig, err := schnorr.Sign(priv, digest[:])
	require.NoError(t, err)

	current := pairs.NewMap()
	current.Put("/pubkey", value.FromBytes(wireformat.EncodeMultikeySchnorr(priv.PubKey())))
	proposed := pairs.NewMap()
	proposed.Put("/entry/", value.FromBytes(digest[:]))
	proposed.Put("/witness", value.FromBytes(wireformat.EncodeMultisigSchnorr(sig)))

	b := New(`push("/witness")`, current, proposed)
	unlocked, err := b.TryUnlock()
	require.NoError(t, err)

	result, err := unlocked.TryLock(disjunctiveLock())
	require.NoError(t, err)
	require.NotNil(t, result)
	require.True(t, result.IsSuccess())
	require.EqualValues(t, 1, result.Count())
	require.Equal(t, 2, unlocked.Returns().Len())
}

func TestScenarioAllBranchesFail(t *testing.T) {
	wrongSum, err := multihash.Sum([]byte("a completely different preimage"), multihash.SHA2_256, -1)
	require.NoError(t, err)

	current := pairs.NewMap()
	current.Put("/hash", value.FromBytes(wrongSum))
	proposed := pairs.NewMap()
	proposed.Put("/entry/", value.FromString("blah"))
	proposed.Put("/entry/proof", value.FromString(proofText))

	b := New(unlockProofAndEntry(), current, proposed)
	unlocked, err := b.TryUnlock()
	require.NoError(t, err)

	result, err := unlocked.TryLock(disjunctiveLock())
	require.NoError(t, err)
	require.NotNil(t, result)
	require.True(t, result.IsFailure())
	require.Equal(t, 3, unlocked.Returns().Len())
	require.EqualValues(t, 3, unlocked.CheckCount())
}

func TestScenarioPushMiss(t *testing.T) {
	current := pairs.NewMap()
	proposed := pairs.NewMap()

	b := New(`push("/nope")`, current, proposed)
	unlocked, err := b.TryUnlock()
	require.NoError(t, err)

	top, found := unlocked.Returns().Top()
	require.True(t, found)
	require.True(t, top.IsFailure())
	require.Equal(t, "kvp missing key: /nope", top.Message())
	require.Zero(t, unlocked.CheckCount())
}

func TestScenarioIsolationAcrossTryLockCalls(t *testing.T) {
	sum, err := multihash.Sum([]byte(proofText), multihash.SHA2_256, -1)
	require.NoError(t, err)

	current := pairs.NewMap()
	current.Put("/hash", value.FromBytes(sum))
	proposed := pairs.NewMap()
	proposed.Put("/entry/", value.FromString("blah"))
	proposed.Put("/entry/proof", value.FromString(proofText))

	b := New(unlockProofAndEntry(), current, proposed)
	unlocked, err := b.TryUnlock()
	require.NoError(t, err)

	_, err = unlocked.TryLock(disjunctiveLock())
	require.NoError(t, err)

	preReturns := unlocked.Returns()
	prePstack := unlocked.ctx.Params()
	preCheckCount := unlocked.CheckCount()

	_, err = unlocked.TryLock(`check_eq("/nonexistent")`)
	require.NoError(t, err)

	require.Equal(t, preReturns.Len(), unlocked.Returns().Len())
	require.Equal(t, prePstack.Len(), unlocked.ctx.Params().Len())
	require.Equal(t, preCheckCount, unlocked.CheckCount())
}

func TestScenarioDomainPrefixConcatenation(t *testing.T) {
	current := pairs.NewMap()
	proposed := pairs.NewMap()

	b := New(`true`, current, proposed).WithDomain("/forks/child")
	unlocked, err := b.TryUnlock()
	require.NoError(t, err)

	got := unlocked.ctx.Branch("x")
	require.Equal(t, "/forks/childx", got)
}
