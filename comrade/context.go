// Package comrade implements the Comrade lock/unlock script evaluator:
// the evaluation Context and its operator methods (spec.md §4), the
// staged Evaluator (spec.md §4.5), and the Builder that assembles them
// (spec.md §4.6).
//
// Architecturally this follows pkg/arkade.Engine — a mutable VM struct
// whose opcode handlers are receiver methods closing over shared state —
// generalized from a bytecode dispatch loop over a fixed opcode table to
// a small, fixed set of operators bound into an embedded expression
// evaluator (internal/script).
package comrade

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/ArkLabsHQ/comrade/internal/pairs"
	"github.com/ArkLabsHQ/comrade/internal/stack"
	"github.com/ArkLabsHQ/comrade/internal/value"
	"github.com/ArkLabsHQ/comrade/internal/wireformat"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/sirupsen/logrus"
)

// DefaultDomain is the path-prefix domain a Context starts with absent an
// explicit Builder.WithDomain call (spec.md §3).
const DefaultDomain = "/"

var log = logrus.WithField("component", "comrade")

// Context is the mutable evaluation state shared between an Evaluator
// and the operator closures bound into its embedded expression
// evaluator (spec.md §3). Context is safe for the single-threaded,
// cooperative re-entrancy model spec.md §5 describes: one expression
// evaluation runs to completion before the next, so a plain mutex
// suffices — there is no nested (re-entrant) acquisition from within an
// operator call.
type Context struct {
	mu sync.Mutex

	current  pairs.Pairs
	proposed pairs.Pairs
	pstack   stack.Stack
	rstack   stack.Stack

	checkCount uint64
	domain     string
}

// NewContext builds a Context over the given current/proposed stores
// with the default domain. Builder is the normal entry point; NewContext
// is exported for embeddings that want to construct a Context directly.
func NewContext(current, proposed pairs.Pairs) *Context {
	return &Context{
		current:  current,
		proposed: proposed,
		domain:   DefaultDomain,
	}
}

// SetDomain overrides the path-prefix domain used by Branch.
func (c *Context) SetDomain(domain string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.domain = domain
}

// SetCurrent overwrites the current store, the "swap current after
// unlock" step Builder performs (spec.md §4.6, §9).
func (c *Context) SetCurrent(current pairs.Pairs) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = current
}

// CheckCount reports the current monotonic failed-check counter.
func (c *Context) CheckCount() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.checkCount
}

// Returns returns a deep copy of the return stack.
func (c *Context) Returns() stack.Stack {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rstack.Clone()
}

// Params returns a deep copy of the parameter stack.
func (c *Context) Params() stack.Stack {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pstack.Clone()
}

// clone deep-copies everything try_lock isolation requires: both Pairs
// stores, both stacks, the check counter, and the domain (spec.md §4.5,
// §9). A shallow copy that aliased the stacks or stores would violate
// the isolation invariant (scenario 5, spec.md §8).
func (c *Context) clone() *Context {
	c.mu.Lock()
	defer c.mu.Unlock()
	return &Context{
		current:    c.current.Clone(),
		proposed:   c.proposed.Clone(),
		pstack:     c.pstack.Clone(),
		rstack:     c.rstack.Clone(),
		checkCount: c.checkCount,
		domain:     c.domain,
	}
}

// --- common bookkeeping (spec.md §4.3), assumes mu is already held ---

func (c *Context) succeedLocked() bool {
	c.rstack.Push(value.Success(c.checkCount))
	return true
}

func (c *Context) failLocked(msg string) bool {
	c.rstack.Push(value.Failure(msg))
	return false
}

func (c *Context) checkFailLocked(msg string) bool {
	c.checkCount++
	return c.failLocked(msg)
}

// requireWitnessLocked enforces the minimum parameter-stack arity every
// check operator needs before it can peek its witness. A shortfall is a
// check failure like any other (spec.md §9: StackUnderflow increments
// check_count via check_fail, unlike push's plain fail).
func (c *Context) requireWitnessLocked(n int) bool {
	if c.pstack.Len() < n {
		return c.checkFailLocked(fmt.Sprintf(
			"stack underflow: need %d witness(es), have %d", n, c.pstack.Len(),
		))
	}
	return true
}

// --- operators (spec.md §4.4) ---

// Push looks up key in current and, on a hit, pushes its value onto
// pstack. A miss calls fail (not check_fail — push is not a "check").
func (c *Context) Push(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.current.Get(key)
	if !ok {
		return c.failLocked(fmt.Sprintf("kvp missing key: %s", key))
	}
	c.pstack.Push(v)
	return true
}

// Branch returns domain ++ key, a literal concatenation with no
// separator inserted. Pure; no state change.
func (c *Context) Branch(key string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.domain + key
}

// CheckSignature verifies a multisig witness on top of pstack against a
// message in proposed, under a multikey stored in current (spec.md
// §4.4). The message is read from proposed (the data being authorised);
// the key is read from current (the policy) — the asymmetry that makes
// the system a credential check against an incoming candidate state.
func (c *Context) CheckSignature(keyRef, msgRef string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	keyVal, ok := c.current.Get(keyRef)
	if !ok {
		return c.checkFailLocked(fmt.Sprintf("check_signature: missing key %s", keyRef))
	}
	if !keyVal.IsBin() {
		return c.checkFailLocked(fmt.Sprintf("check_signature: %s is not binary", keyRef))
	}
	mk, err := wireformat.DecodeMultikey(keyVal.Bytes())
	if err != nil {
		log.WithError(err).Warn("check_signature: error decoding multikey")
		return c.checkFailLocked(fmt.Sprintf("check_signature: decode multikey: %v", err))
	}

	msgVal, ok := c.proposed.Get(msgRef)
	if !ok {
		return c.checkFailLocked(fmt.Sprintf("check_signature: missing message %s", msgRef))
	}
	msgBytes, ok := msgVal.AsBytes()
	if !ok {
		return c.checkFailLocked(fmt.Sprintf("check_signature: %s is neither binary nor text", msgRef))
	}
	// BIP340 schnorr signs a fixed 32-byte message digest, never an
	// arbitrary message; chainhash.NewHash enforces exactly that, the same
	// validate-then-wrap step sigvalidate.go performs on sigHash before
	// using it as a cache key. ECDSA's Verify accepts a hash of any
	// length, so this narrowing applies only to the schnorr codec — it is
	// not a spec.md §4.4 requirement, just a codec-specific guard.
	if mk.Codec() == wireformat.CodecSecp256k1Schnorr {
		if _, err := chainhash.NewHash(msgBytes); err != nil {
			return c.checkFailLocked(fmt.Sprintf("check_signature: %s is not a 32-byte digest: %v", msgRef, err))
		}
	}

	if !c.requireWitnessLocked(1) {
		return false
	}
	top, _ := c.pstack.Top()
	if !top.IsBin() {
		return c.checkFailLocked("check_signature: top of stack is not binary")
	}
	sig, err := wireformat.DecodeMultisig(top.Bytes())
	if err != nil {
		return c.checkFailLocked(fmt.Sprintf("check_signature: decode multisig: %v", err))
	}

	verifier, err := mk.Verifier(sig)
	if err != nil {
		return c.checkFailLocked(fmt.Sprintf("check_signature: %v", err))
	}
	if result := verifier.Verify(msgBytes); !result.Valid {
		return c.checkFailLocked("check_signature: signature verification failed")
	}

	c.pstack.Pop()
	return c.succeedLocked()
}

// CheckPreimage verifies that the top of pstack hashes, under the codec
// recovered from current[key], to the multihash stored there (spec.md
// §4.4).
func (c *Context) CheckPreimage(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	keyVal, ok := c.current.Get(key)
	if !ok {
		return c.checkFailLocked(fmt.Sprintf("check_preimage: missing key %s", key))
	}
	if !keyVal.IsBin() {
		return c.checkFailLocked(fmt.Sprintf("check_preimage: %s is not binary", key))
	}
	mh, err := wireformat.DecodeMultihash(keyVal.Bytes())
	if err != nil {
		return c.checkFailLocked(fmt.Sprintf("check_preimage: decode multihash: %v", err))
	}

	if !c.requireWitnessLocked(1) {
		return false
	}
	top, _ := c.pstack.Top()
	witnessBytes, ok := top.AsBytes()
	if !ok {
		return c.checkFailLocked("check_preimage: top of stack is neither binary nor text")
	}

	candidate, err := mh.HashWithSameCodec(witnessBytes)
	if err != nil {
		return c.checkFailLocked(fmt.Sprintf("check_preimage: hash witness: %v", err))
	}

	if !mh.Equal(candidate) {
		return c.checkFailLocked("check_preimage: preimage doesn't match")
	}

	c.pstack.Pop()
	return c.succeedLocked()
}

// CheckEq verifies that the top of pstack is byte-equal to current[key]
// (spec.md §4.4).
func (c *Context) CheckEq(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	keyVal, ok := c.current.Get(key)
	if !ok {
		return c.checkFailLocked(fmt.Sprintf("check_eq: missing key %s", key))
	}
	want, ok := keyVal.AsBytes()
	if !ok {
		return c.checkFailLocked(fmt.Sprintf("check_eq: %s is neither binary nor text", key))
	}

	if !c.requireWitnessLocked(1) {
		return false
	}
	top, _ := c.pstack.Top()
	got, ok := top.AsBytes()
	if !ok {
		return c.checkFailLocked("check_eq: top of stack is neither binary nor text")
	}

	if !bytes.Equal(want, got) {
		return c.checkFailLocked("check_eq: values don't match")
	}

	c.pstack.Pop()
	return c.succeedLocked()
}
