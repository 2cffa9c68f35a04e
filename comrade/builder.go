package comrade

import (
	"github.com/ArkLabsHQ/comrade/config"
	"github.com/ArkLabsHQ/comrade/internal/pairs"
	"github.com/google/uuid"
)

// Builder assembles an initial Context and unlock expression, runs
// unlock, and produces the Unlocked evaluator (spec.md §4.6).
type Builder struct {
	unlockExpr string
	current    pairs.Pairs
	proposed   pairs.Pairs
	domain     string
}

// New starts a Builder for the given unlock expression and stores.
func New(unlockExpr string, current, proposed pairs.Pairs) *Builder {
	return &Builder{
		unlockExpr: unlockExpr,
		current:    current,
		proposed:   proposed,
		domain:     DefaultDomain,
	}
}

// WithDomain overrides the default "/" path-prefix domain.
func (b *Builder) WithDomain(domain string) *Builder {
	b.domain = domain
	return b
}

// WithConfig applies an ambient Config's overridable defaults to the
// Builder — currently just the default domain. StrictMinimalEncoding is
// reserved for a future multikey/multisig decode-strictness knob (see
// config.Config) and has no effect yet.
func (b *Builder) WithConfig(cfg config.Config) *Builder {
	b.domain = cfg.Domain
	return b
}

// TryUnlock constructs the initial Context, runs the unlock expression,
// then performs the single most subtle contract in the core (spec.md
// §9): during unlock, both current and proposed point at the caller-
// supplied proposed store, so push (which always reads from current)
// assembles witnesses from the candidate update. Once unlock completes,
// current is overwritten with the caller-supplied policy store before
// transitioning to Unlocked.
func (b *Builder) TryUnlock() (*UnlockedEvaluator, error) {
	id := uuid.New()

	ctx := NewContext(b.proposed, b.proposed)
	ctx.SetDomain(b.domain)

	initial, err := newInitialEvaluator(ctx, id)
	if err != nil {
		return nil, err
	}

	log.WithField("evaluator_id", id).Debug("running unlock expression")
	if _, err := initial.RunUnlock(b.unlockExpr); err != nil {
		return nil, err
	}

	ctx.SetCurrent(b.current)

	return initial.Unlock()
}
