package comrade

import (
	"github.com/ArkLabsHQ/comrade/internal/comradeerr"
	"github.com/ArkLabsHQ/comrade/internal/script"
	"github.com/ArkLabsHQ/comrade/internal/stack"
	"github.com/ArkLabsHQ/comrade/internal/value"
	"github.com/google/uuid"
)

// initialFuncs registers the operators available before unlock has run:
// push and branch (spec.md §4.5, §6).
func initialFuncs(ctx *Context) []script.Func {
	return []script.Func{
		{
			Name: "push", Arity: 1, Returns: script.ResultBool,
			BoolFn: func(args []string) bool { return ctx.Push(args[0]) },
		},
		{
			Name: "branch", Arity: 1, Returns: script.ResultStr,
			StrFn: func(args []string) string { return ctx.Branch(args[0]) },
		},
	}
}

// unlockedFuncs registers the operators available once unlocked:
// check_signature, check_preimage, and check_eq (spec.md §4.5, §6).
// check_eq is marked optional in spec.md's table but is registered
// unconditionally here — see SPEC_FULL.md's "Open questions resolved".
func unlockedFuncs(ctx *Context) []script.Func {
	return []script.Func{
		{
			Name: "check_signature", Arity: 2, Returns: script.ResultBool,
			BoolFn: func(args []string) bool { return ctx.CheckSignature(args[0], args[1]) },
		},
		{
			Name: "check_preimage", Arity: 1, Returns: script.ResultBool,
			BoolFn: func(args []string) bool { return ctx.CheckPreimage(args[0]) },
		},
		{
			Name: "check_eq", Arity: 1, Returns: script.ResultBool,
			BoolFn: func(args []string) bool { return ctx.CheckEq(args[0]) },
		},
	}
}

// InitialEvaluator is the evaluator stage that only exposes
// witness-assembly operators. The unlock expression runs in this stage
// and populates pstack from proposed (spec.md §4.5).
type InitialEvaluator struct {
	ctx *Context
	eng *script.Evaluator
	id  uuid.UUID
}

func newInitialEvaluator(ctx *Context, id uuid.UUID) (*InitialEvaluator, error) {
	eng, err := script.New(initialFuncs(ctx))
	if err != nil {
		return nil, comradeerr.Wrap(comradeerr.ScriptError, "build initial evaluator", err)
	}
	return &InitialEvaluator{ctx: ctx, eng: eng, id: id}, nil
}

// RunUnlock compiles and evaluates the unlock expression, populating
// pstack as a side effect. It reports the expression's own boolean
// result (spec.md §6); a push miss surfaces as that boolean being
// false, not as a Go error — only script-engine failures (compile/eval
// errors) propagate as errors (spec.md §7).
func (e *InitialEvaluator) RunUnlock(expr string) (bool, error) {
	if expr == "" {
		return false, comradeerr.New(comradeerr.NoScriptLoaded, "no unlock expression loaded")
	}
	ok, err := e.eng.Run(expr)
	if err != nil {
		return false, comradeerr.Wrap(comradeerr.ScriptError, "run unlock expression", err)
	}
	return ok, nil
}

// Unlock transitions the Initial evaluator to Unlocked, consuming e. The
// same Context carries forward; only the registered operator set
// changes (spec.md §4.5).
func (e *InitialEvaluator) Unlock() (*UnlockedEvaluator, error) {
	eng, err := script.New(unlockedFuncs(e.ctx))
	if err != nil {
		return nil, comradeerr.Wrap(comradeerr.ScriptError, "build unlocked evaluator", err)
	}
	log.WithField("evaluator_id", e.id).Debug("stage transition: initial -> unlocked")
	return &UnlockedEvaluator{ctx: e.ctx, eng: eng, id: e.id}, nil
}

// UnlockedEvaluator is the evaluator stage that additionally exposes
// verifying operators. Lock expressions run here, always via TryLock so
// a failed attempt leaves no residue on the caller's own Context
// (spec.md §4.5).
type UnlockedEvaluator struct {
	ctx *Context
	eng *script.Evaluator
	id  uuid.UUID
}

// TryLock clones the Context, evaluates lockExpr against the clone under
// a transient evaluator sharing the same embedded expression evaluator
// shape but closing over the clone, and returns the clone's rstack top.
// The caller's own Context — its stacks and check counter — is
// unaffected (spec.md §4.5, §9, invariant/scenario 5).
func (e *UnlockedEvaluator) TryLock(lockExpr string) (*value.Value, error) {
	if lockExpr == "" {
		return nil, comradeerr.New(comradeerr.NoScriptLoaded, "no lock expression loaded")
	}

	clone := e.ctx.clone()
	eng, err := script.New(unlockedFuncs(clone))
	if err != nil {
		return nil, comradeerr.Wrap(comradeerr.ScriptError, "try_lock: build evaluator", err)
	}

	log.WithField("evaluator_id", e.id).Debug("try_lock: clone acquired")
	defer log.WithField("evaluator_id", e.id).Debug("try_lock: clone discarded")

	if _, err := eng.Run(lockExpr); err != nil {
		return nil, comradeerr.Wrap(comradeerr.ScriptError, "try_lock: run lock expression", err)
	}

	top, ok := clone.rstack.Top()
	if !ok {
		// spec.md §6: "absence of a top indicates the expression
		// evaluated without invoking any check — implementation-
		// defined; treat as rejection." We return (nil, nil) rather
		// than manufacturing a Failure marker that never ran.
		return nil, nil
	}
	return &top, nil
}

// Returns returns a clone of the Context's return stack.
func (e *UnlockedEvaluator) Returns() stack.Stack {
	return e.ctx.Returns()
}

// CheckCount reports the Context's monotonic failed-check counter.
func (e *UnlockedEvaluator) CheckCount() uint64 {
	return e.ctx.CheckCount()
}
