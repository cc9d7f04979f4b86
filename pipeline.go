package aspect

import (
	"context"
	"errors"
)

// Pipeline orchestrates advice around operation calls. Each call to Invoke
// gets its own Invocation and runs to completion synchronously; the pipeline
// holds no per-call state, so a single Pipeline is safe for concurrent use
// once its registry is populated.
type Pipeline struct {
	registry *Registry
}

// NewPipeline creates a pipeline dispatching against the given registry.
func NewPipeline(registry *Registry) *Pipeline {
	return &Pipeline{registry: registry}
}

// Invoke runs the operation under the advice registered for its name.
//
// Execution order: around pre-logic (outermost-registered first), Before
// advice in registration order, the operation, then AfterSuccess or
// AfterFailure advice in registration order, then around post-logic
// unwinding innermost first.
//
// A Before advice failure blocks entry: the operation never runs, After
// advice is skipped, and the caller sees an *AdviceError. An operation
// failure is routed to AfterFailure advice and then surfaced as an
// *OperationError; it is never suppressed, even when an AfterFailure advice
// itself fails (the two errors are joined). An AfterSuccess advice failure
// aborts the remaining advice in that phase and propagates in place of the
// result.
func (p *Pipeline) Invoke(ctx context.Context, operation string, op Operation, args ...any) (any, error) {
	pl := p.registry.resolve(operation)

	inv := newInvocation(operation, args)
	ctx = withInvocation(ctx, inv)

	core := func(ctx context.Context, args []any) (any, error) {
		for _, e := range pl.before {
			if err := e.advice(ctx, inv); err != nil {
				return nil, &AdviceError{Phase: Before, Advice: e.name, Op: operation, Cause: err}
			}
		}

		result, err := op(ctx, args)
		inv.Result, inv.Err = result, err

		if err != nil {
			opErr := &OperationError{Op: operation, Cause: err}
			for _, e := range pl.afterFailure {
				if aerr := e.advice(ctx, inv); aerr != nil {
					// The original failure still wins; the advice failure
					// aborts the remaining AfterFailure advice and rides
					// along on the error chain.
					return nil, errors.Join(
						opErr,
						&AdviceError{Phase: AfterFailure, Advice: e.name, Op: operation, Cause: aerr},
					)
				}
			}
			return nil, opErr
		}

		for _, e := range pl.afterSuccess {
			if aerr := e.advice(ctx, inv); aerr != nil {
				return nil, &AdviceError{Phase: AfterSuccess, Advice: e.name, Op: operation, Cause: aerr}
			}
		}
		return result, nil
	}

	// Wrap around advice so the first-registered entry is outermost:
	// its pre-logic runs first and its post-logic runs last.
	wrapped := core
	for i := len(pl.around) - 1; i >= 0; i-- {
		wrapped = pl.around[i].around(wrapped)
	}

	return wrapped(ctx, args)
}
