package aspect

import "context"

// Phase identifies when advice runs relative to the wrapped operation.
type Phase int

const (
	// Before advice runs before the operation executes. A Before failure
	// blocks entry: the operation is never invoked.
	Before Phase = iota
	// AfterSuccess advice runs after the operation returns without error.
	AfterSuccess
	// AfterFailure advice runs after the operation returns an error. The
	// operation's error is still surfaced to the caller afterwards.
	AfterFailure
	// Around advice wraps the entire call, including all other phases.
	Around
)

// String returns the phase name as used in errors and logs.
func (p Phase) String() string {
	switch p {
	case Before:
		return "before"
	case AfterSuccess:
		return "after-success"
	case AfterFailure:
		return "after-failure"
	case Around:
		return "around"
	default:
		return "unknown"
	}
}

// Operation is the unit of work being intercepted. Implementations may
// either complete normally or return an error.
type Operation func(ctx context.Context, args []any) (any, error)

// Advice is a callback bound to the Before, AfterSuccess or AfterFailure
// phase of an operation call. The current Invocation is passed directly and
// is also reachable via InvocationFromContext. Returning an error aborts the
// remaining advice in the same phase.
type Advice func(ctx context.Context, inv *Invocation) error

// AroundAdvice wraps the next step in the call chain to add behavior on both
// sides of it. Pre-logic runs before calling next, post-logic after next
// returns. Post-logic must run regardless of next's error so that around
// advice keeps its "finally" shape; the returned error from next must be
// passed through unchanged.
type AroundAdvice func(next Operation) Operation
