package aspect

import (
	"time"

	"github.com/google/uuid"
)

// Invocation carries the per-call state of one intercepted operation call.
// It is created by Pipeline.Invoke, handed to every advice for that call,
// and never reused. Result and Err are only populated once the operation has
// executed, so Before advice and around pre-logic observe their zero values.
type Invocation struct {
	ID        string    // unique per call, for log correlation
	Operation string    // operation name the call was invoked under
	Args      []any     // arguments passed to Invoke
	StartedAt time.Time // when Invoke began

	Result any   // operation result, set after execution
	Err    error // operation failure, set after execution
}

func newInvocation(operation string, args []any) *Invocation {
	return &Invocation{
		ID:        uuid.NewString(),
		Operation: operation,
		Args:      args,
		StartedAt: time.Now(),
	}
}

// Failed reports whether the operation has executed and returned an error.
func (inv *Invocation) Failed() bool {
	return inv.Err != nil
}

// Elapsed returns the time since the invocation started.
func (inv *Invocation) Elapsed() time.Duration {
	return time.Since(inv.StartedAt)
}
