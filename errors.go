package aspect

import (
	"errors"
	"fmt"
)

// AdviceError reports a failed advice callback. It aborts the remaining
// advice in the same phase; for the Before phase it also blocks the
// operation from executing.
type AdviceError struct {
	Phase  Phase
	Advice string
	Op     string
	Cause  error
}

func (e *AdviceError) Error() string {
	return fmt.Sprintf("%s advice %q failed for operation %s: %v", e.Phase, e.Advice, e.Op, e.Cause)
}

func (e *AdviceError) Unwrap() error {
	return e.Cause
}

// OperationError reports a failure of the wrapped operation itself. The
// pipeline never suppresses it; AfterFailure advice observe it and then it
// is surfaced to the caller.
type OperationError struct {
	Op    string
	Cause error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("operation %s failed: %v", e.Op, e.Cause)
}

func (e *OperationError) Unwrap() error {
	return e.Cause
}

// AsAdviceError unwraps err to an AdviceError, if one is in the chain.
func AsAdviceError(err error) (*AdviceError, bool) {
	var ae *AdviceError
	ok := errors.As(err, &ae)
	return ae, ok
}

// AsOperationError unwraps err to an OperationError, if one is in the chain.
func AsOperationError(err error) (*OperationError, bool) {
	var oe *OperationError
	ok := errors.As(err, &oe)
	return oe, ok
}
