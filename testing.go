package aspect

import (
	"context"
	"sync"
)

// Recorder collects the order in which advice and operations execute. It is
// intended exclusively for use in tests.
type Recorder struct {
	mu    sync.Mutex
	steps []string
}

// Record appends a step label.
func (r *Recorder) Record(step string) {
	r.mu.Lock()
	r.steps = append(r.steps, step)
	r.mu.Unlock()
}

// Steps returns a copy of the recorded step labels in execution order.
func (r *Recorder) Steps() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.steps...)
}

// Reset discards all recorded steps.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.steps = nil
	r.mu.Unlock()
}

// Advice returns advice that records label and succeeds.
func (r *Recorder) Advice(label string) Advice {
	return func(ctx context.Context, inv *Invocation) error {
		r.Record(label)
		return nil
	}
}

// FailingAdvice returns advice that records label and fails with err.
func (r *Recorder) FailingAdvice(label string, err error) Advice {
	return func(ctx context.Context, inv *Invocation) error {
		r.Record(label)
		return err
	}
}

// Around returns around advice that records label+".pre" before calling next
// and label+".post" after it returns, passing next's outcome through.
func (r *Recorder) Around(label string) AroundAdvice {
	return func(next Operation) Operation {
		return func(ctx context.Context, args []any) (any, error) {
			r.Record(label + ".pre")
			result, err := next(ctx, args)
			r.Record(label + ".post")
			return result, err
		}
	}
}

// Operation returns an operation that records label and yields the given
// result and error.
func (r *Recorder) Operation(label string, result any, err error) Operation {
	return func(ctx context.Context, args []any) (any, error) {
		r.Record(label)
		return result, err
	}
}
