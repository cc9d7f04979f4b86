package aspect

import "context"

type contextKey int

const invocationKey contextKey = iota

// InvocationFromContext returns the Invocation for the current call.
// Returns nil if the context does not originate from Pipeline.Invoke.
func InvocationFromContext(ctx context.Context) *Invocation {
	if inv, ok := ctx.Value(invocationKey).(*Invocation); ok {
		return inv
	}
	return nil
}

// withInvocation returns a context carrying the given invocation.
func withInvocation(ctx context.Context, inv *Invocation) context.Context {
	return context.WithValue(ctx, invocationKey, inv)
}
