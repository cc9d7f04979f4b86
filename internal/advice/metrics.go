package advice

import (
	"context"
	"time"

	"github.com/weft-go/aspect"
	"github.com/weft-go/aspect/internal/metrics"
)

// RegisterMetrics registers around advice that records invocation counts and
// durations for operations matched by selector. It should be registered
// before the logging advice so that the timer covers the logging overhead
// too.
func RegisterMetrics(reg *aspect.Registry, selector string) error {
	return reg.RegisterAround("metrics-around", selector,
		func(next aspect.Operation) aspect.Operation {
			return func(ctx context.Context, args []any) (any, error) {
				inv := aspect.InvocationFromContext(ctx)
				start := time.Now()
				result, err := next(ctx, args)
				metrics.ObserveOperation(inv.Operation, time.Since(start), err)
				return result, err
			}
		})
}
