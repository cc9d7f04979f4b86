// Package advice wires the daemon's standard advice into an aspect registry.
// It is the Go rendition of the classic four logging interceptors: before,
// after-success, after-failure and around.
package advice

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/weft-go/aspect"
)

// RegisterLogging registers the four logging advice against operations
// matched by selector. Advice names are stable so repeated registration is a
// no-op.
func RegisterLogging(reg *aspect.Registry, log zerolog.Logger, selector string) error {
	err := reg.Register("log-before", selector, aspect.Before,
		func(ctx context.Context, inv *aspect.Invocation) error {
			log.Info().
				Str("invocation_id", inv.ID).
				Str("operation", inv.Operation).
				Msg("operation starting")
			return nil
		})
	if err != nil {
		return err
	}

	err = reg.Register("log-after-success", selector, aspect.AfterSuccess,
		func(ctx context.Context, inv *aspect.Invocation) error {
			log.Info().
				Str("invocation_id", inv.ID).
				Str("operation", inv.Operation).
				Dur("elapsed", inv.Elapsed()).
				Msg("operation succeeded")
			return nil
		})
	if err != nil {
		return err
	}

	err = reg.Register("log-after-failure", selector, aspect.AfterFailure,
		func(ctx context.Context, inv *aspect.Invocation) error {
			log.Error().
				Str("invocation_id", inv.ID).
				Str("operation", inv.Operation).
				Dur("elapsed", inv.Elapsed()).
				Err(inv.Err).
				Msg("operation failed")
			return nil
		})
	if err != nil {
		return err
	}

	return reg.RegisterAround("log-around", selector,
		func(next aspect.Operation) aspect.Operation {
			return func(ctx context.Context, args []any) (any, error) {
				inv := aspect.InvocationFromContext(ctx)
				log.Debug().
					Str("invocation_id", inv.ID).
					Str("operation", inv.Operation).
					Msg("entering interception pipeline")
				start := time.Now()
				result, err := next(ctx, args)
				log.Debug().
					Str("invocation_id", inv.ID).
					Str("operation", inv.Operation).
					Dur("elapsed", time.Since(start)).
					Msg("leaving interception pipeline")
				return result, err
			}
		})
}
