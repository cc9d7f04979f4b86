package service

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/weft-go/aspect"
)

// Operation names the user service registers with the pipeline.
const (
	OpLogIn  = "user.logIn"
	OpLogOut = "user.logOut"
)

// ErrNoActiveSession is returned by LogOut when no session is active.
var ErrNoActiveSession = errors.New("no active session")

// UserService is the demo business service whose operations get intercepted.
// LogIn always succeeds; LogOut fails when there is nothing to log out of.
type UserService struct {
	log      zerolog.Logger
	sessions atomic.Int64
}

// NewUserService creates a user service logging to the given logger.
func NewUserService(log zerolog.Logger) *UserService {
	return &UserService{log: log}
}

// LogIn starts a session. It never fails.
func (s *UserService) LogIn(ctx context.Context) error {
	n := s.sessions.Add(1)
	s.log.Debug().Int64("active_sessions", n).Msg("user logged in")
	return nil
}

// LogOut ends a session. It fails if no session is active.
func (s *UserService) LogOut(ctx context.Context) error {
	for {
		n := s.sessions.Load()
		if n <= 0 {
			return ErrNoActiveSession
		}
		if s.sessions.CompareAndSwap(n, n-1) {
			s.log.Debug().Int64("active_sessions", n-1).Msg("user logged out")
			return nil
		}
	}
}

// Sessions returns the number of active sessions.
func (s *UserService) Sessions() int64 {
	return s.sessions.Load()
}

// LogInOp adapts LogIn to the pipeline's operation signature.
func (s *UserService) LogInOp() aspect.Operation {
	return func(ctx context.Context, args []any) (any, error) {
		return nil, s.LogIn(ctx)
	}
}

// LogOutOp adapts LogOut to the pipeline's operation signature.
func (s *UserService) LogOutOp() aspect.Operation {
	return func(ctx context.Context, args []any) (any, error) {
		return nil, s.LogOut(ctx)
	}
}
