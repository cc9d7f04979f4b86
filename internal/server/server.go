// Package server exposes the demo HTTP surface: the user login endpoint
// whose operation runs through the interception pipeline, plus health and
// metrics endpoints.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-json-experiment/json"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/weft-go/aspect"
	"github.com/weft-go/aspect/internal/metrics"
	"github.com/weft-go/aspect/internal/service"
)

const loginResponse = "User login endpoint called successfully!"

// Server dispatches HTTP requests into the interception pipeline.
type Server struct {
	log      zerolog.Logger
	pipeline *aspect.Pipeline
	users    *service.UserService
	router   chi.Router
}

// New creates a server routing the login endpoint through the given
// pipeline.
func New(log zerolog.Logger, pipeline *aspect.Pipeline, users *service.UserService) *Server {
	s := &Server{
		log:      log,
		pipeline: pipeline,
		users:    users,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(hlog.NewHandler(s.log))
	s.router.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Dur("elapsed", duration).
			Msg("request handled")
	}))

	s.router.Method(http.MethodGet, "/", metrics.Instrument("/", http.HandlerFunc(s.handleLogin)))
	s.router.Get("/healthz", s.handleHealth)
	s.router.Method(http.MethodGet, "/metrics", metrics.Handler())
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if _, err := s.pipeline.Invoke(r.Context(), service.OpLogIn, s.users.LogInOp()); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(loginResponse))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.MarshalWrite(w, map[string]string{"status": "ok"})
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	hlog.FromRequest(r).Error().Err(err).Msg("request failed")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.MarshalWrite(w, errorBody{Error: err.Error()})
}
