package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/weft-go/aspect"
	"github.com/weft-go/aspect/internal/advice"
	"github.com/weft-go/aspect/internal/config"
	"github.com/weft-go/aspect/internal/server"
	"github.com/weft-go/aspect/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the demo HTTP server. GET / invokes the user login operation
through the interception pipeline; /healthz and /metrics are operational
endpoints.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("config", "", "path to YAML config file")
	serveCmd.Flags().String("listen", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
		cfg.Listen = listen
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	registry := aspect.NewRegistry()
	if err := advice.RegisterMetrics(registry, cfg.AdviceSelector); err != nil {
		return fmt.Errorf("registering metrics advice: %w", err)
	}
	if err := advice.RegisterLogging(registry, log, cfg.AdviceSelector); err != nil {
		return fmt.Errorf("registering logging advice: %w", err)
	}
	log.Info().
		Strs("advice", registry.Names()).
		Str("selector", cfg.AdviceSelector).
		Msg("advice registry populated")

	pipeline := aspect.NewPipeline(registry)
	users := service.NewUserService(log.With().Str("component", "user-service").Logger())
	srv := server.New(log, pipeline, users)

	httpSrv := &http.Server{
		Addr:         cfg.Listen,
		Handler:      srv,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("listen", cfg.Listen).Msg("http server starting")
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")

	// Run the logout operation through the pipeline so the shutdown path
	// exercises the same advice as request handling. A failure here is
	// expected when no session is active.
	if _, err := pipeline.Invoke(context.Background(), service.OpLogOut, users.LogOutOp()); err != nil {
		if oe, ok := aspect.AsOperationError(err); ok && errors.Is(oe.Cause, service.ErrNoActiveSession) {
			log.Debug().Msg("no active session at shutdown")
		} else {
			log.Warn().Err(err).Msg("logout at shutdown failed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func newLogger(cfg *config.Config) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("parsing log level: %w", err)
	}

	var log zerolog.Logger
	if cfg.LogFormat == "console" {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log = zerolog.New(os.Stderr)
	}
	return log.Level(level).With().Timestamp().Logger(), nil
}
