// Package cli provides common CLI initialization utilities for cmd/saldo.
package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"saldo/internal/backend"
	"saldo/internal/config"
	apphttp "saldo/internal/http"
	"saldo/internal/log"
	"saldo/internal/persistence"
	"saldo/internal/store"
	"saldo/internal/view"
)

// SetupLogger builds the application logger from cfg and sets it as the
// default logger. An unknown level falls back to info.
func SetupLogger(cfg *config.Config) *log.Logger {
	level, _ := log.ParseLevel(cfg.LogLevel)
	logger := log.New(log.Config{
		Level:     level,
		Format:    cfg.LogFormat,
		Component: log.ComponentApp,
		Output:    os.Stdout,
	})
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// A missing file is not an error; a malformed one is.
func LoadEnvFile(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// LoadAndValidateConfig loads configuration from the environment and validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// App is the assembled application.
type App struct {
	Server  *apphttp.Server
	Store   *store.Store
	cleanup backend.CleanupFunc
	timeout time.Duration
	logger  *log.Logger
}

// Build wires slot, persistence, store, formatter and server from cfg.
func Build(ctx context.Context, cfg *config.Config, logger *log.Logger) (*App, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	res, err := backend.NewFactory(logger).CreateSlot(ctx, bcfg)
	if err != nil {
		return nil, fmt.Errorf("create slot: %w", err)
	}

	adapter, err := persistence.NewAdapter(res.Slot, cfg.SlotKey, logger)
	if err != nil {
		_ = res.Close()
		return nil, fmt.Errorf("create persistence adapter: %w", err)
	}
	st := store.Open(ctx, adapter, store.Options{Logger: logger})

	fm, err := view.NewFormatter(view.FormatterConfig{
		Locale:   cfg.Locale,
		Currency: cfg.Currency,
		Layout:   cfg.DateLayout,
	})
	if err != nil {
		_ = res.Close()
		return nil, fmt.Errorf("create formatter: %w", err)
	}

	srv, err := apphttp.NewServer(apphttp.Options{
		Addr:               cfg.Addr(),
		Store:              st,
		Formatter:          fm,
		Logger:             logger,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	})
	if err != nil {
		_ = res.Close()
		return nil, fmt.Errorf("create server: %w", err)
	}

	logger.Info("Application ready",
		log.FieldBackend, bcfg.Type.String(),
		log.FieldSlotKey, adapter.Key(),
		log.FieldCount, st.Len())

	return &App{
		Server:  srv,
		Store:   st,
		cleanup: res.Cleanup,
		timeout: cfg.ShutdownTimeout,
		logger:  logger,
	}, nil
}

// Serve runs the server on ln until ctx is cancelled, then shuts it down
// within the configured timeout and releases the slot.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("Starting saldo server", "addr", ln.Addr().String())
		if err := a.Server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("Shutting down", log.FieldOperation, log.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()
		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http: %w", err)
		}
		return nil
	})

	err := g.Wait()
	if cerr := a.Close(); cerr != nil {
		a.logger.Error("Slot cleanup failed", log.FieldError, cerr)
		if err == nil {
			err = cerr
		}
	}
	if err == nil {
		a.logger.Info("Server stopped gracefully")
	}
	return err
}

// Close releases the slot. Later calls do nothing.
func (a *App) Close() error {
	cleanup := a.cleanup
	a.cleanup = nil
	if cleanup == nil {
		return nil
	}
	return cleanup()
}

// Run loads the environment, builds the application and serves until
// SIGINT or SIGTERM.
func Run() error {
	if err := LoadEnvFile(); err != nil {
		return err
	}
	cfg, err := LoadAndValidateConfig()
	if err != nil {
		return err
	}
	logger := SetupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := Build(ctx, cfg, logger)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		_ = app.Close()
		return fmt.Errorf("listen on %s: %w", cfg.Addr(), err)
	}
	return app.Serve(ctx, ln)
}
