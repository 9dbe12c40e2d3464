// main is the entry point of the solar marketing site.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file (plus .env and environment)
//  2. Initialise the logger
//  3. Open the SQLite lead log
//  4. Build the notifier, validator, experiment bucketer and page renderer
//  5. Register all HTTP routes behind the middleware chain
//  6. Start the HTTP server in a separate goroutine
//  7. Block until an OS signal arrives, then shut down gracefully
//
// RUNNING THE SERVER:
//
//	go run ./cmd/solar-site --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/solar-site
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sunvista/solar-site/internal/config"
	"github.com/sunvista/solar-site/internal/experiment"
	"github.com/sunvista/solar-site/internal/http/handlers/forms"
	"github.com/sunvista/solar-site/internal/notify"
	"github.com/sunvista/solar-site/internal/site"
	"github.com/sunvista/solar-site/internal/storage/sqlite"
	"github.com/sunvista/solar-site/internal/validation"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting solar-site",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// ── 3. Initialise Storage ─────────────────────────────────────────────
	storage, err := sqlite.New(cfg.StoragePath)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer storage.Close()

	log.Info("storage initialised",
		slog.String("path", cfg.StoragePath))

	// ── 4. Collaborators ──────────────────────────────────────────────────
	notifier := notify.New(cfg.Notify, log)
	if cfg.Notify.SMTPHost == "" {
		log.Warn("SMTP not configured, emails will only be logged")
	}

	bucketer := experiment.NewBucketer(cfg.Experiments, cfg.Env == "prod")

	pages, err := site.New(cfg.Site, cfg.Analytics, bucketer, log)
	if err != nil {
		log.Error("failed to parse templates",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	deps := forms.Deps{
		Storage:   storage,
		Notifier:  notifier,
		Validator: validation.New(),
		Site:      cfg.Site,
		Logger:    log,
	}

	// ── 5. Register HTTP Routes ───────────────────────────────────────────
	// newRouter (routes.go) holds the route table.
	router := newRouter(cfg, deps, bucketer, pages, log)

	if cfg.AdminToken == "" {
		log.Warn("ADMIN_TOKEN not set, lead endpoints will reject every request")
	}

	handler := withMiddleware(router, cfg.CORSOrigins, log)

	// ── 6. Create the HTTP Server ─────────────────────────────────────────
	server := &http.Server{
		Addr:         cfg.HTTPServer.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	// ── 7. Run Until Signalled ────────────────────────────────────────────
	// A listen failure or a signal cancels ctx and stops both goroutines.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutdown signal received, stopping server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error",
			slog.String("error", err.Error()))
		storage.Close()
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default:
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
