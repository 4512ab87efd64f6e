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

	"kitchen/cmd"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config, err := cmd.LoadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: config.LogLevel}))
	slog.SetDefault(logger)

	app, err := cmd.NewCompositionRoot(config, logger)
	if err != nil {
		log.Fatalf("Failed to start terminal: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, app, config.HTTPPort, logger); err != nil {
		logger.Error("terminal stopped", "error", err)
		os.Exit(1)
	}
}

// run blocks until ctx is cancelled or a component fails, then shuts
// everything down in reverse order.
func run(ctx context.Context, app *cmd.CompositionRoot, port string, logger *slog.Logger) error {
	e, err := newWebServer(app)
	if err != nil {
		return errors.Join(err, app.Close())
	}

	if err = app.JobManager().StartAll(); err != nil {
		return errors.Join(err, app.Close())
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", "port", port)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		coordinator := app.Coordinator()
		return app.Listener().Run(gctx, func(channel string) {
			logger.Debug("change signal", "channel", channel)
			coordinator.Trigger(gctx)
		})
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		app.JobManager().StopAll()
		return errors.Join(e.Shutdown(shutdownCtx), app.Shutdown(shutdownCtx))
	})

	return g.Wait()
}

func newWebServer(app *cmd.CompositionRoot) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	if err := app.Server().Register(e); err != nil {
		return nil, err
	}
	return e, nil
}
