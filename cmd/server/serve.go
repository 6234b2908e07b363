package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/saulo-duarte/yt-study-api/internal/config"
	"github.com/saulo-duarte/yt-study-api/internal/container"
	"github.com/saulo-duarte/yt-study-api/internal/session"
)

const (
	shutdownGrace   = 10 * time.Second
	janitorInterval = time.Minute
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := ctx.ensureSettings()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				settings.Port = port
				if err := settings.Validate(); err != nil {
					return err
				}
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(runCtx, settings)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (overrides PORT)")
	return cmd
}

func serve(ctx context.Context, settings config.Settings) error {
	log := config.Logger.WithField("component", "server")

	c, err := container.New(ctx, settings)
	if err != nil {
		return err
	}
	session.StartJanitor(ctx, c.SessionContainer.Store, janitorInterval, c.QuizContainer.Repository)

	srv := &http.Server{
		Addr:              settings.Addr(),
		Handler:           c.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).WithField("environment", settings.Environment).Info("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
