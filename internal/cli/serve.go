package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/deppfellow/invoice-dashboard/internal/database"
	"github.com/deppfellow/invoice-dashboard/internal/handler"
	"github.com/deppfellow/invoice-dashboard/internal/repository"
	"github.com/deppfellow/invoice-dashboard/internal/router"
	"github.com/deppfellow/invoice-dashboard/internal/server"
	"github.com/deppfellow/invoice-dashboard/internal/service"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server and the background workers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(parent context.Context) error {
	cfg, loggerService, log, err := bootstrap()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Database.MigrateOnStart {
		if err := database.Migrate(ctx, log, cfg); err != nil {
			loggerService.Shutdown()
			return fmt.Errorf("migrating database: %w", err)
		}
	}

	srv, err := server.New(cfg, log, loggerService)
	if err != nil {
		loggerService.Shutdown()
		return fmt.Errorf("initializing server: %w", err)
	}

	repos := repository.NewRepositories(srv)

	services, err := service.NewService(srv, repos)
	if err != nil {
		return errors.Join(fmt.Errorf("initializing services: %w", err), srv.Shutdown(context.Background()))
	}

	// The worker resolves customers itself, so its handlers are only ready
	// once the repositories exist.
	srv.Job.InitHandlers(cfg, repos.Customers)
	if err := srv.Job.Start(); err != nil {
		return errors.Join(fmt.Errorf("starting job server: %w", err), srv.Shutdown(context.Background()))
	}

	handlers := handler.NewHandlers(srv, services)
	srv.SetupHTTPServer(router.NewRouter(srv, handlers, services))

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	select {
	case err = <-serveErr:
		if err != nil {
			log.Error().Err(err).Msg("server stopped unexpectedly")
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		err = errors.Join(err, shutdownErr)
	}

	if err == nil {
		log.Info().Msg("server exited properly")
	}
	return err
}
