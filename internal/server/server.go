// Package server defines the Server struct that composes the app's main
// dependencies.
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - database pool
//   - redis client
//   - background job service (asynq)
//   - http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/deppfellow/invoice-dashboard/internal/config"
	"github.com/deppfellow/invoice-dashboard/internal/database"
	"github.com/deppfellow/invoice-dashboard/internal/lib/job"
	loggerPkg "github.com/deppfellow/invoice-dashboard/internal/logger"
)

// RedisPingTimeout bounds the start-up Redis check.
const RedisPingTimeout = 5 * time.Second

// Server is the application container that holds shared resources. It is
// not the HTTP server itself.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService
	DB            *database.Database
	Redis         *redis.Client

	// Job enqueues background tasks. Its worker is started by the caller
	// once the handlers are registered.
	Job *job.JobService

	httpServer *http.Server
}

// New connects the database and Redis and builds the job service.
//
// Sessions and cache revalidation live in Redis, so an unreachable Redis
// fails start-up just like an unreachable database.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
	})

	if loggerService.GetApplication() != nil {
		redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), RedisPingTimeout)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		db.Close()
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
		Redis:         redisClient,
		Job:           job.NewJobService(logger, cfg),
	}, nil
}

// SetupHTTPServer configures the internal net/http server around handler.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server. It blocks until the server stops and returns
// nil after a graceful Shutdown.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the HTTP server, waiting for in-flight requests until ctx
// expires, then releases the job service, Redis, the database pool and the
// New Relic agent.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			shutdownErr = fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	if err := s.Redis.Close(); err != nil {
		s.Logger.Error().Err(err).Msg("failed to close redis client")
	}

	if err := s.DB.Close(); err != nil {
		shutdownErr = errors.Join(shutdownErr, fmt.Errorf("failed to close database connection: %w", err))
	}

	s.LoggerService.Shutdown()

	return shutdownErr
}
