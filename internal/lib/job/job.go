// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue:
//   - tasks are enqueued (producer) with asynq.Client
//   - a server runs workers that process them (consumer) with asynq.Server
package job

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/deppfellow/invoice-dashboard/internal/config"
	"github.com/deppfellow/invoice-dashboard/internal/model"
)

// enqueuer is the producing half of asynq.Client.
type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

// JobService holds the Asynq client (enqueue) and server (worker execution)
// together with the dependencies of the task handlers.
type JobService struct {
	client enqueuer
	server *asynq.Server
	logger *zerolog.Logger

	mailer    InvoiceMailer
	customers CustomerLookup
}

// NewJobService creates a JobService using the Redis from cfg.
//
// Queue weights give "critical" tasks the largest worker share.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			Logger:   asynqLogger{logger: logger},
			LogLevel: asynq.WarnLevel,
		},
	)

	return &JobService{
		client: asynq.NewClient(redisOpt),
		server: server,
		logger: logger,
	}
}

// Start registers the task handlers and starts the workers in the
// background. InitHandlers must have been called.
func (j *JobService) Start() error {
	if j.mailer == nil || j.customers == nil {
		return errors.New("job handlers not initialized")
	}

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskInvoiceCreated, j.handleInvoiceCreatedTask)

	j.logger.Info().Msg("Starting background job server")

	return j.server.Start(mux)
}

// EnqueueInvoiceCreated schedules the customer notification for invoice.
func (j *JobService) EnqueueInvoiceCreated(ctx context.Context, invoice *model.Invoice) error {
	task, err := NewInvoiceCreatedTask(invoice)
	if err != nil {
		return fmt.Errorf("building invoice created task: %w", err)
	}

	info, err := j.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueueing invoice created task: %w", err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Msg("enqueued invoice created task")

	return nil
}

// Stop shuts down the workers, waiting for running tasks, and closes the
// client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	if j.server != nil {
		j.server.Shutdown()
	}
	if err := j.client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}

// asynqLogger routes asynq's internal logging through zerolog.
type asynqLogger struct {
	logger *zerolog.Logger
}

func (l asynqLogger) Debug(args ...any) { l.logger.Debug().Str("component", "asynq").Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Info(args ...any)  { l.logger.Info().Str("component", "asynq").Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Warn(args ...any)  { l.logger.Warn().Str("component", "asynq").Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Error(args ...any) { l.logger.Error().Str("component", "asynq").Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Fatal(args ...any) { l.logger.Fatal().Str("component", "asynq").Msg(fmt.Sprint(args...)) }
