// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives bound
// form input from the handlers, validates it, calls the repositories and
// reports the outcome as a model.Result.
package service

import (
	"github.com/deppfellow/invoice-dashboard/internal/auth"
	"github.com/deppfellow/invoice-dashboard/internal/cache"
	"github.com/deppfellow/invoice-dashboard/internal/lib/job"
	"github.com/deppfellow/invoice-dashboard/internal/repository"
	"github.com/deppfellow/invoice-dashboard/internal/server"
)

type Services struct {
	Auth     *AuthService
	Invoices *InvoiceService
	Sessions *auth.RedisSessionStore
	Job      *job.JobService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	sessions := auth.NewRedisSessionStore(s.Redis, s.Config.Auth.SessionTTL)
	provider := auth.NewCredentialsProvider(repos.Users, sessions)

	opts := []InvoiceServiceOption{
		WithDeleteEnabled(s.Config.Invoices.DeleteEnabled),
	}
	if s.Config.Invoices.NotifyOnCreate {
		opts = append(opts, WithNotifier(s.Job))
	}

	invoices := NewInvoiceService(repos.Invoices, cache.NewRedisRevalidator(s.Redis), s.Logger, opts...)

	return &Services{
		Auth:     NewAuthService(provider, sessions, s.Logger),
		Invoices: invoices,
		Sessions: sessions,
		Job:      s.Job,
	}, nil
}
