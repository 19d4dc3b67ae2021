// Package repository handles all interactions with the database.
//
// It contains the raw SQL statements and the methods that run them,
// keeping SQL out of the service layer.
package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/deppfellow/invoice-dashboard/internal/server"
)

// DBTX is the subset of pgxpool.Pool (and pgx.Tx) the repositories use.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories is a container for all repository instances.
type Repositories struct {
	Invoices  *InvoiceRepository
	Users     *UserRepository
	Customers *CustomerRepository
}

// NewRepositories builds every repository on the server's pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Invoices:  NewInvoiceRepository(s.DB.Pool),
		Users:     NewUserRepository(s.DB.Pool),
		Customers: NewCustomerRepository(s.DB.Pool),
	}
}
