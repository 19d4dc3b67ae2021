package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/invoice-dashboard/internal/model"
	"github.com/deppfellow/invoice-dashboard/internal/sqlerr"
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const getUserByEmailSQL = `
SELECT id::text, name, email, password
FROM users
WHERE email = $1;`

// GetUserByEmail returns the user with email. An unknown email yields an
// error wrapping pgx.ErrNoRows.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.QueryRow(ctx, getUserByEmailSQL, email).
		Scan(&user.ID, &user.Name, &user.Email, &user.Password)
	if err != nil {
		return nil, fmt.Errorf("%susers: %w", sqlerr.TablePrefix, err)
	}
	return &user, nil
}

// CustomerRepository reads customers, the recipients of invoices.
type CustomerRepository struct {
	db DBTX
}

func NewCustomerRepository(db DBTX) *CustomerRepository {
	return &CustomerRepository{db: db}
}

const getCustomerByIDSQL = `
SELECT id::text, name, email, image_url
FROM customers
WHERE id = $1;`

func (r *CustomerRepository) GetCustomerByID(ctx context.Context, id string) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.QueryRow(ctx, getCustomerByIDSQL, id).
		Scan(&customer.ID, &customer.Name, &customer.Email, &customer.ImageURL)
	if err != nil {
		return nil, fmt.Errorf("%scustomers: %w", sqlerr.TablePrefix, err)
	}
	return &customer, nil
}
