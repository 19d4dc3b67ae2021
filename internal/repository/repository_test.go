package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/invoice-dashboard/internal/errs"
	"github.com/deppfellow/invoice-dashboard/internal/model"
	"github.com/deppfellow/invoice-dashboard/internal/sqlerr"
)

type call struct {
	sql  string
	args []any
}

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = r.values[i].(string)
		case *int64:
			*p = r.values[i].(int64)
		}
	}
	return nil
}

type fakeDB struct {
	calls []call
	tag   pgconn.CommandTag
	row   fakeRow
	err   error
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.calls = append(f.calls, call{sql: sql, args: args})
	return f.tag, f.err
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.calls = append(f.calls, call{sql: sql, args: args})
	return f.row
}

func TestInvoiceRepository_Create(t *testing.T) {
	db := &fakeDB{row: fakeRow{values: []any{"inv-1", "c1", int64(12550), "pending", "2024-03-10"}}}
	repo := NewInvoiceRepository(db)

	invoice, err := repo.Create(context.Background(), model.CreateInvoiceParams{
		CustomerID: "c1", Amount: 12550, Status: model.InvoiceStatusPending, Date: "2024-03-10",
	})
	require.NoError(t, err)

	assert.Equal(t, &model.Invoice{ID: "inv-1", CustomerID: "c1", Amount: 12550, Status: model.InvoiceStatusPending, Date: "2024-03-10"}, invoice)
	require.Len(t, db.calls, 1)
	assert.Equal(t, []any{"c1", int64(12550), "pending", "2024-03-10"}, db.calls[0].args)
}

func TestInvoiceRepository_Create_Error(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "22P02", TableName: "invoices"}
	repo := NewInvoiceRepository(&fakeDB{row: fakeRow{err: pgErr}})

	_, err := repo.Create(context.Background(), model.CreateInvoiceParams{CustomerID: "not-a-uuid"})
	require.Error(t, err)
	assert.ErrorIs(t, err, pgErr)
	assert.Equal(t, sqlerr.InvalidTextRepresentation, sqlerr.ErrCode(err))
}

func TestInvoiceRepository_Update(t *testing.T) {
	db := &fakeDB{tag: pgconn.NewCommandTag("UPDATE 1")}
	repo := NewInvoiceRepository(db)

	n, err := repo.Update(context.Background(), "inv-1", model.UpdateInvoiceParams{
		CustomerID: "c2", Amount: 1999, Status: model.InvoiceStatusPaid,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.Len(t, db.calls, 1)
	assert.Equal(t, []any{"c2", int64(1999), "paid", "inv-1"}, db.calls[0].args)
	assert.NotContains(t, db.calls[0].sql, "date")
}

func TestInvoiceRepository_Update_UnknownID(t *testing.T) {
	repo := NewInvoiceRepository(&fakeDB{tag: pgconn.NewCommandTag("UPDATE 0")})

	n, err := repo.Update(context.Background(), "missing", model.UpdateInvoiceParams{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestInvoiceRepository_Delete(t *testing.T) {
	db := &fakeDB{tag: pgconn.NewCommandTag("DELETE 1")}
	repo := NewInvoiceRepository(db)

	n, err := repo.Delete(context.Background(), "inv-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, []any{"inv-1"}, db.calls[0].args)

	repo = NewInvoiceRepository(&fakeDB{err: errors.New("connection reset")})
	_, err = repo.Delete(context.Background(), "inv-1")
	assert.Error(t, err)
}

func TestUserRepository_GetUserByEmail(t *testing.T) {
	db := &fakeDB{row: fakeRow{values: []any{"u1", "User", "user@nextmail.com", "$2a$hash"}}}
	repo := NewUserRepository(db)

	user, err := repo.GetUserByEmail(context.Background(), "user@nextmail.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "$2a$hash", user.Password)
}

func TestUserRepository_GetUserByEmail_NotFound(t *testing.T) {
	repo := NewUserRepository(&fakeDB{row: fakeRow{err: pgx.ErrNoRows}})

	_, err := repo.GetUserByEmail(context.Background(), "nobody@nextmail.com")
	require.ErrorIs(t, err, pgx.ErrNoRows)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, sqlerr.HandleError(err), &httpErr)
	assert.Equal(t, "User not found", httpErr.Message)
}

func TestCustomerRepository_GetCustomerByID(t *testing.T) {
	db := &fakeDB{row: fakeRow{values: []any{"c1", "Lee Robinson", "lee@robinson.com", "/customers/lee.png"}}}
	repo := NewCustomerRepository(db)

	customer, err := repo.GetCustomerByID(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, &model.Customer{ID: "c1", Name: "Lee Robinson", Email: "lee@robinson.com", ImageURL: "/customers/lee.png"}, customer)
}
