package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/invoice-dashboard/internal/model"
	"github.com/deppfellow/invoice-dashboard/internal/sqlerr"
)

const invoicesTable = "invoices"

// InvoiceRepository runs the invoice write statements. Each method issues
// exactly one statement.
type InvoiceRepository struct {
	db DBTX
}

func NewInvoiceRepository(db DBTX) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

const createInvoiceSQL = `
INSERT INTO invoices (customer_id, amount, status, date)
VALUES ($1, $2, $3, $4)
RETURNING id::text, customer_id::text, amount, status, to_char(date, 'YYYY-MM-DD');`

// Create inserts a new invoice and returns the stored row.
func (r *InvoiceRepository) Create(ctx context.Context, params model.CreateInvoiceParams) (*model.Invoice, error) {
	row := r.db.QueryRow(ctx, createInvoiceSQL, params.CustomerID, params.Amount, string(params.Status), params.Date)

	var result model.Invoice
	var status string
	if err := row.Scan(&result.ID, &result.CustomerID, &result.Amount, &status, &result.Date); err != nil {
		return nil, fmt.Errorf("%s%s: insert: %w", sqlerr.TablePrefix, invoicesTable, err)
	}
	result.Status = model.InvoiceStatus(status)

	return &result, nil
}

const updateInvoiceSQL = `
UPDATE invoices
SET customer_id = $1, amount = $2, status = $3
WHERE id = $4;`

// Update rewrites customer, amount and status of invoice id. The date is
// never touched. It returns the number of rows matched, 0 for an unknown id.
func (r *InvoiceRepository) Update(ctx context.Context, id string, params model.UpdateInvoiceParams) (int64, error) {
	tag, err := r.db.Exec(ctx, updateInvoiceSQL, params.CustomerID, params.Amount, string(params.Status), id)
	if err != nil {
		return 0, fmt.Errorf("%s%s: update %s: %w", sqlerr.TablePrefix, invoicesTable, id, err)
	}
	return tag.RowsAffected(), nil
}

const deleteInvoiceSQL = `
DELETE FROM invoices
WHERE id = $1;`

// Delete removes invoice id and returns the number of rows removed.
func (r *InvoiceRepository) Delete(ctx context.Context, id string) (int64, error) {
	tag, err := r.db.Exec(ctx, deleteInvoiceSQL, id)
	if err != nil {
		return 0, fmt.Errorf("%s%s: delete %s: %w", sqlerr.TablePrefix, invoicesTable, id, err)
	}
	return tag.RowsAffected(), nil
}
