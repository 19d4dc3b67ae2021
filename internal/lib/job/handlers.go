package job

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"

	"github.com/deppfellow/invoice-dashboard/internal/config"
	"github.com/deppfellow/invoice-dashboard/internal/lib/email"
	"github.com/deppfellow/invoice-dashboard/internal/model"
)

// CompanyName signs customer-facing emails.
const CompanyName = "Acme"

// CustomerLookup resolves the recipient of a notification.
type CustomerLookup interface {
	GetCustomerByID(ctx context.Context, id string) (*model.Customer, error)
}

// InvoiceMailer delivers the invoice-created email.
type InvoiceMailer interface {
	SendInvoiceCreatedEmail(ctx context.Context, to string, data email.InvoiceCreatedData) error
}

// InitHandlers wires the dependencies the task handlers need. It must run
// before Start.
func (j *JobService) InitHandlers(cfg *config.Config, customers CustomerLookup) {
	j.mailer = email.NewClient(cfg, j.logger)
	j.customers = customers
}

// formatCents renders 15795 as "$157.95".
func formatCents(cents int64) string {
	return "$" + decimal.New(cents, -2).StringFixed(2)
}

// handleInvoiceCreatedTask emails the customer of a freshly created invoice.
// A returned error makes asynq retry the task.
func (j *JobService) handleInvoiceCreatedTask(ctx context.Context, t *asynq.Task) error {
	var p InvoiceCreatedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal invoice created payload: %w: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().
		Str("type", TaskInvoiceCreated).
		Str("invoice_id", p.InvoiceID).
		Str("customer_id", p.CustomerID).
		Logger()

	log.Info().Msg("Processing invoice created task")

	customer, err := j.customers.GetCustomerByID(ctx, p.CustomerID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load invoice customer")
		return err
	}

	err = j.mailer.SendInvoiceCreatedEmail(ctx, customer.Email, email.InvoiceCreatedData{
		CompanyName:  CompanyName,
		CustomerName: customer.Name,
		InvoiceID:    p.InvoiceID,
		Amount:       formatCents(p.Amount),
		Status:       string(p.Status),
		Date:         p.Date,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to send invoice created email")
		return err
	}

	log.Info().Msg("Successfully sent invoice created email")
	return nil
}
