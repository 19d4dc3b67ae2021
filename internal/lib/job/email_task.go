package job

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"

	"github.com/deppfellow/invoice-dashboard/internal/model"
)

const (
	// TaskInvoiceCreated is the job type name stored in Redis.
	TaskInvoiceCreated = "email:invoice_created"
)

// InvoiceCreatedPayload is the JSON payload of the invoice-created task.
type InvoiceCreatedPayload struct {
	InvoiceID  string              `json:"invoice_id"`
	CustomerID string              `json:"customer_id"`
	Amount     int64               `json:"amount"`
	Status     model.InvoiceStatus `json:"status"`
	Date       string              `json:"date"`
}

// NewInvoiceCreatedTask builds the notification task for a stored invoice.
// It retries up to 3 times on the default queue and is killed after 30s.
func NewInvoiceCreatedTask(invoice *model.Invoice) (*asynq.Task, error) {
	payload, err := json.Marshal(InvoiceCreatedPayload{
		InvoiceID:  invoice.ID,
		CustomerID: invoice.CustomerID,
		Amount:     invoice.Amount,
		Status:     invoice.Status,
		Date:       invoice.Date,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskInvoiceCreated,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
