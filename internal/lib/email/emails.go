package email

import (
	"context"
	"fmt"
)

// InvoiceCreatedData fills the invoice_created template.
type InvoiceCreatedData struct {
	CompanyName  string
	CustomerName string
	InvoiceID    string
	Amount       string
	Status       string
	Date         string
}

// SendInvoiceCreatedEmail tells a customer a new invoice was issued to them.
func (c *Client) SendInvoiceCreatedEmail(ctx context.Context, to string, data InvoiceCreatedData) error {
	return c.SendEmail(
		ctx,
		to,
		fmt.Sprintf("New invoice from %s", data.CompanyName),
		TemplateInvoiceCreated,
		data,
	)
}
