// Package model holds the domain types shared by repositories, services and
// handlers: invoices and their form input, the form state returned to the
// client, users and customers.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the payment state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// Valid reports whether s is a member of the enum.
func (s InvoiceStatus) Valid() bool {
	return s == InvoiceStatusPending || s == InvoiceStatusPaid
}

// DateLayout is the storage format of Invoice.Date.
const DateLayout = "2006-01-02"

// Invoice is a row of the invoices table. Amount is in cents.
type Invoice struct {
	ID         string        `json:"id"`
	CustomerID string        `json:"customer_id"`
	Amount     int64         `json:"amount"`
	Status     InvoiceStatus `json:"status"`
	Date       string        `json:"date"`
}

// CreateInvoiceParams carries the values of a single INSERT.
type CreateInvoiceParams struct {
	CustomerID string
	Amount     int64
	Status     InvoiceStatus
	Date       string
}

// UpdateInvoiceParams carries the mutable columns of a single UPDATE.
// The invoice id and date are never part of it.
type UpdateInvoiceParams struct {
	CustomerID string
	Amount     int64
	Status     InvoiceStatus
}

// InvoiceFields is a validated InvoiceForm.
type InvoiceFields struct {
	CustomerID string
	Amount     decimal.Decimal
	Status     InvoiceStatus
}

// AmountInCents converts the major-unit amount to cents, rounding half away
// from zero: 125.50 -> 12550, 19.99 -> 1999, 0.015 -> 2.
func (f *InvoiceFields) AmountInCents() int64 {
	return f.Amount.Shift(2).Round(0).IntPart()
}

// CreateParams builds the INSERT values, stamping the UTC day of now.
func (f *InvoiceFields) CreateParams(now time.Time) CreateInvoiceParams {
	return CreateInvoiceParams{
		CustomerID: f.CustomerID,
		Amount:     f.AmountInCents(),
		Status:     f.Status,
		Date:       now.UTC().Format(DateLayout),
	}
}

// UpdateParams builds the UPDATE values.
func (f *InvoiceFields) UpdateParams() UpdateInvoiceParams {
	return UpdateInvoiceParams{
		CustomerID: f.CustomerID,
		Amount:     f.AmountInCents(),
		Status:     f.Status,
	}
}
