package model

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/deppfellow/invoice-dashboard/internal/errs"
	"github.com/deppfellow/invoice-dashboard/internal/validation"
)

// Field messages shown next to the invoice form inputs.
const (
	MsgSelectCustomer = "Please select a customer"
	MsgAmountNaN      = "Expected number, received nan"
	MsgAmountPositive = "Please enter an amount greater than $0"
	MsgSelectStatus   = "Please select Invoice status"
	MsgAmountTooLarge = "Please enter an amount no greater than $21474836.47"
)

const (
	// maxAmountLength and maxAmountExponent bound what is parsed and
	// rescaled, so an input like 1e10000000 is rejected before any
	// arithmetic expands it.
	maxAmountLength   = 64
	maxAmountExponent = 64
)

// maxAmount is the largest amount whose cents fit the INT amount column.
var maxAmount = decimal.New(math.MaxInt32, -2)

var (
	errAmountNaN   = errors.New("amount is not a number")
	errAmountRange = errors.New("amount out of range")
)

func init() {
	validation.MustRegister("amount_number", func(fl validator.FieldLevel) bool {
		_, err := coerceAmount(fl.Field().String())
		return !errors.Is(err, errAmountNaN)
	})
	validation.MustRegister("amount_range", func(fl validator.FieldLevel) bool {
		_, err := coerceAmount(fl.Field().String())
		return !errors.Is(err, errAmountRange)
	})
	validation.MustRegister("amount_positive", func(fl validator.FieldLevel) bool {
		amount, err := coerceAmount(fl.Field().String())
		return err == nil && amount.IsPositive()
	})
}

// coerceAmount reads a submitted amount the way a form number is coerced:
// surrounding whitespace is ignored and an empty value counts as zero.
// Amounts above maxAmount, overlong input and extreme exponents are out of
// range.
func coerceAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	if len(raw) > maxAmountLength {
		return decimal.Zero, errAmountRange
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errAmountNaN
	}
	if exp := amount.Exponent(); exp > maxAmountExponent || exp < -maxAmountExponent {
		return decimal.Zero, errAmountRange
	}
	if amount.GreaterThan(maxAmount) {
		return decimal.Zero, errAmountRange
	}
	return amount, nil
}

// InvoiceForm is the raw submission of the create and edit invoice forms.
type InvoiceForm struct {
	CustomerID string `form:"customerId" json:"customerId" validate:"required"`
	Amount     string `form:"amount" json:"amount" validate:"amount_number,amount_range,amount_positive"`
	Status     string `form:"status" json:"status" validate:"required,oneof=pending paid"`
}

// Validate runs the struct-tag rules.
func (f *InvoiceForm) Validate() error {
	return validation.Struct(f)
}

// Parse validates the form. Exactly one return value is non-nil: the
// parsed fields when the form is valid, the field errors otherwise.
func (f *InvoiceForm) Parse() (*InvoiceFields, errs.FieldErrors) {
	if fieldErrors := validation.CollectFieldErrors(f.Validate(), invoiceFieldMessage); fieldErrors != nil {
		return nil, fieldErrors
	}

	amount, _ := coerceAmount(f.Amount)

	return &InvoiceFields{
		CustomerID: f.CustomerID,
		Amount:     amount,
		Status:     InvoiceStatus(f.Status),
	}, nil
}

func invoiceFieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "customerId":
		return MsgSelectCustomer
	case "amount":
		switch fe.Tag() {
		case "amount_number":
			return MsgAmountNaN
		case "amount_range":
			return MsgAmountTooLarge
		}
		return MsgAmountPositive
	case "status":
		if fe.Tag() == "oneof" {
			return fmt.Sprintf("Invalid enum value. Expected 'pending' | 'paid', received '%v'", fe.Value())
		}
		return MsgSelectStatus
	}
	return ""
}
