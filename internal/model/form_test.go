package model

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceForm_Parse_Valid(t *testing.T) {
	form := InvoiceForm{CustomerID: "c1", Amount: "125.50", Status: "pending"}

	fields, fieldErrors := form.Parse()
	require.Nil(t, fieldErrors)
	require.NotNil(t, fields)

	assert.Equal(t, "c1", fields.CustomerID)
	assert.Equal(t, InvoiceStatusPending, fields.Status)
	assert.Equal(t, int64(12550), fields.AmountInCents())
}

func TestInvoiceForm_Parse_NonPositiveAmount(t *testing.T) {
	for _, amount := range []string{"0", "-5", "-0.01", "", "   ", "0.00"} {
		t.Run("amount="+amount, func(t *testing.T) {
			form := InvoiceForm{CustomerID: "c1", Amount: amount, Status: "paid"}

			fields, fieldErrors := form.Parse()
			assert.Nil(t, fields)
			assert.Equal(t, []string{MsgAmountPositive}, fieldErrors["amount"])
			assert.False(t, fieldErrors.Has("customerId"))
			assert.False(t, fieldErrors.Has("status"))
		})
	}
}

func TestInvoiceForm_Parse_AmountNotANumber(t *testing.T) {
	form := InvoiceForm{CustomerID: "c1", Amount: "twelve", Status: "paid"}

	_, fieldErrors := form.Parse()
	assert.Equal(t, []string{MsgAmountNaN}, fieldErrors["amount"])
}

func TestInvoiceForm_Parse_AmountOutOfRange(t *testing.T) {
	amounts := []string{
		"21474836.48",
		"1e20",
		"184467440737095516.21",
		"92233720368547758.08",
		"1e10000000",
		"-1e10000000",
		"1e-10000000",
		"1" + strings.Repeat("0", 70),
		"0." + strings.Repeat("0", 70) + "1",
	}

	for _, amount := range amounts {
		t.Run(amount, func(t *testing.T) {
			start := time.Now()
			fields, fieldErrors := (&InvoiceForm{CustomerID: "c1", Amount: amount, Status: "paid"}).Parse()

			assert.Nil(t, fields)
			assert.Equal(t, []string{MsgAmountTooLarge}, fieldErrors["amount"])
			assert.Less(t, time.Since(start), 100*time.Millisecond)
		})
	}
}

func TestMaxAmount_MatchesMessage(t *testing.T) {
	assert.Equal(t, int64(math.MaxInt32), maxAmount.Shift(2).IntPart())
	assert.Contains(t, MsgAmountTooLarge, "$"+maxAmount.StringFixed(2))
}

func TestInvoiceForm_Parse_Status(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{"", MsgSelectStatus},
		{"overdue", "Invalid enum value. Expected 'pending' | 'paid', received 'overdue'"},
		{"PAID", "Invalid enum value. Expected 'pending' | 'paid', received 'PAID'"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			form := InvoiceForm{CustomerID: "c1", Amount: "10", Status: tt.status}

			_, fieldErrors := form.Parse()
			assert.Equal(t, []string{tt.want}, fieldErrors["status"])
		})
	}
}

func TestInvoiceForm_Parse_AllMissing(t *testing.T) {
	_, fieldErrors := (&InvoiceForm{}).Parse()

	assert.Equal(t, []string{MsgSelectCustomer}, fieldErrors["customerId"])
	assert.Equal(t, []string{MsgAmountPositive}, fieldErrors["amount"])
	assert.Equal(t, []string{MsgSelectStatus}, fieldErrors["status"])
}

func TestInvoiceFields_AmountInCents(t *testing.T) {
	tests := []struct {
		amount string
		want   int64
	}{
		{"125.50", 12550},
		{"19.99", 1999},
		{"0.1", 10},
		{"0.015", 2},
		{"1e3", 100000},
		{" 42 ", 4200},
		{"1000000.005", 100000001},
		{"21474836.47", 2147483647},
		{"2.147483647e7", 2147483647},
		{"1e-64", 0},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			fields, fieldErrors := (&InvoiceForm{CustomerID: "c1", Amount: tt.amount, Status: "paid"}).Parse()
			require.Nil(t, fieldErrors)
			assert.Equal(t, tt.want, fields.AmountInCents())
		})
	}
}

func TestInvoiceFields_Params(t *testing.T) {
	fields, _ := (&InvoiceForm{CustomerID: "c2", Amount: "10.25", Status: "paid"}).Parse()

	// 23:30 in UTC-5 is already the next day in UTC.
	now := time.Date(2024, 3, 9, 23, 30, 0, 0, time.FixedZone("EST", -5*60*60))
	create := fields.CreateParams(now)
	assert.Equal(t, CreateInvoiceParams{CustomerID: "c2", Amount: 1025, Status: InvoiceStatusPaid, Date: "2024-03-10"}, create)

	update := fields.UpdateParams()
	assert.Equal(t, UpdateInvoiceParams{CustomerID: "c2", Amount: 1025, Status: InvoiceStatusPaid}, update)
}

func TestResultConstructors(t *testing.T) {
	assert.Equal(t, OutcomeRedirect, Redirect("/dashboard/invoices").Outcome)
	assert.Equal(t, "/dashboard/invoices", Redirect("/dashboard/invoices").RedirectTo)
	assert.Equal(t, "Failed to Create Invoice", Failed("Failed to Create Invoice").State.Message)
	assert.Equal(t, OutcomeDone, Done().Outcome)
	assert.Equal(t, "invalid", OutcomeInvalid.String())
}
