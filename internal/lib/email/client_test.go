package email

import (
	"context"
	"errors"
	"testing"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	got *resend.SendEmailRequest
	err error
}

func (f *fakeSender) SendWithContext(_ context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	f.got = params
	if f.err != nil {
		return nil, f.err
	}
	return &resend.SendEmailResponse{Id: "email-1"}, nil
}

func newTestClient(s sender) *Client {
	logger := zerolog.Nop()
	return &Client{emails: s, from: "Acme <billing@acme.test>", logger: &logger}
}

func TestRender_InvoiceCreated(t *testing.T) {
	html, err := Render(TemplateInvoiceCreated, PreviewData[TemplateInvoiceCreated])
	require.NoError(t, err)

	assert.Contains(t, html, "Hi Lee Robinson,")
	assert.Contains(t, html, "$157.95")
	assert.Contains(t, html, "2024-03-10")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, err := Render(Template("welcome"), nil)
	assert.Error(t, err)
}

func TestSendInvoiceCreatedEmail(t *testing.T) {
	fake := &fakeSender{}
	client := newTestClient(fake)

	data := InvoiceCreatedData{CompanyName: "Acme", CustomerName: "Delba", Amount: "$10.00"}
	require.NoError(t, client.SendInvoiceCreatedEmail(context.Background(), "delba@oliveira.com", data))

	require.NotNil(t, fake.got)
	assert.Equal(t, "Acme <billing@acme.test>", fake.got.From)
	assert.Equal(t, []string{"delba@oliveira.com"}, fake.got.To)
	assert.Equal(t, "New invoice from Acme", fake.got.Subject)
	assert.Contains(t, fake.got.Html, "Hi Delba,")
}

func TestSendEmail_ProviderError(t *testing.T) {
	client := newTestClient(&fakeSender{err: errors.New("rate limited")})

	err := client.SendInvoiceCreatedEmail(context.Background(), "x@y.z", InvoiceCreatedData{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}
