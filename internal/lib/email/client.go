// Package email provides an email sending client.
//
// It uses Resend (resend-go) as the email provider and renders bodies from
// HTML templates embedded in the binary.
package email

import (
	"bytes"
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"github.com/deppfellow/invoice-dashboard/internal/config"
)

// sender is the part of the Resend API the client uses.
type sender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Client wraps the Resend client and a logger.
type Client struct {
	emails sender
	from   string
	logger *zerolog.Logger
}

// NewClient creates an email Client from the integration config.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	return &Client{
		emails: resend.NewClient(cfg.Integration.ResendAPIKey).Emails,
		from:   cfg.Integration.EmailFrom,
		logger: logger,
	}
}

// Render executes the named template with data.
func Render(name Template, data any) (string, error) {
	tmpl, err := lookup(name)
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", name)
	}
	return body.String(), nil
}

// SendEmail renders templateName with data and sends it to a single
// recipient.
func (c *Client) SendEmail(ctx context.Context, to, subject string, templateName Template, data any) error {
	html, err := Render(templateName, data)
	if err != nil {
		return err
	}

	sent, err := c.emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	c.logger.Debug().
		Str("template", string(templateName)).
		Str("email_id", sent.Id).
		Msg("email sent")

	return nil
}
