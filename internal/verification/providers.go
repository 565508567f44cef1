package verification

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/unimate/unimate-backend/internal/common/logger"
)

// EmailProvider delivers a verification code to a student address.
type EmailProvider interface {
	SendCode(ctx context.Context, to, code string, expiresInMinutes int) error
}

// SendGridEmailProvider sends verification codes through SendGrid.
type SendGridEmailProvider struct {
	apiKey string
	from   string
}

func NewSendGridEmailProvider(apiKey, from string) *SendGridEmailProvider {
	return &SendGridEmailProvider{apiKey: apiKey, from: from}
}

func (p *SendGridEmailProvider) SendCode(ctx context.Context, to, code string, expiresInMinutes int) error {
	from := mail.NewEmail("Unimate", p.from)
	recipient := mail.NewEmail("", to)
	subject := "Your student verification code"
	body := fmt.Sprintf("Your verification code is: %s\n\nThis code will expire in %d minutes.",
		code, expiresInMinutes)

	message := mail.NewSingleEmail(from, subject, recipient, body, "")
	client := sendgrid.NewSendClient(p.apiKey)

	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("send email via SendGrid: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("SendGrid returned error status: %d", response.StatusCode)
	}
	return nil
}

// LogEmailProvider writes codes to the log instead of sending them.
// Used in development and tests.
type LogEmailProvider struct {
	log *logger.Logger

	// Sent records every delivery for test assertions.
	Sent []string
}

func NewLogEmailProvider(log *logger.Logger) *LogEmailProvider {
	return &LogEmailProvider{log: log}
}

func (p *LogEmailProvider) SendCode(ctx context.Context, to, code string, expiresInMinutes int) error {
	p.Sent = append(p.Sent, code)
	p.log.Info("verification code issued", "to", to, "code", code, "expires_in_minutes", expiresInMinutes)
	return nil
}
