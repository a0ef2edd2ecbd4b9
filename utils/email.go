// utils/email.go
package utils

import (
	"github.com/go-faster/errors"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// ErrEmailNotConfigured is returned when no SendGrid key or sender is set
var ErrEmailNotConfigured = errors.New("email is not configured: SENDGRID_API_KEY and EMAIL_SENDER are required")

// EmailService sends mail through SendGrid
type EmailService struct {
	client *sendgrid.Client
	from   *mail.Email
	logger *zap.Logger
}

// NewEmailService creates an EmailService sending from sender
func NewEmailService(apiKey, sender string, logger *zap.Logger) (*EmailService, error) {
	if apiKey == "" || sender == "" {
		return nil, ErrEmailNotConfigured
	}
	return &EmailService{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail("L'Essence", sender),
		logger: logger,
	}, nil
}

// SendEmail sends an HTML email to toEmail
func (es *EmailService) SendEmail(toEmail, subject, htmlContent string) error {
	message := mail.NewSingleEmail(es.from, subject, mail.NewEmail("", toEmail), "", htmlContent)
	resp, err := es.client.Send(message)
	if err != nil {
		return errors.Wrap(err, "failed to send email")
	}
	if resp.StatusCode >= 300 {
		return errors.Errorf("failed to send email: sendgrid answered %d: %s", resp.StatusCode, resp.Body)
	}

	es.logger.Info("email sent", zap.String("to", toEmail), zap.String("subject", subject))
	return nil
}
