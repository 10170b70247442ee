package mail

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridSender delivers mail through the SendGrid v3 API.
type SendGridSender struct {
	client *sendgrid.Client
	from   *sgmail.Email
}

// NewSendGridSender constructs a SendGrid-backed sender. The from address must
// be a verified sender on the SendGrid account.
func NewSendGridSender(apiKey, fromAddress, fromName string) *SendGridSender {
	return &SendGridSender{
		client: sendgrid.NewSendClient(apiKey),
		from:   sgmail.NewEmail(fromName, fromAddress),
	}
}

// SendOne submits a single-recipient HTML message. Any non-2xx provider
// response counts as a failure.
func (s *SendGridSender) SendOne(ctx context.Context, to, subject, htmlBody string) error {
	message := sgmail.NewSingleEmail(s.from, subject, sgmail.NewEmail("", to), "", htmlBody)

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send to %s: %w", to, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sendgrid send to %s: status %d", to, resp.StatusCode)
	}
	return nil
}
