package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"
)

type emailsAPI interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type ResendMailer struct {
	emails   emailsAPI
	fromName string
	from     string
}

func NewResendMailer(apiKey, fromName, fromEmail string) *ResendMailer {
	return &ResendMailer{
		emails:   resend.NewClient(apiKey).Emails,
		fromName: fromName,
		from:     fromEmail,
	}
}

func (m *ResendMailer) SendPasswordReset(ctx context.Context, toEmail, resetURL string) error {
	return m.send(ctx, Message{
		FromName:  m.fromName,
		FromEmail: m.from,
		ToEmail:   toEmail,
		Subject:   passwordResetSubject,
		TextBody:  passwordResetBody(resetURL),
	})
}

func (m *ResendMailer) send(ctx context.Context, msg Message) error {
	_, err := m.emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    formatFrom(msg.FromName, msg.FromEmail),
		To:      []string{msg.ToEmail},
		Subject: msg.Subject,
		Text:    msg.TextBody,
	})
	if err != nil {
		return fmt.Errorf("resend send: %w", err)
	}
	return nil
}
