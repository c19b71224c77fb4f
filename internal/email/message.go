package email

import (
	"context"
	"strings"
)

// Mailer delivers the password reset link. Implementations must not log the
// link itself at info level or above in production.
type Mailer interface {
	SendPasswordReset(ctx context.Context, toEmail, resetURL string) error
}

type Message struct {
	FromName  string
	FromEmail string
	ToEmail   string
	Subject   string
	TextBody  string
}

const passwordResetSubject = "Reset your gym account password"

func passwordResetBody(resetURL string) string {
	return strings.Join([]string{
		"You requested a password reset.",
		"",
		"Reset your password using this link:",
		resetURL,
		"",
		"The link expires in one hour and can be used once.",
		"If you did not request this, you can ignore this email.",
	}, "\n")
}

func formatFrom(name, addr string) string {
	if name == "" {
		return addr
	}
	return name + " <" + addr + ">"
}
