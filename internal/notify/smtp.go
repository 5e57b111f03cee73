package notify

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/dtroode/account-server/internal/model"
)

const verificationBody = `<p>Thank you for signing up. Use the code below to verify your email address:</p>
<p style="font-size: 24px; font-weight: bold; letter-spacing: 2px;">%s</p>
<p>The code expires in 24 hours. If you did not create an account, you can ignore this email.</p>`

const passwordResetBody = `<p>We received a request to reset your password. Click the link below to choose a new one:</p>
<p><a href="%s">Reset password</a></p>
<p>The link expires in 1 hour. If you did not request a reset, you can ignore this email.</p>`

const resetSuccessBody = `<p>Your password has been changed.</p>
<p>If you did not perform this change, contact support immediately.</p>`

var _ model.Notifier = (*SMTP)(nil)

// SMTP delivers account emails through an SMTP relay.
type SMTP struct {
	client *mail.Client
	from   string
}

// NewSMTP creates an SMTP notifier. Authentication is enabled only when
// a username is configured, so a local relay without auth still works.
func NewSMTP(host string, port int, username, password, from string) (*SMTP, error) {
	opts := []mail.Option{
		mail.WithPort(port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(username),
			mail.WithPassword(password),
		)
	}

	client, err := mail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}

	return &SMTP{
		client: client,
		from:   from,
	}, nil
}

// SendVerification sends the email verification code.
func (s *SMTP) SendVerification(ctx context.Context, email, token string) error {
	body := fmt.Sprintf(verificationBody, token)
	return s.send(ctx, email, "Verify your email", body)
}

// SendPasswordReset sends the password reset link.
func (s *SMTP) SendPasswordReset(ctx context.Context, email, resetURL string) error {
	body := fmt.Sprintf(passwordResetBody, resetURL)
	return s.send(ctx, email, "Reset your password", body)
}

// SendResetSuccess confirms that the password has been changed.
func (s *SMTP) SendResetSuccess(ctx context.Context, email string) error {
	return s.send(ctx, email, "Password Reset Successful", resetSuccessBody)
}

func (s *SMTP) send(ctx context.Context, to, subject, htmlBody string) error {
	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
