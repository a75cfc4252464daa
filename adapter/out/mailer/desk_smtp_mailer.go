// Package mailer sends outbound replies over SMTP.
package mailer

import (
	"context"
	"fmt"
	netmail "net/mail"
	"strings"

	gomail "github.com/wneessen/go-mail"

	"helpdesk_server/config"
	"helpdesk_server/core/port/out"
)

// SMTPMailer implements out.MailSender using an authenticated SMTP relay.
type SMTPMailer struct {
	host string
	port int
	user string
	pass string
}

var _ out.MailSender = (*SMTPMailer)(nil)

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPassword,
	}
}

// SendReply sends body to the address embedded in sender, replying under
// the original subject with a "RE: " prefix.
func (m *SMTPMailer) SendReply(ctx context.Context, sender, subject, body string) error {
	msg := gomail.NewMsg()

	if err := msg.From(m.user); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(extractAddress(sender)); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}

	msg.Subject("RE: " + subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	client, err := gomail.NewClient(m.host,
		gomail.WithPort(m.port),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.user),
		gomail.WithPassword(m.pass),
	)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}

	return nil
}

// extractAddress strips an RFC 5322 display name ("Alice <a@b.c>" -> "a@b.c").
// Unparseable input is passed through untouched.
func extractAddress(sender string) string {
	addr, err := netmail.ParseAddress(sender)
	if err != nil {
		return strings.TrimSpace(sender)
	}
	return addr.Address
}
