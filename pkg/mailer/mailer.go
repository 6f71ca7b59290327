package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/subslot/subslot-backend/pkg/config"
	pkgerrors "github.com/subslot/subslot-backend/pkg/errors"
)

// Mailer dispatches one-time passcodes to an address. Implementations are
// constructed once at startup and injected into the auth service.
type Mailer interface {
	SendOTP(ctx context.Context, recipient, code string, expiryMinutes int) error
}

// SMTP sends mail through a plain-auth SMTP relay.
type SMTP struct {
	cfg config.SMTPConfig
}

// NewSMTP builds the SMTP mailer from configuration.
func NewSMTP(cfg config.SMTPConfig) *SMTP {
	return &SMTP{cfg: cfg}
}

// SendOTP delivers the verification code. It refuses to dial when the relay is
// not configured so callers can abort before mutating any account state.
func (m *SMTP) SendOTP(ctx context.Context, recipient, code string, expiryMinutes int) error {
	if m.cfg.Host == "" || m.cfg.Username == "" || m.cfg.Password == "" {
		return pkgerrors.New(pkgerrors.CodeDependency, "SMTP credentials are not configured")
	}
	if err := ctx.Err(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send otp email")
	}

	from := m.cfg.Sender()
	msg := buildMessage(from, recipient, "Your verification code", otpBody(code, expiryMinutes))

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err := smtp.SendMail(addr, auth, from, []string{recipient}, msg); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send otp email")
	}
	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("From: %s\r\n", from))
	b.WriteString(fmt.Sprintf("To: %s\r\n", to))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
	return []byte(b.String())
}

func otpBody(code string, expiryMinutes int) string {
	return fmt.Sprintf(
		"<p>Use the following code to verify your account:</p><h2>%s</h2><p>This code expires in %d minutes.</p>",
		code, expiryMinutes,
	)
}
