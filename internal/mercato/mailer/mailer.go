// Package mailer sends transactional email over SMTP. When no SMTP host is
// configured the mailer stays disabled and every send is a no-op.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type Mailer struct {
	cfg Config
}

func New(cfg Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// Enabled reports whether the mailer has an SMTP host to talk to.
func (m *Mailer) Enabled() bool {
	return m.cfg.Host != ""
}

// SendWelcome emails a short greeting to a freshly registered user.
func (m *Mailer) SendWelcome(ctx context.Context, to, username string) error {
	subject := "Welcome to mercato"
	body := fmt.Sprintf("Hi %s,\r\n\r\nYour account has been created. You can now log in with your username.\r\n", username)
	return m.send(ctx, to, subject, body)
}

func (m *Mailer) send(ctx context.Context, to, subject, body string) error {
	if !m.Enabled() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	// Plain SMTP without auth is common for local relays; only authenticate
	// when credentials are configured.
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("mailer: send to %s: %w", to, err)
	}
	return nil
}
