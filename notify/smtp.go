package notify

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"
)

// SMTPConfig is the mail provider connection. Host empty means email is off.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpEmailer struct {
	cfg SMTPConfig
}

func newSMTPEmailer(cfg SMTPConfig) *smtpEmailer {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &smtpEmailer{cfg: cfg}
}

func (e *smtpEmailer) Send(ctx context.Context, to, subject, body string) error {
	addr := net.JoinHostPort(e.cfg.Host, fmt.Sprintf("%d", e.cfg.Port))

	var auth smtp.Auth
	if e.cfg.Username != "" {
		auth = smtp.PlainAuth("", e.cfg.Username, e.cfg.Password, e.cfg.Host)
	}

	msg := strings.Join([]string{
		"From: " + e.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	// smtp.SendMail has no context hook; run it in a goroutine so the
	// caller's deadline still bounds the wait.
	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, e.cfg.From, []string{to}, []byte(msg))
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
