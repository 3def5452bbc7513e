// Package email sends notification mail over SMTP. A NoOp provider backs
// environments without a configured relay.
package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

type Provider interface {
	Send(ctx context.Context, to []string, subject string, body string) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type SMTPProvider struct {
	cfg Config
}

func NewSMTP(cfg Config) *SMTPProvider {
	return &SMTPProvider{cfg: cfg}
}

func (p *SMTPProvider) Send(ctx context.Context, to []string, subject string, body string) error {
	if len(to) == 0 {
		return nil
	}
	auth := smtp.PlainAuth("", p.cfg.Username, p.cfg.Password, p.cfg.Host)
	addr := fmt.Sprintf("%s:%d", p.cfg.Host, p.cfg.Port)

	msg := []byte(fmt.Sprintf(
		"To: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/plain; charset=\"UTF-8\";\r\n\r\n%s",
		strings.Join(to, ", "), subject, body,
	))
	return smtp.SendMail(addr, auth, p.cfg.From, to, msg)
}

// NoOpProvider drops mail; used when no SMTP host is configured.
type NoOpProvider struct{}

func (*NoOpProvider) Send(ctx context.Context, to []string, subject string, body string) error {
	return nil
}
