// Package email sends transactional mail over SMTP. Sending is best-effort:
// callers run it in a goroutine and a failure is only logged, never surfaced
// to the API client.
package email

import (
	"fmt"

	"gymtrack_backend/internal/config"

	"gopkg.in/gomail.v2"
)

// Sender is what services depend on; tests swap in a recorder.
type Sender interface {
	SendWelcome(to, name string) error
	SendPaymentReceipt(to string, data ReceiptData) error
}

type SMTPSender struct {
	cfg       config.Config
	dialer    *gomail.Dialer
	templates *TemplateManager
}

// NewSender returns a nil-safe sender. When email is disabled in config the
// returned sender drops every message.
func NewSender(cfg *config.Config) (Sender, error) {
	if !cfg.Email.Enabled {
		return &noopSender{}, nil
	}

	tm, err := NewTemplateManager()
	if err != nil {
		return nil, fmt.Errorf("email templates: %w", err)
	}

	return &SMTPSender{
		cfg:       *cfg,
		dialer:    gomail.NewDialer(cfg.Email.SMTPHost, cfg.Email.SMTPPort, cfg.Email.SMTPUsername, cfg.Email.SMTPPassword),
		templates: tm,
	}, nil
}

func (s *SMTPSender) send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.Email.FromEmail, s.cfg.Email.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	return s.dialer.DialAndSend(m)
}

func (s *SMTPSender) SendWelcome(to, name string) error {
	body, err := s.templates.Render("welcome", WelcomeData{Name: name})
	if err != nil {
		return err
	}
	return s.send(to, "Your gym membership account is active", body)
}

func (s *SMTPSender) SendPaymentReceipt(to string, data ReceiptData) error {
	body, err := s.templates.Render("receipt", data)
	if err != nil {
		return err
	}
	return s.send(to, fmt.Sprintf("Payment receipt %s", data.Reference), body)
}

type noopSender struct{}

func (noopSender) SendWelcome(string, string) error              { return nil }
func (noopSender) SendPaymentReceipt(string, ReceiptData) error { return nil }
