package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"os"
)

// Mailer sends transactional email over SMTP. It is constructed once at
// startup and injected into the controllers that need it.
type Mailer struct {
	From     string
	Password string
	Host     string
	Addr     string
}

func NewMailer() *Mailer {
	return &Mailer{
		From:     os.Getenv("FROM_EMAIL"),
		Password: os.Getenv("FROM_EMAIL_PASSWORD"),
		Host:     os.Getenv("FROM_EMAIL_SMTP"),
		Addr:     os.Getenv("SMTP_ADDRESS"),
	}
}

// Enabled reports whether SMTP credentials are configured. Email is
// best-effort everywhere: callers log failures and carry on.
func (m *Mailer) Enabled() bool {
	return m.From != "" && m.Addr != ""
}

type EmailData struct {
	Name    string
	Message string
	OrderID string
	Total   float64
}

func (m *Mailer) Send(emailTo string, emailSubject string, data EmailData, templatePath string) error {
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return fmt.Errorf("template parse error: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	message := fmt.Sprintf(
		"From: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		m.From,
		emailSubject,
		body.String(),
	)

	auth := smtp.PlainAuth("", m.From, m.Password, m.Host)
	if err := smtp.SendMail(m.Addr, auth, m.From, []string{emailTo}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
