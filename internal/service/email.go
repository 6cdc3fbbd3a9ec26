package service

import (
	"fmt"

	"github.com/rs/zerolog/log"
	gomail "gopkg.in/gomail.v2"
)

// Mailer is the fire-and-forget notification capability. A failed send must never
// fail the operation that triggered it.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends through a gomail dialer.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}

// sendAsync dispatches in the background and logs failures instead of surfacing them.
func sendAsync(m Mailer, to, subject, body string) {
	if m == nil {
		return
	}
	go func() {
		if err := m.Send(to, subject, body); err != nil {
			log.Warn().Err(err).Str("to", to).Str("subject", subject).Msg("email dispatch failed")
		}
	}()
}

func welcomeBody(name string) string {
	return fmt.Sprintf("Hi %s,\n\nWelcome to our store! We're excited to have you with us.\n\nHappy shopping!", name)
}

func resetBody(link string) string {
	return fmt.Sprintf("You requested a password reset.\n\nReset your password: %s\n\nThe link expires in 15 minutes. If you did not request this, please ignore this email.", link)
}

func credentialsBody(name, email, password string) string {
	return fmt.Sprintf("Hi %s,\n\nAn account has been created for you.\n\nEmail: %s\nTemporary password: %s\n\nPlease sign in and change your password.", name, email, password)
}
