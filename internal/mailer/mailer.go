package mailer

import (
	"log"

	gomail "gopkg.in/gomail.v2"
)

// Mailer sends a single outbound message to one recipient.
type Mailer interface {
	Send(to, subject, text, html string) error
}

// SMTPMailer delivers mail through an authenticated SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer constructs a mailer for the given SMTP relay.
func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *SMTPMailer) Send(to, subject, text, html string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", text)
	if html != "" {
		msg.AddAlternative("text/html", html)
	}

	return m.dialer.DialAndSend(msg)
}

// LogMailer writes messages to the process log instead of sending them.
// Used when no SMTP credentials are configured.
type LogMailer struct{}

func (LogMailer) Send(to, subject, text, _ string) error {
	log.Printf("[mail] to=%s subject=%q body=%q", to, subject, text)
	return nil
}
