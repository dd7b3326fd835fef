package planning

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// Mailer sends an HTML message to one recipient. The reminder job only needs
// this much; swapping in a fake for tests is the point of the interface.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// SMTPMailer delivers through a plain SMTP relay.
type SMTPMailer struct {
	Addr string // host:port
	From string
	Auth smtp.Auth
}

func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.From)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)

	if err := smtp.SendMail(m.Addr, m.Auth, m.From, []string{to}, []byte(b.String())); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

// LogMailer logs instead of sending. Used when no SMTP relay is configured.
type LogMailer struct{}

func (LogMailer) Send(to, subject, htmlBody string) error {
	log.Printf("mail (not sent, no SMTP configured) to=%s subject=%q bytes=%d", to, subject, len(htmlBody))
	return nil
}
