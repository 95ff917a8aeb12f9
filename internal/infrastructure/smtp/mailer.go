package smtp

import (
	"github.com/contact-form-api/internal/config"
	"gopkg.in/gomail.v2"
)

// Email is one outbound message. ReplyTo is optional.
type Email struct {
	To      string
	ReplyTo string
	Subject string
	Body    string
}

// Mailer sends emails. Fire-and-forget: one SMTP conversation per call,
// no retries.
type Mailer interface {
	Send(e Email) error
}

type mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(cfg *config.Config) Mailer {
	return &mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.SMTPFrom,
	}
}

func (m *mailer) Send(e Email) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", e.To)
	msg.SetHeader("Subject", e.Subject)
	if e.ReplyTo != "" {
		msg.SetHeader("Reply-To", e.ReplyTo)
	}
	msg.SetBody("text/plain", e.Body)
	return m.dialer.DialAndSend(msg)
}
