package notify

import (
	"gopkg.in/gomail.v2"

	"github.com/raids-lab/taskflow/pkg/config"
)

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer builds a Mailer from the SMTP section of the config.
// Returns nil when no SMTP host is configured.
func NewSMTPMailer() Mailer {
	conf := config.GetConfig()
	if conf.SMTP.Host == "" {
		return nil
	}
	return &smtpMailer{
		dialer: gomail.NewDialer(conf.SMTP.Host, conf.SMTP.Port, conf.SMTP.User, conf.SMTP.Password),
		from:   conf.SMTP.From,
	}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}
