package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Config holds SMTP settings for the email notification channel.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// Sender delivers reminder notifications over SMTP. It satisfies
// notifier.PlatformNotifier so the scheduler can treat email like any
// other delivery channel.
type Sender struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

func New(cfg Config) *Sender {
	return &Sender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		to:     cfg.To,
	}
}

func (s *Sender) Send(title, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.to)
	m.SetHeader("Subject", title)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send notification email: %w", err)
	}
	return nil
}
