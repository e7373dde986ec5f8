package notify

import (
	"context"

	"gopkg.in/gomail.v2"
)

// Email отправляет уведомления по SMTP; адрес - почтовый ящик.
type Email struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

func NewEmail(host string, port int, username, password, from, fromName string) *Email {
	return &Email{
		dialer:   gomail.NewDialer(host, port, username, password),
		from:     from,
		fromName: fromName,
	}
}

func (e *Email) Send(ctx context.Context, address, message string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", e.from, e.fromName)
	m.SetHeader("To", address)
	m.SetHeader("Subject", "PushResume notification")
	m.SetBody("text/plain", message)

	return e.dialer.DialAndSend(m)
}
