package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"

	"bookstore/internal/domain"
)

// Mailer delivers transactional mail. Implementations must be safe for
// concurrent use.
type Mailer interface {
	SendWelcome(to, username string) error
	SendOrderConfirmation(to string, order *domain.Order) error
}

// SMTP sends mail through a plain SMTP relay.
type SMTP struct {
	addr string
	from string
	log  zerolog.Logger
}

func NewSMTP(addr, from string, log zerolog.Logger) *SMTP {
	return &SMTP{addr: addr, from: from, log: log.With().Str("component", "mailer").Logger()}
}

func (m *SMTP) SendWelcome(to, username string) error {
	body := fmt.Sprintf("Hi %s,\r\n\r\nYour bookstore account is ready.\r\n", username)
	return m.send(to, "Welcome to the bookstore", body)
}

func (m *SMTP) SendOrderConfirmation(to string, order *domain.Order) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Order #%d placed %s\r\n\r\n", order.ID, order.CreatedAt.Format("2006-01-02 15:04 MST"))
	for _, it := range order.Items {
		fmt.Fprintf(&b, "%d x %s @ %s\r\n", it.Quantity, it.BookTitle, it.UnitPrice.StringFixed(2))
	}
	fmt.Fprintf(&b, "\r\nTotal: %s\r\n", order.Total.StringFixed(2))
	return m.send(to, fmt.Sprintf("Order confirmation #%d", order.ID), b.String())
}

func (m *SMTP) send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.from, to, subject, body)
	if err := smtp.SendMail(m.addr, nil, m.from, []string{to}, []byte(msg)); err != nil {
		m.log.Error().Err(err).Str("to", to).Msg("send mail")
		return err
	}
	return nil
}

// Noop discards all mail. Used when no SMTP relay is configured and in tests.
type Noop struct{}

func (Noop) SendWelcome(string, string) error                  { return nil }
func (Noop) SendOrderConfirmation(string, *domain.Order) error { return nil }

var (
	_ Mailer = (*SMTP)(nil)
	_ Mailer = Noop{}
)
