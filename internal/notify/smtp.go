package notify

import (
	"context"
	"fmt"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"
)

type SMTPOptions struct {
	Host     string
	Port     int
	User     string
	Pass     string
	From     string
	FromName string
}

// SMTPNotifier sends mail through a relay. STARTTLS is negotiated when the
// server offers it; credentials are only sent when User is set.
type SMTPNotifier struct {
	addr string
	from mail.Address
	auth smtp.Auth
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPNotifier(opts SMTPOptions) *SMTPNotifier {
	host := strings.TrimSpace(opts.Host)
	port := opts.Port
	if port <= 0 {
		port = 587
	}
	from := strings.TrimSpace(opts.From)
	if from == "" {
		from = "no-reply@example.com"
	}

	n := &SMTPNotifier{
		addr: net.JoinHostPort(host, strconv.Itoa(port)),
		from: mail.Address{Name: opts.FromName, Address: from},
		send: smtp.SendMail,
	}
	if opts.User != "" {
		n.auth = smtp.PlainAuth("", opts.User, opts.Pass, host)
	}
	return n
}

func (n *SMTPNotifier) Notify(ctx context.Context, recipient, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	to, err := mail.ParseAddress(recipient)
	if err != nil {
		return fmt.Errorf("recipient %q: %w", recipient, err)
	}

	msg := buildMessage(n.from.String(), to.String(), subject, body)
	if err := n.send(n.addr, n.auth, n.from.Address, []string{to.Address}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to.Address, err)
	}
	return nil
}

func buildMessage(from, to, subject, body string) string {
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		from,
		to,
		subject,
		body,
	)
}
