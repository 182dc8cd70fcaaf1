// Package mailer delivers outbound mail over SMTP.
package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"

	"smart-bulb-backend/internal/config"

	"github.com/jordan-wright/email"
)

// implicitTLSPort is the SMTPS port; every other port negotiates STARTTLS.
const implicitTLSPort = "465"

// Message is a single plain-text email.
type Message struct {
	FromName    string
	FromAddress string
	To          string
	Subject     string
	Body        string
}

// Mailer sends one message and reports whether the transport accepted it.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
}

func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
	}
}

// Send delivers msg. It blocks until the SMTP exchange completes; ctx is
// only consulted before dialing.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e := compose(msg)
	addr := net.JoinHostPort(m.host, m.port)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	tlsConfig := &tls.Config{ServerName: m.host}

	var err error
	if m.port == implicitTLSPort {
		err = e.SendWithTLS(addr, auth, tlsConfig)
	} else {
		err = e.SendWithStartTLS(addr, auth, tlsConfig)
	}
	if err != nil {
		return fmt.Errorf("sending mail to %s via %s: %w", msg.To, addr, err)
	}
	return nil
}

func compose(msg Message) *email.Email {
	e := email.NewEmail()
	e.From = fmt.Sprintf("%s <%s>", msg.FromName, msg.FromAddress)
	e.To = []string{msg.To}
	e.Subject = msg.Subject
	e.Text = []byte(msg.Body)
	return e
}
