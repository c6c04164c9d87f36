package infra

import (
	"bytes"
	"errors"
	"fmt"
	"net/smtp"

	"tunik/internal/config"

	"github.com/jordan-wright/email"
)

// ErrMailDisabled is returned when SMTP_HOST is not configured.
var ErrMailDisabled = errors.New("mailer: smtp not configured")

// Attachment is an in-memory file attached to an outgoing message.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// Mailer sends plain-text messages through SMTP. Every send goes through a
// circuit breaker so a dead relay fails fast instead of stalling the workers.
type Mailer struct {
	host     string
	user     string
	password string
	from     string
	addr     string
	cb       *CircuitBreaker

	// send is swapped in tests.
	send func(e *email.Email, addr string, auth smtp.Auth) error
}

func NewMailer(cfg *config.Config, cb *CircuitBreaker) *Mailer {
	from := cfg.MailFrom
	if from == "" {
		from = cfg.SMTPUser
	}
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     from,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		cb:       cb,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

func (m *Mailer) Enabled() bool { return m != nil && m.host != "" }

// Breaker exposes the circuit breaker for health reporting.
func (m *Mailer) Breaker() *CircuitBreaker { return m.cb }

// Send delivers one message.
func (m *Mailer) Send(to, subject, body string, attachments ...Attachment) error {
	if !m.Enabled() {
		return ErrMailDisabled
	}
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	for _, a := range attachments {
		if _, err := e.Attach(bytes.NewReader(a.Data), a.Name, a.ContentType); err != nil {
			return fmt.Errorf("mailer: attach %s: %w", a.Name, err)
		}
	}

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}
	return m.cb.Execute(func() error {
		return m.send(e, m.addr, auth)
	})
}
