package infra

import (
	"errors"
	"net/smtp"
	"testing"
	"time"

	"tunik/internal/config"

	"github.com/jordan-wright/email"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailer_DisabledWithoutHost(t *testing.T) {
	m := NewMailer(&config.Config{}, NewCircuitBreaker(DefaultCBConfig()))
	assert.False(t, m.Enabled())
	assert.ErrorIs(t, m.Send("a@b.c", "s", "b"), ErrMailDisabled)
}

func TestMailer_SendBuildsMessage(t *testing.T) {
	cfg := &config.Config{SMTPHost: "smtp.test", SMTPPort: 2525, SMTPUser: "u", MailFrom: "Tunik <no-reply@tunik.test>"}
	m := NewMailer(cfg, NewCircuitBreaker(DefaultCBConfig()))

	var got *email.Email
	var gotAddr string
	m.send = func(e *email.Email, addr string, _ smtp.Auth) error {
		got, gotAddr = e, addr
		return nil
	}

	err := m.Send("cliente@test.com", "Cotización", "adjunta", Attachment{
		Name: "cotizacion_1.pdf", ContentType: "application/pdf", Data: []byte("%PDF"),
	})
	require.NoError(t, err)
	assert.Equal(t, "smtp.test:2525", gotAddr)
	assert.Equal(t, "Tunik <no-reply@tunik.test>", got.From)
	assert.Equal(t, []string{"cliente@test.com"}, got.To)
	require.Len(t, got.Attachments, 1)
	assert.Equal(t, "cotizacion_1.pdf", got.Attachments[0].Filename)
}

func TestMailer_TripsBreaker(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 2, SuccessThreshold: 1, OpenTimeout: time.Hour})
	m := NewMailer(&config.Config{SMTPHost: "smtp.test"}, cb)
	calls := 0
	m.send = func(*email.Email, string, smtp.Auth) error {
		calls++
		return errors.New("connection refused")
	}

	assert.Error(t, m.Send("a@b.c", "s", "b"))
	assert.Error(t, m.Send("a@b.c", "s", "b"))
	assert.ErrorIs(t, m.Send("a@b.c", "s", "b"), ErrCircuitOpen)
	assert.Equal(t, 2, calls)
	assert.Equal(t, CBOpen, cb.State())
}
