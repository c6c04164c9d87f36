package worker

// email_worker.go
// Processes plain email jobs from QueueEmail: appointment confirmations
// and reminders.

import (
	"context"
	"encoding/json"
	"errors"

	"tunik/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Mailer is what the workers need from infra.Mailer.
type Mailer interface {
	Enabled() bool
	Send(to, subject, body string, attachments ...infra.Attachment) error
}

// EmailWorker processes email jobs from QueueEmail.
type EmailWorker struct {
	mailer Mailer
}

func NewEmailWorker(mailer Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

// Process sends one message. Jobs that can never succeed (bad payload, no
// recipient, SMTP not configured) are logged and dropped, not retried.
func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return nil
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email, skipping")
		return nil
	}
	if !w.mailer.Enabled() {
		log.Warn().Str("to", payload.ToEmail).Str("subject", payload.Subject).Msg("email_worker: smtp not configured, skipping")
		return nil
	}

	if err := w.mailer.Send(payload.ToEmail, payload.Subject, payload.Body); err != nil {
		if errors.Is(err, infra.ErrMailDisabled) {
			return nil
		}
		return err
	}
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: email sent")
	return nil
}
