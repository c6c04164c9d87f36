package worker

// reminder_cron.go
// Background goroutine that queues a reminder email for every pending
// appointment starting within the next 24 hours, once per appointment.

import (
	"context"
	"fmt"
	"time"

	"tunik/internal/model"

	"github.com/rs/zerolog/log"
)

const reminderWindow = 24 * time.Hour

// ReminderSource is the slice of the appointment repository the cron uses.
type ReminderSource interface {
	PendientesSinRecordatorio(ctx context.Context, from, to time.Time) ([]model.AgendaCita, error)
	MarcarRecordatorio(ctx context.Context, id int) error
}

// EmailQueue accepts email jobs.
type EmailQueue interface {
	EnqueueEmail(ctx context.Context, p EmailJobPayload) error
}

// ReminderCronConfig holds all dependencies for the reminder goroutine.
type ReminderCronConfig struct {
	Citas    ReminderSource
	Queue    EmailQueue
	Interval time.Duration
}

// StartReminderCron ticks every Interval until ctx is cancelled.
func StartReminderCron(ctx context.Context, cfg ReminderCronConfig) {
	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		log.Info().Dur("interval", cfg.Interval).Msg("reminder_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("reminder_cron: shutting down")
				return
			case <-ticker.C:
				processReminders(ctx, cfg, time.Now())
			}
		}
	}()
}

// processReminders returns how many reminders were queued.
func processReminders(ctx context.Context, cfg ReminderCronConfig, now time.Time) int {
	citas, err := cfg.Citas.PendientesSinRecordatorio(ctx, now, now.Add(reminderWindow))
	if err != nil {
		log.Error().Err(err).Msg("reminder_cron: failed to query appointments")
		return 0
	}

	sent := 0
	for _, cita := range citas {
		to := ""
		nombre := ""
		if cita.Vehiculo != nil && cita.Vehiculo.Usuario != nil {
			to = cita.Vehiculo.Usuario.Email
			nombre = cita.Vehiculo.Usuario.Nombre
		}
		if to != "" {
			err := cfg.Queue.EnqueueEmail(ctx, EmailJobPayload{
				ToEmail: to,
				Subject: "Recordatorio de cita - Tunik",
				Body: fmt.Sprintf("Hola %s, te recordamos tu cita para el vehículo %s el %s.",
					nombre, cita.VehiculoID, cita.Fecha.Format("02/01/2006 15:04")),
			})
			if err != nil {
				// not flagged, so the next tick tries again
				log.Error().Err(err).Int("idagendacitas", cita.IDAgendaCitas).Msg("reminder_cron: enqueue failed")
				continue
			}
			sent++
		}
		if err := cfg.Citas.MarcarRecordatorio(ctx, cita.IDAgendaCitas); err != nil {
			log.Error().Err(err).Int("idagendacitas", cita.IDAgendaCitas).Msg("reminder_cron: failed to flag appointment")
		}
	}
	if sent > 0 {
		log.Info().Int("count", sent).Msg("reminder_cron: reminders queued")
	}
	return sent
}
