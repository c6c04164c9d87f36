package worker

// cotizacion_worker.go
// Processes jobs from QueueCotizaciones: renders the quote PDF, archives it
// in the document store and mails it to the customer.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"tunik/internal/infra"
	"tunik/internal/model"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CotizacionJobPayload is the job envelope sent to QueueCotizaciones.
// An empty Email means "send to the vehicle owner".
type CotizacionJobPayload struct {
	IDCotizaciones int    `json:"idcotizaciones"`
	Email          string `json:"email,omitempty"`
}

// CotizacionFinder loads a quote with vehicle, owner and items.
type CotizacionFinder interface {
	FindByID(ctx context.Context, id int) (*model.Cotizacion, error)
}

type CotizacionWorker struct {
	repo   CotizacionFinder
	store  infra.DocumentStore
	mailer Mailer
}

func NewCotizacionWorker(repo CotizacionFinder, store infra.DocumentStore, mailer Mailer) *CotizacionWorker {
	return &CotizacionWorker{repo: repo, store: store, mailer: mailer}
}

// Process handles a single quote job:
//  1. Load the quote; a deleted quote drops the job
//  2. Render the PDF
//  3. Archive it (local dir or S3)
//  4. Mail it when there is a recipient and SMTP is configured
func (w *CotizacionWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload CotizacionJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("cotizacion_worker: invalid payload")
		return nil
	}

	c, err := w.repo.FindByID(ctx, payload.IDCotizaciones)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Warn().Int("idcotizaciones", payload.IDCotizaciones).Msg("cotizacion_worker: quote no longer exists")
		return nil
	}
	if err != nil {
		return err
	}
	c.Total = decimal.Zero
	for _, it := range c.Items {
		c.Total = c.Total.Add(it.PrecioChange)
	}

	pdf, err := infra.RenderCotizacionPDF(c)
	if err != nil {
		return err
	}
	name := infra.CotizacionFileName(c.IDCotizaciones)
	location, err := w.store.Save(ctx, name, "application/pdf", pdf)
	if err != nil {
		return err
	}
	log.Info().Int("idcotizaciones", c.IDCotizaciones).Str("location", location).Msg("cotizacion_worker: pdf archived")

	to := payload.Email
	if to == "" && c.Vehiculo != nil && c.Vehiculo.Usuario != nil {
		to = c.Vehiculo.Usuario.Email
	}
	if to == "" {
		log.Warn().Int("idcotizaciones", c.IDCotizaciones).Msg("cotizacion_worker: no recipient, pdf archived only")
		return nil
	}
	if !w.mailer.Enabled() {
		log.Warn().Int("idcotizaciones", c.IDCotizaciones).Msg("cotizacion_worker: smtp not configured, pdf archived only")
		return nil
	}

	subject := fmt.Sprintf("Cotización N° %d - Tunik", c.IDCotizaciones)
	body := fmt.Sprintf("Adjuntamos la cotización N° %d para el vehículo %s por un total de $%s.\n\nGracias por elegirnos.",
		c.IDCotizaciones, c.VehiculoID, c.Total.StringFixed(2))
	err = w.mailer.Send(to, subject, body, infra.Attachment{Name: name, ContentType: "application/pdf", Data: pdf})
	if err != nil {
		return err
	}
	log.Info().Int("idcotizaciones", c.IDCotizaciones).Str("to", to).Msg("cotizacion_worker: quote sent")
	return nil
}
