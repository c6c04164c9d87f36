package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tunik/internal/dto"
	"tunik/internal/model"
	"tunik/internal/repository"
	"tunik/internal/worker"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// JobQueue is the part of worker.Dispatcher the services use.
type JobQueue interface {
	Enabled() bool
	EnqueueEmail(ctx context.Context, p worker.EmailJobPayload) error
	EnqueueCotizacion(ctx context.Context, p worker.CotizacionJobPayload) error
}

type (
	AgendaCitaService = CrudService[model.AgendaCita, int, dto.AgendaCitaRequest]
	EvaluacionService = CrudService[model.EvaluacionServicio, int, dto.EvaluacionRequest]
)

func NewAgendaCitaService(repo repository.AgendaCitaRepository, vehiculos repository.CRUD[model.Vehiculo, string], jobs JobQueue) AgendaCitaService {
	return NewCrudService(repo, CrudConfig[model.AgendaCita, int, dto.AgendaCitaRequest]{
		NotFound: "Cita no encontrada",
		Key:      func(a *model.AgendaCita) int { return a.IDAgendaCitas },
		Bind: func(ctx context.Context, req *dto.AgendaCitaRequest, a *model.AgendaCita, creating bool) error {
			placa, err := required("placa", req.Placa)
			if err != nil {
				return err
			}
			if err := exists(ctx, vehiculos.Exists, placa, "placa", "El vehículo no existe"); err != nil {
				return err
			}
			fecha, ok := parseFecha(req.Fecha)
			if !ok {
				return FieldError("fecha", "Fecha inválida")
			}
			estado := req.Estado
			if estado == "" {
				estado = model.CitaPendiente
			}
			// a moved appointment deserves a new reminder
			if !creating && !fecha.Equal(a.Fecha) {
				a.RecordatorioEnviado = false
			}
			a.VehiculoID = placa
			a.Fecha = fecha
			a.Estado = estado
			a.Observaciones = strings.TrimSpace(req.Observaciones)
			a.Vehiculo = nil
			return nil
		},
		AfterWrite: func(ctx context.Context, a *model.AgendaCita, created bool) {
			if created {
				confirmarCita(ctx, jobs, a)
			}
		},
		// an appointment belongs to the owner of its vehicle
		OwnedBy: func(ctx context.Context, a *model.AgendaCita) (string, error) {
			v, err := vehiculos.FindByID(ctx, a.VehiculoID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", nil
			}
			if err != nil {
				return "", err
			}
			return v.UsuarioID, nil
		},
	})
}

// confirmarCita queues the confirmation mail for a new appointment. Failing
// to queue it never fails the request.
func confirmarCita(ctx context.Context, jobs JobQueue, a *model.AgendaCita) {
	if jobs == nil || !jobs.Enabled() || a.Vehiculo == nil || a.Vehiculo.Usuario == nil || a.Vehiculo.Usuario.Email == "" {
		return
	}
	u := a.Vehiculo.Usuario
	err := jobs.EnqueueEmail(ctx, worker.EmailJobPayload{
		ToEmail: u.Email,
		Subject: "Confirmación de cita - Tunik",
		Body: fmt.Sprintf("Hola %s,\n\nTu cita para el vehículo %s quedó agendada para el %s.\n\nTe esperamos.",
			u.Nombre, a.VehiculoID, a.Fecha.Format("02/01/2006 15:04")),
	})
	if err != nil {
		log.Warn().Err(err).Int("idagendacitas", a.IDAgendaCitas).Msg("could not queue appointment confirmation")
	}
}

func NewEvaluacionService(repo repository.CRUD[model.EvaluacionServicio, int], usuarios repository.UsuarioRepository, servicios repository.CRUD[model.Servicio, int]) EvaluacionService {
	return NewCrudService(repo, CrudConfig[model.EvaluacionServicio, int, dto.EvaluacionRequest]{
		NotFound: "Evaluación no encontrada",
		Key:      func(e *model.EvaluacionServicio) int { return e.IDEvaluacion },
		Bind: func(ctx context.Context, req *dto.EvaluacionRequest, e *model.EvaluacionServicio, _ bool) error {
			if req.Calificacion < 1 || req.Calificacion > 5 {
				return FieldError("respuestacalificacion", "La calificación debe ser un número entero entre 1 y 5")
			}
			cedula := strings.TrimSpace(req.Cedula)
			if err := exists(ctx, usuarios.Exists, cedula, "cedula", "El usuario no existe"); err != nil {
				return err
			}
			if err := exists(ctx, servicios.Exists, req.IDServicios, "idservicios", "El servicio no existe"); err != nil {
				return err
			}
			e.UsuarioID = cedula
			e.ServicioID = req.IDServicios
			e.RespuestaCalificacion = strconv.Itoa(req.Calificacion)
			e.Usuario, e.Servicio = nil, nil
			return nil
		},
		OwnedBy: func(_ context.Context, e *model.EvaluacionServicio) (string, error) { return e.UsuarioID, nil },
	})
}
