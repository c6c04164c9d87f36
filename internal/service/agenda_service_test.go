package service

import (
	"context"
	"testing"

	"tunik/internal/dto"
	"tunik/internal/model"
	"tunik/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgendaCitaService_CreateQueuesConfirmation(t *testing.T) {
	f := newFixture(t)
	q := &fakeQueue{}
	svc := NewAgendaCitaService(repository.NewAgendaCitaRepository(f.db), repository.NewVehiculoRepository(f.db), q)
	ctx := context.Background()

	a, err := svc.Create(ctx, &dto.AgendaCitaRequest{Placa: " ABC-123 ", Fecha: "2024-07-01 09:00", Observaciones: " lavado "})
	require.NoError(t, err)
	assert.Equal(t, "ABC-123", a.VehiculoID)
	assert.Equal(t, model.CitaPendiente, a.Estado)
	assert.Equal(t, "lavado", a.Observaciones)

	require.Len(t, q.emails, 1)
	assert.Equal(t, f.cliente.Email, q.emails[0].ToEmail)
	assert.Contains(t, q.emails[0].Body, "ABC-123")

	_, err = svc.Create(ctx, &dto.AgendaCitaRequest{Placa: "NOPE", Fecha: "2024-07-01"})
	requireKind(t, err, KindValidation)
	_, err = svc.Create(ctx, &dto.AgendaCitaRequest{Placa: "ABC-123", Fecha: "mañana"})
	requireKind(t, err, KindValidation)

	// a disabled queue never fails the request
	q.disabled = true
	_, err = svc.Create(ctx, &dto.AgendaCitaRequest{Placa: "ABC-123", Fecha: "2024-07-02"})
	require.NoError(t, err)
}

func TestAgendaCitaService_MovingResetsReminder(t *testing.T) {
	f := newFixture(t)
	repo := repository.NewAgendaCitaRepository(f.db)
	svc := NewAgendaCitaService(repo, repository.NewVehiculoRepository(f.db), nil)
	ctx := context.Background()

	a, err := svc.Create(ctx, &dto.AgendaCitaRequest{Placa: "ABC-123", Fecha: "2024-07-01T09:00:00Z"})
	require.NoError(t, err)
	require.NoError(t, repo.MarcarRecordatorio(ctx, a.IDAgendaCitas))

	same, err := svc.Update(ctx, a.IDAgendaCitas, &dto.AgendaCitaRequest{Placa: "ABC-123", Fecha: "2024-07-01T09:00:00Z", Estado: model.CitaPendiente, Observaciones: "sin cambios de hora"})
	require.NoError(t, err)
	assert.True(t, same.RecordatorioEnviado)

	moved, err := svc.Update(ctx, a.IDAgendaCitas, &dto.AgendaCitaRequest{Placa: "ABC-123", Fecha: "2024-07-03T09:00:00Z"})
	require.NoError(t, err)
	assert.False(t, moved.RecordatorioEnviado)
}

func TestEvaluacionService(t *testing.T) {
	f := newFixture(t)
	svc := NewEvaluacionService(repository.NewEvaluacionRepository(f.db), repository.NewUsuarioRepository(f.db), repository.NewServicioRepository(f.db))
	ctx := context.Background()

	for _, bad := range []int{0, 6, -1} {
		_, err := svc.Create(ctx, &dto.EvaluacionRequest{Cedula: f.cliente.Cedula, IDServicios: f.lavado.IDServicios, Calificacion: bad})
		requireKind(t, err, KindValidation)
	}

	_, err := svc.Create(ctx, &dto.EvaluacionRequest{Cedula: "nadie", IDServicios: f.lavado.IDServicios, Calificacion: 4})
	e := requireKind(t, err, KindValidation)
	assert.Contains(t, e.Fields, "cedula")

	_, err = svc.Create(ctx, &dto.EvaluacionRequest{Cedula: f.cliente.Cedula, IDServicios: 404, Calificacion: 4})
	e = requireKind(t, err, KindValidation)
	assert.Contains(t, e.Fields, "idservicios")

	ev, err := svc.Create(ctx, &dto.EvaluacionRequest{Cedula: f.cliente.Cedula, IDServicios: f.lavado.IDServicios, Calificacion: 4})
	require.NoError(t, err)
	assert.Equal(t, "4", ev.RespuestaCalificacion)
	require.NotNil(t, ev.Servicio)
}
