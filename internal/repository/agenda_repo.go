package repository

import (
	"context"
	"time"

	"tunik/internal/model"

	"gorm.io/gorm"
)

var agendaSchema = Schema{
	PK:       "idagendacitas",
	Search:   []string{"placa", "estado", "observaciones"},
	Filters:  []string{"placa", "estado"},
	Preloads: []string{"Vehiculo.Usuario"},
	Order:    "fecha DESC",
	Owner:    "placa IN (SELECT placa FROM vehiculos WHERE cedula = ?)",
}

type AgendaCitaRepository interface {
	CRUD[model.AgendaCita, int]
	// PendientesSinRecordatorio returns pending appointments between from and
	// to that have not been reminded yet, with vehicle and owner loaded.
	PendientesSinRecordatorio(ctx context.Context, from, to time.Time) ([]model.AgendaCita, error)
	MarcarRecordatorio(ctx context.Context, id int) error
}

type agendaRepo struct {
	CRUD[model.AgendaCita, int]
	db *gorm.DB
}

func NewAgendaCitaRepository(db *gorm.DB) AgendaCitaRepository {
	return &agendaRepo{CRUD: NewCRUD[model.AgendaCita, int](db, agendaSchema), db: db}
}

func (r *agendaRepo) PendientesSinRecordatorio(ctx context.Context, from, to time.Time) ([]model.AgendaCita, error) {
	var out []model.AgendaCita
	err := r.db.WithContext(ctx).
		Preload("Vehiculo.Usuario").
		Where("estado = ? AND recordatorio_enviado = ? AND fecha >= ? AND fecha <= ?", model.CitaPendiente, false, from, to).
		Order("fecha").
		Find(&out).Error
	return out, err
}

func (r *agendaRepo) MarcarRecordatorio(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Model(&model.AgendaCita{}).
		Where("idagendacitas = ?", id).
		UpdateColumn("recordatorio_enviado", true).Error
}
