package model

import "time"

// Estados de una cita.
const (
	CitaPendiente = "Pendiente"
	CitaRealizada = "Realizada"
	CitaCancelada = "Cancelada"
)

// AgendaCita is a scheduled appointment for a vehicle.
type AgendaCita struct {
	IDAgendaCitas       int       `gorm:"column:idagendacitas;primaryKey;autoIncrement" json:"idagendacitas"`
	VehiculoID          string    `gorm:"column:placa;type:varchar(15);not null;index" json:"placa"`
	Fecha               time.Time `gorm:"column:fecha;not null;index" json:"fecha"`
	Estado              string    `gorm:"column:estado;type:varchar(20);not null;default:'Pendiente'" json:"estado"`
	Observaciones       string    `gorm:"column:observaciones" json:"observaciones"`
	RecordatorioEnviado bool      `gorm:"column:recordatorio_enviado;not null;default:false" json:"recordatorio_enviado"`

	Vehiculo *Vehiculo `gorm:"foreignKey:VehiculoID;references:Placa" json:"vehiculo,omitempty"`
}

func (AgendaCita) TableName() string { return "agendacitas" }
