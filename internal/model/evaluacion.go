package model

// EvaluacionServicio is a customer rating of a service.
// RespuestaCalificacion keeps the legacy string column; values are "1".."5".
type EvaluacionServicio struct {
	IDEvaluacion          int    `gorm:"column:idevaluacion;primaryKey;autoIncrement" json:"idevaluacion"`
	UsuarioID             string `gorm:"column:cedula;type:varchar(20);not null;index" json:"cedula"`
	ServicioID            int    `gorm:"column:idservicios;not null;index" json:"idservicios"`
	RespuestaCalificacion string `gorm:"column:respuestacalificacion;type:varchar(2);not null" json:"respuestacalificacion"`

	Usuario  *Usuario  `gorm:"foreignKey:UsuarioID;references:Cedula" json:"usuario,omitempty"`
	Servicio *Servicio `gorm:"foreignKey:ServicioID;references:IDServicios" json:"servicio,omitempty"`
}

func (EvaluacionServicio) TableName() string { return "evaluacionservicios" }
