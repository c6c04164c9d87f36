package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una cotización.
const (
	CotizacionPendiente = "Pendiente"
	CotizacionAprobado  = "Aprobado"
	CotizacionCancelado = "Cancelado"
)

// MetodoPago is a payment method lookup row.
type MetodoPago struct {
	IDMPago      int    `gorm:"column:idmpago;primaryKey;autoIncrement" json:"idmpago"`
	NombreMetodo string `gorm:"column:nombremetodo;not null" json:"nombremetodo"`
}

func (MetodoPago) TableName() string { return "metodospago" }

// Cotizacion is a service quote for one vehicle.
type Cotizacion struct {
	IDCotizaciones int       `gorm:"column:idcotizaciones;primaryKey;autoIncrement" json:"idcotizaciones"`
	VehiculoID     string    `gorm:"column:placa;type:varchar(15);not null;index" json:"placa"`
	Fecha          time.Time `gorm:"column:fecha;not null" json:"fecha"`
	Estado         string    `gorm:"column:estado;type:varchar(20);not null;default:'Pendiente'" json:"estado"`
	MetodoPagoID   *int      `gorm:"column:idmpago;index" json:"idmpago"`

	Vehiculo   *Vehiculo           `gorm:"foreignKey:VehiculoID;references:Placa" json:"vehiculo,omitempty"`
	MetodoPago *MetodoPago         `gorm:"foreignKey:MetodoPagoID;references:IDMPago" json:"metodopago,omitempty"`
	Items      []DetalleCotizacion `gorm:"foreignKey:IDCotizaciones;references:IDCotizaciones;constraint:OnDelete:CASCADE" json:"items"`
	Total      decimal.Decimal     `gorm:"-" json:"total"`
}

func (Cotizacion) TableName() string { return "cotizaciones" }

// DetalleCotizacion is one service line of a quote with its negotiated price.
type DetalleCotizacion struct {
	IDCotizaciones int             `gorm:"column:idcotizaciones;primaryKey;autoIncrement:false" json:"idcotizaciones"`
	ServicioID     int             `gorm:"column:idservicios;primaryKey;autoIncrement:false" json:"idservicios"`
	PrecioChange   decimal.Decimal `gorm:"column:preciochange;type:decimal(12,2);not null" json:"preciochange"`

	Servicio *Servicio `gorm:"foreignKey:ServicioID;references:IDServicios" json:"servicio,omitempty"`
}

func (DetalleCotizacion) TableName() string { return "detallecotizaciones" }
