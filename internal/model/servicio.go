package model

import "github.com/shopspring/decimal"

// Servicio is a priced detailing service offered to customers.
type Servicio struct {
	IDServicios     int             `gorm:"column:idservicios;primaryKey;autoIncrement" json:"idservicios"`
	NombreServicios string          `gorm:"column:nombreservicios;not null" json:"nombreservicios"`
	PrecioUnitario  decimal.Decimal `gorm:"column:preciounitario;type:decimal(12,2);not null" json:"preciounitario"`
	CategoriaID     int             `gorm:"column:idcategoriaservicios;not null;index" json:"idcategoriaservicios"`

	Categoria *CategoriaServicio `gorm:"foreignKey:CategoriaID;references:IDCategoriaServicios" json:"categoria,omitempty"`
}

func (Servicio) TableName() string { return "servicios" }
