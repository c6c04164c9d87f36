package model

import "github.com/shopspring/decimal"

// Producto is a consumable bought from exactly one supplier.
// CantidadExistente only moves through completed purchase orders or manual edits.
type Producto struct {
	IDProductos       int             `gorm:"column:idproductos;primaryKey;autoIncrement" json:"idproductos"`
	NombreProductos   string          `gorm:"column:nombreproductos;not null" json:"nombreproductos"`
	Precio            decimal.Decimal `gorm:"column:precio;type:decimal(12,2);not null" json:"precio"`
	CantidadExistente int             `gorm:"column:cantidadexistente;not null;default:0" json:"cantidadexistente"`
	ProveedorID       int             `gorm:"column:idproveedor;not null;index" json:"idproveedor"`

	Proveedor *Proveedor `gorm:"foreignKey:ProveedorID;references:IDProveedor" json:"proveedor,omitempty"`
}

func (Producto) TableName() string { return "productos" }
