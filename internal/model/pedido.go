package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido.
const (
	PedidoPendiente  = "Pendiente"
	PedidoCompletado = "Completado"
	PedidoCancelado  = "Cancelado"
)

// Pedido is a purchase order placed with one supplier.
// Total is derived from the items on every read and never stored.
type Pedido struct {
	IDPedidos   int       `gorm:"column:idpedidos;primaryKey;autoIncrement" json:"idpedidos"`
	ProveedorID int       `gorm:"column:idproveedor;not null;index" json:"idproveedor"`
	FechaPedido time.Time `gorm:"column:fecha_pedido;not null" json:"fechaPedido"`
	Estado      string    `gorm:"column:estado;type:varchar(20);not null;default:'Pendiente'" json:"estado"`

	Proveedor *Proveedor      `gorm:"foreignKey:ProveedorID;references:IDProveedor" json:"proveedor,omitempty"`
	Items     []DetallePedido `gorm:"foreignKey:IDPedidos;references:IDPedidos;constraint:OnDelete:CASCADE" json:"items"`
	Total     decimal.Decimal `gorm:"-" json:"total"`
}

func (Pedido) TableName() string { return "pedidos" }

// DetallePedido is one product line of a Pedido, owned exclusively by it.
type DetallePedido struct {
	IDPedidos  int `gorm:"column:idpedidos;primaryKey;autoIncrement:false" json:"idpedidos"`
	ProductoID int `gorm:"column:idproductos;primaryKey;autoIncrement:false" json:"idproductos"`
	Cantidad   int `gorm:"column:cantidad;not null" json:"cantidad"`

	Producto *Producto `gorm:"foreignKey:ProductoID;references:IDProductos" json:"producto,omitempty"`
}

func (DetallePedido) TableName() string { return "detallepedidos" }
