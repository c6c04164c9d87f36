package dto

import "github.com/shopspring/decimal"

// ─── Pedidos ─────────────────────────────────────────────────────────────────

type ItemPedidoRequest struct {
	IDProductos int `json:"idproductos" validate:"required,min=1"`
	Cantidad    int `json:"cantidad"    validate:"required,min=1"`
}

// PedidoRequest is the body of POST/PUT /pedidos. FechaPedido accepts
// YYYY-MM-DD or RFC 3339. An empty Estado means Pendiente.
type PedidoRequest struct {
	IDProveedor int                 `json:"idproveedor" validate:"required,min=1"`
	FechaPedido string              `json:"fechaPedido" validate:"required"`
	Estado      string              `json:"estado"      validate:"omitempty,oneof=Pendiente Completado Cancelado"`
	Items       []ItemPedidoRequest `json:"items"       validate:"required,min=1,dive"`
}

// ─── Cotizaciones ────────────────────────────────────────────────────────────

// ItemCotizacionRequest carries an optional negotiated price; nil falls back
// to the service's list price.
type ItemCotizacionRequest struct {
	IDServicios  int              `json:"idservicios"  validate:"required,min=1"`
	PrecioChange *decimal.Decimal `json:"preciochange"`
}

type CotizacionRequest struct {
	Placa   string                  `json:"placa"   validate:"required,max=15"`
	Fecha   string                  `json:"fecha"   validate:"required"`
	Estado  string                  `json:"estado"  validate:"omitempty,oneof=Pendiente Aprobado Cancelado"`
	IDMPago *int                    `json:"idmpago" validate:"omitempty,min=1"`
	Items   []ItemCotizacionRequest `json:"items"   validate:"required,min=1,dive"`
}

// EnviarCotizacionRequest lets the caller override the recipient of a quote.
type EnviarCotizacionRequest struct {
	Email string `json:"email" validate:"omitempty,email"`
}
