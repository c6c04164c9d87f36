package dto

import "github.com/shopspring/decimal"

type CategoriaServicioRequest struct {
	NombreCategorias string `json:"nombrecategorias" validate:"required,max=100"`
	Descripcion      string `json:"descripcion"      validate:"omitempty,max=255"`
}

type ServicioRequest struct {
	NombreServicios      string          `json:"nombreservicios"      validate:"required,max=120"`
	PrecioUnitario       decimal.Decimal `json:"preciounitario"       validate:"min=0"`
	IDCategoriaServicios int             `json:"idcategoriaservicios" validate:"required,min=1"`
}

type MetodoPagoRequest struct {
	NombreMetodo string `json:"nombremetodo" validate:"required,max=60"`
}

// ServicioPublico is one row of the landing-page catalog.
type ServicioPublico struct {
	IDServicios     int             `json:"idservicios"`
	NombreServicios string          `json:"nombreservicios"`
	PrecioUnitario  decimal.Decimal `json:"preciounitario"`
	Categoria       string          `json:"categoria"`
}
