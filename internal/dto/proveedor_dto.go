package dto

import "github.com/shopspring/decimal"

type ProveedorRequest struct {
	Nombre        string `json:"nombre"        validate:"required,max=100"`
	Telefono      string `json:"telefono"      validate:"omitempty,max=30"`
	Correo        string `json:"correo"        validate:"omitempty,email"`
	NombreEmpresa string `json:"nombreempresa" validate:"omitempty,max=120"`
}

type ProductoRequest struct {
	NombreProductos   string          `json:"nombreproductos"   validate:"required,max=120"`
	Precio            decimal.Decimal `json:"precio"            validate:"min=0"`
	CantidadExistente int             `json:"cantidadexistente" validate:"min=0"`
	IDProveedor       int             `json:"idproveedor"       validate:"required,min=1"`
}
