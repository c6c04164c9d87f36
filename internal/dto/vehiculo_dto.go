package dto

type MarcaRequest struct {
	Descripcion string `json:"descripcion" validate:"required,max=100"`
}

type TipoVehiculoRequest struct {
	Nombre string `json:"nombre" validate:"required,max=100"`
}

type VehiculoRequest struct {
	Placa           string `json:"placa"           validate:"required,max=15"`
	Modelo          string `json:"modelo"          validate:"required,max=100"`
	Color           string `json:"color"           validate:"omitempty,max=50"`
	IDTipoVehiculos int    `json:"idtipovehiculos" validate:"required,min=1"`
	IDMarca         int    `json:"idmarca"         validate:"required,min=1"`
	Cedula          string `json:"cedula"          validate:"required,max=20"`
}
