package model

// Proveedor is a supplier the shop buys products from.
type Proveedor struct {
	IDProveedor   int    `gorm:"column:idproveedor;primaryKey;autoIncrement" json:"idproveedor"`
	Nombre        string `gorm:"column:nombre;not null" json:"nombre"`
	Telefono      string `gorm:"column:telefono" json:"telefono"`
	Correo        string `gorm:"column:correo" json:"correo"`
	NombreEmpresa string `gorm:"column:nombreempresa" json:"nombreempresa"`
}

func (Proveedor) TableName() string { return "proveedores" }
