package model

// Marca is a vehicle brand lookup row.
type Marca struct {
	IDMarca     int    `gorm:"column:idmarca;primaryKey;autoIncrement" json:"idmarca"`
	Descripcion string `gorm:"column:descripcion;not null" json:"descripcion"`
}

func (Marca) TableName() string { return "marcas" }

// TipoVehiculo is a vehicle type lookup row (sedan, camioneta, moto...).
type TipoVehiculo struct {
	IDTipoVehiculos int    `gorm:"column:idtipovehiculos;primaryKey;autoIncrement" json:"idtipovehiculos"`
	Nombre          string `gorm:"column:nombre;not null" json:"nombre"`
}

func (TipoVehiculo) TableName() string { return "tipovehiculos" }

// Vehiculo is a customer car, keyed by licence plate.
type Vehiculo struct {
	Placa          string `gorm:"column:placa;primaryKey;type:varchar(15)" json:"placa"`
	Modelo         string `gorm:"column:modelo;not null" json:"modelo"`
	Color          string `gorm:"column:color" json:"color"`
	TipoVehiculoID int    `gorm:"column:idtipovehiculos;not null;index" json:"idtipovehiculos"`
	MarcaID        int    `gorm:"column:idmarca;not null;index" json:"idmarca"`
	UsuarioID      string `gorm:"column:cedula;type:varchar(20);not null;index" json:"cedula"`

	TipoVehiculo *TipoVehiculo `gorm:"foreignKey:TipoVehiculoID;references:IDTipoVehiculos" json:"tipovehiculo,omitempty"`
	Marca        *Marca        `gorm:"foreignKey:MarcaID;references:IDMarca" json:"marca,omitempty"`
	Usuario      *Usuario      `gorm:"foreignKey:UsuarioID;references:Cedula" json:"usuario,omitempty"`
}

func (Vehiculo) TableName() string { return "vehiculos" }
