package model

// Rol groups users under one access profile.
// The UI only offers "Administrador" and "Cliente"; the table itself is open.
type Rol struct {
	IDRoles     int    `gorm:"column:idroles;primaryKey;autoIncrement" json:"idroles"`
	Descripcion string `gorm:"column:descripcion;type:varchar(60);uniqueIndex;not null" json:"descripcion"`
}

func (Rol) TableName() string { return "roles" }

// System role ids seeded by cmd/seed.
const (
	RolAdministradorID = 1
	RolClienteID       = 2
)

// Names of the roles the application depends on.
const (
	RolAdministrador = "Administrador"
	RolCliente       = "Cliente"
)
