package model

// Usuario is an operator or a customer, keyed by national id (cedula).
// Contrasena holds a bcrypt hash and is never serialized.
type Usuario struct {
	Cedula     string `gorm:"column:cedula;primaryKey;type:varchar(20)" json:"cedula"`
	Nombre     string `gorm:"column:nombre;not null" json:"nombre"`
	Telefono   string `gorm:"column:telefono" json:"telefono"`
	Email      string `gorm:"column:email;uniqueIndex;not null" json:"email"`
	Contrasena string `gorm:"column:contrasena;not null" json:"-"`
	RolID      int    `gorm:"column:idroles;not null;index" json:"idroles"`

	Rol *Rol `gorm:"foreignKey:RolID;references:IDRoles" json:"rol,omitempty"`
}

func (Usuario) TableName() string { return "usuarios" }
