package infra

import (
	"fmt"

	"tunik/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultMetodosPago are created by SeedSystemData.
var DefaultMetodosPago = []string{"Efectivo", "Tarjeta", "Transferencia"}

// SeedSystemData inserts the rows the application depends on: the
// Administrador and Cliente roles with their fixed ids and the default
// payment methods. Running it again changes nothing.
func SeedSystemData(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		roles := []model.Rol{
			{IDRoles: model.RolAdministradorID, Descripcion: model.RolAdministrador},
			{IDRoles: model.RolClienteID, Descripcion: model.RolCliente},
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&roles).Error; err != nil {
			return fmt.Errorf("seed roles: %w", err)
		}
		// explicit ids do not advance the postgres sequence
		if tx.Dialector.Name() == "postgres" {
			err := tx.Exec("SELECT setval(pg_get_serial_sequence('roles', 'idroles'), (SELECT MAX(idroles) FROM roles))").Error
			if err != nil {
				return fmt.Errorf("seed roles sequence: %w", err)
			}
		}
		for _, nombre := range DefaultMetodosPago {
			mp := model.MetodoPago{NombreMetodo: nombre}
			if err := tx.Where("nombremetodo = ?", nombre).FirstOrCreate(&mp).Error; err != nil {
				return fmt.Errorf("seed metodos de pago: %w", err)
			}
		}
		return nil
	})
}

// UpsertUsuario creates u or, when the cedula already exists, overwrites its
// name, email, password hash and role. Contrasena must already be hashed.
func UpsertUsuario(db *gorm.DB, u *model.Usuario) error {
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cedula"}},
		DoUpdates: clause.AssignmentColumns([]string{"nombre", "email", "contrasena", "idroles"}),
	}).Create(u).Error
	if err != nil {
		return fmt.Errorf("upsert usuario %s: %w", u.Cedula, err)
	}
	return nil
}
