package infra

import (
	"fmt"

	"tunik/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens a GORM connection for driver ("postgres" or "sqlite").
// TranslateError is on so repositories can match gorm.ErrDuplicatedKey and
// gorm.ErrForeignKeyViolated regardless of the engine underneath.
func NewDatabase(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if driver == "sqlite" {
		// one writer; also keeps shared-cache in-memory databases alive
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("enable sqlite foreign keys: %w", err)
		}
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
	}
	return db, nil
}

// Models lists every table in dependency order.
func Models() []any {
	return []any{
		&model.Rol{},
		&model.Usuario{},
		&model.Marca{},
		&model.TipoVehiculo{},
		&model.Vehiculo{},
		&model.CategoriaServicio{},
		&model.Servicio{},
		&model.MetodoPago{},
		&model.Proveedor{},
		&model.Producto{},
		&model.Pedido{},
		&model.DetallePedido{},
		&model.Cotizacion{},
		&model.DetalleCotizacion{},
		&model.AgendaCita{},
		&model.EvaluacionServicio{},
	}
}

// RunMigrations creates or updates every table.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return nil
}
