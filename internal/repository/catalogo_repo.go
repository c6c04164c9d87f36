package repository

import (
	"tunik/internal/model"

	"gorm.io/gorm"
)

// Lookup tables and the entities that only need the generic repository.

func NewMarcaRepository(db *gorm.DB) CRUD[model.Marca, int] {
	return NewCRUD[model.Marca, int](db, Schema{
		PK: "idmarca", Search: []string{"descripcion"}, Order: "descripcion",
	})
}

func NewTipoVehiculoRepository(db *gorm.DB) CRUD[model.TipoVehiculo, int] {
	return NewCRUD[model.TipoVehiculo, int](db, Schema{
		PK: "idtipovehiculos", Search: []string{"nombre"}, Order: "nombre",
	})
}

func NewVehiculoRepository(db *gorm.DB) CRUD[model.Vehiculo, string] {
	return NewCRUD[model.Vehiculo, string](db, Schema{
		PK:       "placa",
		Search:   []string{"placa", "modelo", "color"},
		Filters:  []string{"cedula", "idmarca", "idtipovehiculos"},
		Preloads: []string{"TipoVehiculo", "Marca", "Usuario"},
		Order:    "placa",
		Owner:    "cedula = ?",
	})
}

func NewCategoriaServicioRepository(db *gorm.DB) CRUD[model.CategoriaServicio, int] {
	return NewCRUD[model.CategoriaServicio, int](db, Schema{
		PK: "idcategoriaservicios", Search: []string{"nombrecategorias", "descripcion"}, Order: "nombrecategorias",
	})
}

func NewServicioRepository(db *gorm.DB) CRUD[model.Servicio, int] {
	return NewCRUD[model.Servicio, int](db, Schema{
		PK:       "idservicios",
		Search:   []string{"nombreservicios"},
		Filters:  []string{"idcategoriaservicios"},
		Preloads: []string{"Categoria"},
		Order:    "nombreservicios",
	})
}

func NewMetodoPagoRepository(db *gorm.DB) CRUD[model.MetodoPago, int] {
	return NewCRUD[model.MetodoPago, int](db, Schema{
		PK: "idmpago", Search: []string{"nombremetodo"}, Order: "idmpago",
	})
}

func NewProveedorRepository(db *gorm.DB) CRUD[model.Proveedor, int] {
	return NewCRUD[model.Proveedor, int](db, Schema{
		PK:     "idproveedor",
		Search: []string{"nombre", "nombreempresa", "correo", "telefono"},
		Order:  "nombre",
	})
}

func NewProductoRepository(db *gorm.DB) CRUD[model.Producto, int] {
	return NewCRUD[model.Producto, int](db, Schema{
		PK:       "idproductos",
		Search:   []string{"nombreproductos"},
		Filters:  []string{"idproveedor"},
		Preloads: []string{"Proveedor"},
		Order:    "nombreproductos",
	})
}

func NewEvaluacionRepository(db *gorm.DB) CRUD[model.EvaluacionServicio, int] {
	return NewCRUD[model.EvaluacionServicio, int](db, Schema{
		PK:       "idevaluacion",
		Search:   []string{"cedula", "respuestacalificacion"},
		Filters:  []string{"cedula", "idservicios", "respuestacalificacion"},
		Preloads: []string{"Usuario", "Servicio"},
		Order:    "idevaluacion DESC",
		Owner:    "cedula = ?",
	})
}
