package service

import (
	"context"
	"strings"

	"tunik/internal/dto"
	"tunik/internal/model"
	"tunik/internal/repository"
)

type (
	MarcaService             = CrudService[model.Marca, int, dto.MarcaRequest]
	TipoVehiculoService      = CrudService[model.TipoVehiculo, int, dto.TipoVehiculoRequest]
	VehiculoService          = CrudService[model.Vehiculo, string, dto.VehiculoRequest]
	CategoriaServicioService = CrudService[model.CategoriaServicio, int, dto.CategoriaServicioRequest]
	ServicioService          = CrudService[model.Servicio, int, dto.ServicioRequest]
	MetodoPagoService        = CrudService[model.MetodoPago, int, dto.MetodoPagoRequest]
	ProveedorService         = CrudService[model.Proveedor, int, dto.ProveedorRequest]
	ProductoService          = CrudService[model.Producto, int, dto.ProductoRequest]
)

func NewMarcaService(repo repository.CRUD[model.Marca, int]) MarcaService {
	return NewCrudService(repo, CrudConfig[model.Marca, int, dto.MarcaRequest]{
		NotFound: "Marca no encontrada",
		Key:      func(m *model.Marca) int { return m.IDMarca },
		Bind: func(_ context.Context, req *dto.MarcaRequest, m *model.Marca, _ bool) error {
			desc, err := required("descripcion", req.Descripcion)
			m.Descripcion = desc
			return err
		},
	})
}

func NewTipoVehiculoService(repo repository.CRUD[model.TipoVehiculo, int]) TipoVehiculoService {
	return NewCrudService(repo, CrudConfig[model.TipoVehiculo, int, dto.TipoVehiculoRequest]{
		NotFound: "Tipo de vehículo no encontrado",
		Key:      func(t *model.TipoVehiculo) int { return t.IDTipoVehiculos },
		Bind: func(_ context.Context, req *dto.TipoVehiculoRequest, t *model.TipoVehiculo, _ bool) error {
			nombre, err := required("nombre", req.Nombre)
			t.Nombre = nombre
			return err
		},
	})
}

// VehiculoDeps are the lookups a vehicle must reference.
type VehiculoDeps struct {
	Tipos    repository.CRUD[model.TipoVehiculo, int]
	Marcas   repository.CRUD[model.Marca, int]
	Usuarios repository.UsuarioRepository
}

func NewVehiculoService(repo repository.CRUD[model.Vehiculo, string], deps VehiculoDeps) VehiculoService {
	return NewCrudService(repo, CrudConfig[model.Vehiculo, string, dto.VehiculoRequest]{
		NotFound:   "Vehículo no encontrado",
		Duplicated: "Ya existe un vehículo con esa placa",
		Key:        func(v *model.Vehiculo) string { return v.Placa },
		Bind: func(ctx context.Context, req *dto.VehiculoRequest, v *model.Vehiculo, creating bool) error {
			if creating {
				placa, err := required("placa", req.Placa)
				if err != nil {
					return err
				}
				v.Placa = placa
			}
			modelo, err := required("modelo", req.Modelo)
			if err != nil {
				return err
			}
			if err := exists(ctx, deps.Tipos.Exists, req.IDTipoVehiculos, "idtipovehiculos", "El tipo de vehículo no existe"); err != nil {
				return err
			}
			if err := exists(ctx, deps.Marcas.Exists, req.IDMarca, "idmarca", "La marca no existe"); err != nil {
				return err
			}
			cedula := strings.TrimSpace(req.Cedula)
			if err := exists(ctx, deps.Usuarios.Exists, cedula, "cedula", "El propietario no existe"); err != nil {
				return err
			}
			v.Modelo = modelo
			v.Color = strings.TrimSpace(req.Color)
			v.TipoVehiculoID = req.IDTipoVehiculos
			v.MarcaID = req.IDMarca
			v.UsuarioID = cedula
			v.TipoVehiculo, v.Marca, v.Usuario = nil, nil, nil
			return nil
		},
		OwnedBy: func(_ context.Context, v *model.Vehiculo) (string, error) { return v.UsuarioID, nil },
	})
}

func NewCategoriaServicioService(repo repository.CRUD[model.CategoriaServicio, int], catalog CatalogService) CategoriaServicioService {
	return NewCrudService(repo, CrudConfig[model.CategoriaServicio, int, dto.CategoriaServicioRequest]{
		NotFound: "Categoría no encontrada",
		Key:      func(c *model.CategoriaServicio) int { return c.IDCategoriaServicios },
		Bind: func(_ context.Context, req *dto.CategoriaServicioRequest, c *model.CategoriaServicio, _ bool) error {
			nombre, err := required("nombrecategorias", req.NombreCategorias)
			if err != nil {
				return err
			}
			c.NombreCategorias = nombre
			c.Descripcion = strings.TrimSpace(req.Descripcion)
			return nil
		},
		// category names are part of the public catalog
		AfterWrite:  func(ctx context.Context, _ *model.CategoriaServicio, _ bool) { catalog.Invalidate(ctx) },
		AfterDelete: func(ctx context.Context, _ int) { catalog.Invalidate(ctx) },
	})
}

func NewServicioService(repo repository.CRUD[model.Servicio, int], categorias repository.CRUD[model.CategoriaServicio, int], catalog CatalogService) ServicioService {
	return NewCrudService(repo, CrudConfig[model.Servicio, int, dto.ServicioRequest]{
		NotFound: "Servicio no encontrado",
		Key:      func(s *model.Servicio) int { return s.IDServicios },
		Bind: func(ctx context.Context, req *dto.ServicioRequest, s *model.Servicio, _ bool) error {
			nombre, err := required("nombreservicios", req.NombreServicios)
			if err != nil {
				return err
			}
			if req.PrecioUnitario.IsNegative() {
				return FieldError("preciounitario", "El precio no puede ser negativo")
			}
			if err := exists(ctx, categorias.Exists, req.IDCategoriaServicios, "idcategoriaservicios", "La categoría no existe"); err != nil {
				return err
			}
			s.NombreServicios = nombre
			s.PrecioUnitario = req.PrecioUnitario
			s.CategoriaID = req.IDCategoriaServicios
			s.Categoria = nil
			return nil
		},
		AfterWrite:  func(ctx context.Context, _ *model.Servicio, _ bool) { catalog.Invalidate(ctx) },
		AfterDelete: func(ctx context.Context, _ int) { catalog.Invalidate(ctx) },
	})
}

func NewMetodoPagoService(repo repository.CRUD[model.MetodoPago, int]) MetodoPagoService {
	return NewCrudService(repo, CrudConfig[model.MetodoPago, int, dto.MetodoPagoRequest]{
		NotFound: "Método de pago no encontrado",
		Key:      func(m *model.MetodoPago) int { return m.IDMPago },
		Bind: func(_ context.Context, req *dto.MetodoPagoRequest, m *model.MetodoPago, _ bool) error {
			nombre, err := required("nombremetodo", req.NombreMetodo)
			m.NombreMetodo = nombre
			return err
		},
	})
}

func NewProveedorService(repo repository.CRUD[model.Proveedor, int]) ProveedorService {
	return NewCrudService(repo, CrudConfig[model.Proveedor, int, dto.ProveedorRequest]{
		NotFound: "Proveedor no encontrado",
		Key:      func(p *model.Proveedor) int { return p.IDProveedor },
		Bind: func(_ context.Context, req *dto.ProveedorRequest, p *model.Proveedor, _ bool) error {
			nombre, err := required("nombre", req.Nombre)
			if err != nil {
				return err
			}
			p.Nombre = nombre
			p.Telefono = strings.TrimSpace(req.Telefono)
			p.Correo = strings.TrimSpace(req.Correo)
			p.NombreEmpresa = strings.TrimSpace(req.NombreEmpresa)
			return nil
		},
	})
}

func NewProductoService(repo repository.CRUD[model.Producto, int], proveedores repository.CRUD[model.Proveedor, int]) ProductoService {
	return NewCrudService(repo, CrudConfig[model.Producto, int, dto.ProductoRequest]{
		NotFound: "Producto no encontrado",
		Key:      func(p *model.Producto) int { return p.IDProductos },
		Bind: func(ctx context.Context, req *dto.ProductoRequest, p *model.Producto, _ bool) error {
			nombre, err := required("nombreproductos", req.NombreProductos)
			if err != nil {
				return err
			}
			if req.Precio.IsNegative() {
				return FieldError("precio", "El precio no puede ser negativo")
			}
			if req.CantidadExistente < 0 {
				return FieldError("cantidadexistente", "La cantidad no puede ser negativa")
			}
			if err := exists(ctx, proveedores.Exists, req.IDProveedor, "idproveedor", "El proveedor no existe"); err != nil {
				return err
			}
			p.NombreProductos = nombre
			p.Precio = req.Precio
			p.CantidadExistente = req.CantidadExistente
			p.ProveedorID = req.IDProveedor
			p.Proveedor = nil
			return nil
		},
	})
}
