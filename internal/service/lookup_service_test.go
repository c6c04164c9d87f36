package service

import (
	"context"
	"testing"

	"tunik/internal/dto"
	"tunik/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVehiculoService(t *testing.T) {
	f := newFixture(t)
	svc := NewVehiculoService(repository.NewVehiculoRepository(f.db), VehiculoDeps{
		Tipos:    repository.NewTipoVehiculoRepository(f.db),
		Marcas:   repository.NewMarcaRepository(f.db),
		Usuarios: repository.NewUsuarioRepository(f.db),
	})
	ctx := context.Background()
	req := dto.VehiculoRequest{
		Placa: " XYZ-987 ", Modelo: "Hilux", IDTipoVehiculos: f.vehiculo.TipoVehiculoID,
		IDMarca: f.vehiculo.MarcaID, Cedula: f.cliente.Cedula,
	}

	v, err := svc.Create(ctx, &req)
	require.NoError(t, err)
	assert.Equal(t, "XYZ-987", v.Placa)
	require.NotNil(t, v.Marca)
	assert.Equal(t, "Toyota", v.Marca.Descripcion)

	_, err = svc.Create(ctx, &req)
	requireKind(t, err, KindConflict)

	bad := req
	bad.Placa, bad.IDMarca = "NEW-1", 999
	_, err = svc.Create(ctx, &bad)
	e := requireKind(t, err, KindValidation)
	assert.Contains(t, e.Fields, "idmarca")

	// referenced by nothing yet
	require.NoError(t, svc.Delete(ctx, "XYZ-987"))
}

func TestLookupDeleteInUse(t *testing.T) {
	f := newFixture(t)
	marcas := NewMarcaService(repository.NewMarcaRepository(f.db))
	proveedores := NewProveedorService(repository.NewProveedorRepository(f.db))
	ctx := context.Background()

	requireKind(t, marcas.Delete(ctx, f.vehiculo.MarcaID), KindConflict)
	requireKind(t, proveedores.Delete(ctx, f.proveedor.IDProveedor), KindConflict)
	requireKind(t, marcas.Delete(ctx, 999), KindNotFound)

	m, err := marcas.Create(ctx, &dto.MarcaRequest{Descripcion: " Kia "})
	require.NoError(t, err)
	assert.Equal(t, "Kia", m.Descripcion)
	require.NoError(t, marcas.Delete(ctx, m.IDMarca))
}

func TestProductoService(t *testing.T) {
	f := newFixture(t)
	svc := NewProductoService(repository.NewProductoRepository(f.db), repository.NewProveedorRepository(f.db))
	ctx := context.Background()

	_, err := svc.Create(ctx, &dto.ProductoRequest{NombreProductos: "Toalla", Precio: decimal.NewFromInt(-1), IDProveedor: f.proveedor.IDProveedor})
	requireKind(t, err, KindValidation)
	_, err = svc.Create(ctx, &dto.ProductoRequest{NombreProductos: "Toalla", CantidadExistente: -2, IDProveedor: f.proveedor.IDProveedor})
	requireKind(t, err, KindValidation)
	_, err = svc.Create(ctx, &dto.ProductoRequest{NombreProductos: "Toalla", IDProveedor: 999})
	requireKind(t, err, KindValidation)

	p, err := svc.Create(ctx, &dto.ProductoRequest{NombreProductos: "Toalla", Precio: decimal.NewFromInt(3), CantidadExistente: 5, IDProveedor: f.otro.IDProveedor})
	require.NoError(t, err)
	require.NotNil(t, p.Proveedor)

	list, total, err := svc.List(ctx, repository.ListParams{Filters: map[string]string{"idproveedor": "2"}})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, it := range list {
		assert.Equal(t, f.otro.IDProveedor, it.ProveedorID)
	}
}

func TestCatalogService_WithoutRedis(t *testing.T) {
	f := newFixture(t)
	repo := repository.NewServicioRepository(f.db)
	catalog := NewCatalogService(repo, nil)
	servicios := NewServicioService(repo, repository.NewCategoriaServicioRepository(f.db), catalog)
	ctx := context.Background()

	list, err := catalog.Servicios(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Lavado", list[0].Categoria)

	_, err = servicios.Create(ctx, &dto.ServicioRequest{NombreServicios: "Encerado", PrecioUnitario: decimal.NewFromInt(20), IDCategoriaServicios: f.categoria.IDCategoriaServicios})
	require.NoError(t, err)
	list, err = catalog.Servicios(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)

	_, err = servicios.Create(ctx, &dto.ServicioRequest{NombreServicios: "X", IDCategoriaServicios: 999})
	requireKind(t, err, KindValidation)
}

func TestParseFecha(t *testing.T) {
	for _, s := range []string{"2024-05-10", "2024-05-10T08:30", "2024-05-10 08:30:00", "2024-05-10T08:30:00Z", "2024-05-10T08:30:00-05:00"} {
		_, ok := parseFecha(s)
		assert.True(t, ok, s)
	}
	for _, s := range []string{"", "10/05/2024", "hoy"} {
		_, ok := parseFecha(s)
		assert.False(t, ok, s)
	}
}
