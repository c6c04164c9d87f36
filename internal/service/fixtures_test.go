package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"tunik/internal/acl"
	"tunik/internal/model"
	"tunik/internal/testutil"
	"tunik/internal/worker"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeQueue records enqueued jobs instead of pushing them to Redis.
type fakeQueue struct {
	mu           sync.Mutex
	disabled     bool
	emails       []worker.EmailJobPayload
	cotizaciones []worker.CotizacionJobPayload
}

func (q *fakeQueue) Enabled() bool { return !q.disabled }

func (q *fakeQueue) EnqueueEmail(_ context.Context, p worker.EmailJobPayload) error {
	if q.disabled {
		return worker.ErrQueueDisabled
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.emails = append(q.emails, p)
	return nil
}

func (q *fakeQueue) EnqueueCotizacion(_ context.Context, p worker.CotizacionJobPayload) error {
	if q.disabled {
		return worker.ErrQueueDisabled
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.cotizaciones = append(q.cotizaciones, p)
	return nil
}

func newACLStore(t *testing.T) *acl.FileStore {
	t.Helper()
	s, err := acl.NewFileStore(filepath.Join(t.TempDir(), "acl.json"))
	require.NoError(t, err)
	return s
}

// fixture holds one row of each lookup so tests can reference them.
type fixture struct {
	db        *gorm.DB
	cliente   model.Usuario
	vehiculo  model.Vehiculo
	categoria model.CategoriaServicio
	lavado    model.Servicio
	pulido    model.Servicio
	proveedor model.Proveedor
	otro      model.Proveedor
	cera      model.Producto // id 7
	shampoo   model.Producto
	ajeno     model.Producto // belongs to otro
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	f := &fixture{db: db}

	f.cliente = model.Usuario{Cedula: "0102030405", Nombre: "Ana", Email: "ana@example.com", Contrasena: "x", RolID: model.RolClienteID}
	marca := model.Marca{Descripcion: "Toyota"}
	tipo := model.TipoVehiculo{Nombre: "Sedán"}
	require.NoError(t, db.Create(&f.cliente).Error)
	require.NoError(t, db.Create(&marca).Error)
	require.NoError(t, db.Create(&tipo).Error)
	f.vehiculo = model.Vehiculo{Placa: "ABC-123", Modelo: "Corolla", TipoVehiculoID: tipo.IDTipoVehiculos, MarcaID: marca.IDMarca, UsuarioID: f.cliente.Cedula}
	require.NoError(t, db.Create(&f.vehiculo).Error)

	f.categoria = model.CategoriaServicio{NombreCategorias: "Lavado"}
	require.NoError(t, db.Create(&f.categoria).Error)
	f.lavado = model.Servicio{NombreServicios: "Lavado completo", PrecioUnitario: decimal.NewFromInt(15), CategoriaID: f.categoria.IDCategoriaServicios}
	f.pulido = model.Servicio{NombreServicios: "Pulido", PrecioUnitario: decimal.NewFromInt(40), CategoriaID: f.categoria.IDCategoriaServicios}
	require.NoError(t, db.Create(&f.lavado).Error)
	require.NoError(t, db.Create(&f.pulido).Error)

	f.proveedor = model.Proveedor{Nombre: "Distribuidora Sur"}
	f.otro = model.Proveedor{Nombre: "Química Norte"}
	require.NoError(t, db.Create(&f.proveedor).Error)
	require.NoError(t, db.Create(&f.otro).Error)
	f.cera = model.Producto{IDProductos: 7, NombreProductos: "Cera", Precio: decimal.RequireFromString("12.50"), CantidadExistente: 10, ProveedorID: f.proveedor.IDProveedor}
	f.shampoo = model.Producto{IDProductos: 8, NombreProductos: "Shampoo", Precio: decimal.NewFromInt(4), CantidadExistente: 3, ProveedorID: f.proveedor.IDProveedor}
	f.ajeno = model.Producto{IDProductos: 9, NombreProductos: "Desengrasante", Precio: decimal.NewFromInt(6), ProveedorID: f.otro.IDProveedor}
	require.NoError(t, db.Create(&f.cera).Error)
	require.NoError(t, db.Create(&f.shampoo).Error)
	require.NoError(t, db.Create(&f.ajeno).Error)
	return f
}

func (f *fixture) stock(t *testing.T, id int) int {
	t.Helper()
	var p model.Producto
	require.NoError(t, f.db.First(&p, "idproductos = ?", id).Error)
	return p.CantidadExistente
}

func requireKind(t *testing.T, err error, k Kind) *Error {
	t.Helper()
	require.Error(t, err)
	e, ok := AsError(err)
	require.True(t, ok, "expected *service.Error, got %T: %v", err, err)
	require.Equal(t, k, e.Kind, e.Msg)
	return e
}
