package service

import (
	"context"
	"testing"

	"tunik/internal/acl"
	"tunik/internal/dto"
	"tunik/internal/model"
	"tunik/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// addBeto registers a second customer with his own car.
func addBeto(t *testing.T, f *fixture) (model.Usuario, model.Vehiculo) {
	t.Helper()
	beto := model.Usuario{Cedula: "0999999999", Nombre: "Beto", Email: "beto@example.com", Contrasena: "x", RolID: model.RolClienteID}
	require.NoError(t, f.db.Create(&beto).Error)
	auto := model.Vehiculo{Placa: "XYZ-999", Modelo: "Civic", TipoVehiculoID: f.vehiculo.TipoVehiculoID, MarcaID: f.vehiculo.MarcaID, UsuarioID: beto.Cedula}
	require.NoError(t, f.db.Create(&auto).Error)
	return beto, auto
}

func TestAgendaCitaService_OwnerScope(t *testing.T) {
	f := newFixture(t)
	_, auto := addBeto(t, f)
	vehiculos := repository.NewVehiculoRepository(f.db)
	svc := NewAgendaCitaService(repository.NewAgendaCitaRepository(f.db), vehiculos, nil)

	deBeto, err := svc.Create(context.Background(), &dto.AgendaCitaRequest{Placa: auto.Placa, Fecha: "2024-07-01"})
	require.NoError(t, err)

	ana := acl.WithOwner(context.Background(), f.cliente.Cedula)
	propia, err := svc.Create(ana, &dto.AgendaCitaRequest{Placa: f.vehiculo.Placa, Fecha: "2024-07-02"})
	require.NoError(t, err)

	citas, total, err := svc.List(ana, repository.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, citas, 1)
	assert.Equal(t, propia.IDAgendaCitas, citas[0].IDAgendaCitas)

	_, err = svc.Get(ana, deBeto.IDAgendaCitas)
	requireKind(t, err, KindForbidden)
	_, err = svc.Update(ana, deBeto.IDAgendaCitas, &dto.AgendaCitaRequest{Placa: auto.Placa, Fecha: "2024-07-01", Estado: model.CitaCancelada})
	requireKind(t, err, KindForbidden)
	requireKind(t, svc.Delete(ana, deBeto.IDAgendaCitas), KindForbidden)
	_, err = svc.Create(ana, &dto.AgendaCitaRequest{Placa: auto.Placa, Fecha: "2024-07-03"})
	requireKind(t, err, KindForbidden)

	// moving her own appointment onto someone else's car is refused too
	_, err = svc.Update(ana, propia.IDAgendaCitas, &dto.AgendaCitaRequest{Placa: auto.Placa, Fecha: "2024-07-02"})
	requireKind(t, err, KindForbidden)

	stored, err := svc.Get(context.Background(), deBeto.IDAgendaCitas)
	require.NoError(t, err)
	assert.Equal(t, model.CitaPendiente, stored.Estado)
	require.NoError(t, svc.Delete(ana, propia.IDAgendaCitas))
}

func TestEvaluacionService_OwnerScope(t *testing.T) {
	f := newFixture(t)
	beto, _ := addBeto(t, f)
	svc := NewEvaluacionService(repository.NewEvaluacionRepository(f.db), repository.NewUsuarioRepository(f.db), repository.NewServicioRepository(f.db))
	ana := acl.WithOwner(context.Background(), f.cliente.Cedula)

	_, err := svc.Create(ana, &dto.EvaluacionRequest{Cedula: beto.Cedula, IDServicios: f.lavado.IDServicios, Calificacion: 1})
	requireKind(t, err, KindForbidden)

	_, err = svc.Create(ana, &dto.EvaluacionRequest{Cedula: f.cliente.Cedula, IDServicios: f.lavado.IDServicios, Calificacion: 5})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), &dto.EvaluacionRequest{Cedula: beto.Cedula, IDServicios: f.pulido.IDServicios, Calificacion: 3})
	require.NoError(t, err)

	evs, total, err := svc.List(ana, repository.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, evs, 1)
	assert.Equal(t, f.cliente.Cedula, evs[0].UsuarioID)

	_, total, err = svc.List(context.Background(), repository.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestVehiculoService_OwnerScope(t *testing.T) {
	f := newFixture(t)
	beto, auto := addBeto(t, f)
	svc := NewVehiculoService(repository.NewVehiculoRepository(f.db), VehiculoDeps{
		Tipos:    repository.NewTipoVehiculoRepository(f.db),
		Marcas:   repository.NewMarcaRepository(f.db),
		Usuarios: repository.NewUsuarioRepository(f.db),
	})
	ana := acl.WithOwner(context.Background(), f.cliente.Cedula)

	autos, _, err := svc.List(ana, repository.ListParams{Q: "c"})
	require.NoError(t, err)
	require.Len(t, autos, 1)
	assert.Equal(t, f.vehiculo.Placa, autos[0].Placa)

	_, err = svc.Get(ana, auto.Placa)
	requireKind(t, err, KindForbidden)

	_, err = svc.Update(ana, f.vehiculo.Placa, &dto.VehiculoRequest{
		Modelo: "Corolla", IDTipoVehiculos: f.vehiculo.TipoVehiculoID, IDMarca: f.vehiculo.MarcaID, Cedula: beto.Cedula,
	})
	requireKind(t, err, KindForbidden)
}
