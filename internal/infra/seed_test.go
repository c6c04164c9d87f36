package infra_test

import (
	"testing"

	"tunik/internal/infra"
	"tunik/internal/model"
	"tunik/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedSystemData_Idempotent(t *testing.T) {
	db := testutil.NewDB(t)
	require.NoError(t, infra.SeedSystemData(db))

	var roles []model.Rol
	require.NoError(t, db.Order("idroles").Find(&roles).Error)
	require.Len(t, roles, 2)
	assert.Equal(t, model.RolAdministrador, roles[0].Descripcion)
	assert.Equal(t, model.RolCliente, roles[1].Descripcion)

	var metodos int64
	require.NoError(t, db.Model(&model.MetodoPago{}).Count(&metodos).Error)
	assert.Equal(t, int64(len(infra.DefaultMetodosPago)), metodos)
}

func TestUpsertUsuario(t *testing.T) {
	db := testutil.NewDB(t)
	u := &model.Usuario{Cedula: "9", Nombre: "Admin", Email: "a@tunik.com", Contrasena: "h1", RolID: model.RolAdministradorID}
	require.NoError(t, infra.UpsertUsuario(db, u))

	u2 := &model.Usuario{Cedula: "9", Nombre: "Admin Nuevo", Email: "b@tunik.com", Contrasena: "h2", RolID: model.RolClienteID}
	require.NoError(t, infra.UpsertUsuario(db, u2))

	var got []model.Usuario
	require.NoError(t, db.Find(&got).Error)
	require.Len(t, got, 1)
	assert.Equal(t, "Admin Nuevo", got[0].Nombre)
	assert.Equal(t, "b@tunik.com", got[0].Email)
	assert.Equal(t, "h2", got[0].Contrasena)
	assert.Equal(t, model.RolClienteID, got[0].RolID)
}
