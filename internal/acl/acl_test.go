package acl

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_MalformedYieldsEmpty(t *testing.T) {
	for _, in := range []string{"", "{", "[]", `"x"`} {
		a := Parse([]byte(in))
		assert.Empty(t, a.Permisos, in)
		assert.Empty(t, a.Privilegios, in)
		assert.False(t, a.CanUse("roles"))
	}
}

func TestEncodeParse_RoundTrip(t *testing.T) {
	a := Empty()
	a.Permisos["pedidos"] = true
	a.Privilegios["pedidos"] = []string{Ver, Crear}

	data, err := a.Encode()
	require.NoError(t, err)
	b := Parse(data)
	assert.True(t, b.Can("pedidos", Crear))
	assert.False(t, b.Can("pedidos", Eliminar))
}

func TestCan_RequiresModuleEnabled(t *testing.T) {
	a := Empty()
	a.Privilegios["roles"] = []string{Ver}
	assert.False(t, a.Can("roles", Ver))

	a.Permisos["roles"] = true
	assert.True(t, a.Can("roles", Ver))
}

func TestSanitize_DropsUnknown(t *testing.T) {
	a := Empty()
	a.Permisos["roles"] = true
	a.Permisos["hackeo"] = true
	a.Privilegios["roles"] = []string{"ver", "borrar_todo", "crear", "ver"}

	s := a.Sanitize()
	assert.Equal(t, map[string]bool{"roles": true}, s.Permisos)
	assert.Equal(t, []string{"crear", "ver"}, s.Privilegios["roles"])
}

func TestActionFor(t *testing.T) {
	assert.Equal(t, Ver, ActionFor(http.MethodGet))
	assert.Equal(t, Crear, ActionFor(http.MethodPost))
	assert.Equal(t, Editar, ActionFor(http.MethodPut))
	assert.Equal(t, Editar, ActionFor(http.MethodPatch))
	assert.Equal(t, Eliminar, ActionFor(http.MethodDelete))
}

func TestFileStore_DefaultsWhenMissing(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "acl.json"))
	require.NoError(t, err)

	assert.True(t, s.Get(1).Can("roles", Eliminar))
	cliente := s.Get(2)
	assert.True(t, cliente.Can("servicios", Ver))
	assert.False(t, cliente.Can("servicios", Crear))
	assert.False(t, s.Get(99).CanUse("servicios"))
}

func TestFileStore_SetPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "acl.json")
	s, err := NewFileStore(path)
	require.NoError(t, err)

	a := Empty()
	a.Permisos["pedidos"] = true
	a.Privilegios["pedidos"] = []string{Ver}
	require.NoError(t, s.Set(5, a))

	reloaded, err := NewFileStore(path)
	require.NoError(t, err)
	assert.True(t, reloaded.Get(5).Can("pedidos", Ver))
	// defaults are part of the written file too
	assert.True(t, reloaded.Get(2).Can("servicios", Ver))

	require.NoError(t, reloaded.Delete(5))
	again, err := NewFileStore(path)
	require.NoError(t, err)
	assert.False(t, again.Get(5).CanUse("pedidos"))
}

func TestFileStore_AdministradorIsFixed(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "acl.json"))
	require.NoError(t, err)
	assert.ErrorIs(t, s.Set(1, Empty()), ErrAdministrador)
	assert.True(t, s.Get(1).Can("usuarios", Crear))
}

func TestFileStore_CorruptFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "acl.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	s, err := NewFileStore(path)
	require.NoError(t, err)
	assert.True(t, s.Get(2).Can("servicios", Ver))
}

func TestOwnerScope(t *testing.T) {
	_, ok := OwnerFrom(context.Background())
	assert.False(t, ok)

	cedula, ok := OwnerFrom(WithOwner(context.Background(), "0102"))
	assert.True(t, ok)
	assert.Equal(t, "0102", cedula)

	_, ok = OwnerFrom(WithOwner(context.Background(), ""))
	assert.False(t, ok)

	assert.False(t, Scoped(administradorID))
	assert.True(t, Scoped(clienteID))
	assert.True(t, Scoped(7))
}
