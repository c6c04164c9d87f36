package service

import (
	"context"
	"testing"

	"tunik/internal/config"
	"tunik/internal/dto"
	"tunik/internal/model"
	"tunik/internal/repository"
	"tunik/internal/testutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUsuarioServices(t *testing.T) (UsuarioService, AuthService, repository.UsuarioRepository) {
	db := testutil.NewDB(t)
	repo := repository.NewUsuarioRepository(db)
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpirationHours: 1}
	return NewUsuarioService(repo, repository.NewRolRepository(db)),
		NewAuthService(repo, newACLStore(t), cfg),
		repo
}

func TestUsuarioService_CreateHashesPassword(t *testing.T) {
	svc, _, repo := newUsuarioServices(t)
	ctx := context.Background()

	u, err := svc.Create(ctx, &dto.UsuarioRequest{
		Cedula: " 0911 ", Nombre: "Marta", Email: "Marta@Example.com", Contrasena: "secreto1", IDRoles: model.RolAdministradorID,
	})
	require.NoError(t, err)
	assert.Equal(t, "0911", u.Cedula)
	assert.Equal(t, "marta@example.com", u.Email)
	require.NotNil(t, u.Rol)
	assert.Equal(t, model.RolAdministrador, u.Rol.Descripcion)

	stored, err := repo.FindByID(ctx, "0911")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Contrasena), []byte("secreto1")))
}

func TestUsuarioService_Rules(t *testing.T) {
	svc, _, repo := newUsuarioServices(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &dto.UsuarioRequest{Cedula: "1", Nombre: "A", Email: "a@example.com", IDRoles: 2})
	requireKind(t, err, KindValidation)

	_, err = svc.Create(ctx, &dto.UsuarioRequest{Cedula: "1", Nombre: "A", Email: "a@example.com", Contrasena: "123456", IDRoles: 42})
	e := requireKind(t, err, KindValidation)
	assert.Contains(t, e.Fields, "idroles")

	_, err = svc.Create(ctx, &dto.UsuarioRequest{Cedula: "1", Nombre: "A", Email: "a@example.com", Contrasena: "123456", IDRoles: 2})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &dto.UsuarioRequest{Cedula: "2", Nombre: "B", Email: "A@example.com", Contrasena: "123456", IDRoles: 2})
	requireKind(t, err, KindConflict)
	_, err = svc.Create(ctx, &dto.UsuarioRequest{Cedula: "1", Nombre: "B", Email: "b@example.com", Contrasena: "123456", IDRoles: 2})
	requireKind(t, err, KindConflict)

	// update without password keeps the stored hash
	before, err := repo.FindByID(ctx, "1")
	require.NoError(t, err)
	u, err := svc.Update(ctx, "1", &dto.UsuarioRequest{Cedula: "1", Nombre: "Ana", Email: "a@example.com", IDRoles: 2})
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Nombre)
	after, err := repo.FindByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, before.Contrasena, after.Contrasena)

	_, err = svc.Update(ctx, "nadie", &dto.UsuarioRequest{Cedula: "nadie", Nombre: "X", Email: "x@example.com", IDRoles: 2})
	requireKind(t, err, KindNotFound)
}

func TestAuthService_Login(t *testing.T) {
	usuarios, auth, _ := newUsuarioServices(t)
	ctx := context.Background()
	_, err := usuarios.Create(ctx, &dto.UsuarioRequest{
		Cedula: "100", Nombre: "Admin", Email: "admin@tunik.com", Contrasena: "admin123", IDRoles: model.RolAdministradorID,
	})
	require.NoError(t, err)

	_, err = auth.Login(ctx, dto.LoginRequest{Email: "nadie@tunik.com", Contrasena: "admin123"})
	e := requireKind(t, err, KindNotFound)
	assert.Equal(t, "Usuario no encontrado", e.Msg)

	_, err = auth.Login(ctx, dto.LoginRequest{Email: "admin@tunik.com", Contrasena: "incorrecta"})
	e = requireKind(t, err, KindUnauthorized)
	assert.Equal(t, "Contraseña incorrecta", e.Msg)

	resp, err := auth.Login(ctx, dto.LoginRequest{Email: "ADMIN@tunik.com", Contrasena: "admin123"})
	require.NoError(t, err)
	assert.True(t, resp.Ok)
	assert.Equal(t, "100", resp.Usuario.Cedula)
	assert.True(t, resp.ACL.Permisos["usuarios"])

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (any, error) { return []byte("test-secret"), nil })
	require.NoError(t, err)
	assert.Equal(t, "100", claims["cedula"])
	assert.EqualValues(t, model.RolAdministradorID, claims["idroles"])
}

func TestAuthService_RegisterIsAlwaysCliente(t *testing.T) {
	_, auth, repo := newUsuarioServices(t)
	ctx := context.Background()

	resp, err := auth.Register(ctx, dto.RegisterRequest{Cedula: "200", Nombre: "Pedro", Email: "pedro@example.com", Contrasena: "clave123"})
	require.NoError(t, err)
	assert.Equal(t, model.RolClienteID, resp.Usuario.RolID)
	assert.NotEmpty(t, resp.Token)
	assert.False(t, resp.ACL.Permisos["usuarios"])

	_, err = auth.Register(ctx, dto.RegisterRequest{Cedula: "201", Nombre: "Otro", Email: "PEDRO@example.com", Contrasena: "clave123"})
	requireKind(t, err, KindConflict)

	me, err := auth.Me(ctx, "200")
	require.NoError(t, err)
	assert.Equal(t, "pedro@example.com", me.Usuario.Email)

	_, err = auth.Me(ctx, "999")
	requireKind(t, err, KindUnauthorized)

	n, _, err := repo.List(ctx, repository.ListParams{})
	require.NoError(t, err)
	assert.Len(t, n, 1)
}
