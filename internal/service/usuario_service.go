package service

import (
	"context"
	"strings"

	"tunik/internal/dto"
	"tunik/internal/model"
	"tunik/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

type UsuarioService = CrudService[model.Usuario, string, dto.UsuarioRequest]

func NewUsuarioService(repo repository.UsuarioRepository, roles repository.RolRepository) UsuarioService {
	return NewCrudService(repo, CrudConfig[model.Usuario, string, dto.UsuarioRequest]{
		NotFound:   "Usuario no encontrado",
		Duplicated: "Ya existe un usuario con esa cédula o email",
		Key:        func(u *model.Usuario) string { return u.Cedula },
		Bind: func(ctx context.Context, req *dto.UsuarioRequest, u *model.Usuario, creating bool) error {
			if creating {
				cedula, err := required("cedula", req.Cedula)
				if err != nil {
					return err
				}
				u.Cedula = cedula
				if req.Contrasena == "" {
					return FieldError("contrasena", "La contraseña es obligatoria")
				}
			}
			nombre, err := required("nombre", req.Nombre)
			if err != nil {
				return err
			}
			email := strings.ToLower(strings.TrimSpace(req.Email))
			taken, err := repo.EmailInUse(ctx, email, u.Cedula)
			if err != nil {
				return err
			}
			if taken {
				return Conflict("El email ya está registrado")
			}
			if err := exists(ctx, roles.Exists, req.IDRoles, "idroles", "El rol no existe"); err != nil {
				return err
			}
			if req.Contrasena != "" {
				hash, err := hashPassword(req.Contrasena)
				if err != nil {
					return err
				}
				u.Contrasena = hash
			}
			u.Nombre = nombre
			u.Telefono = strings.TrimSpace(req.Telefono)
			u.Email = email
			u.RolID = req.IDRoles
			u.Rol = nil
			return nil
		},
	})
}

func hashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
