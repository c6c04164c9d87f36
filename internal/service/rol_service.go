package service

import (
	"context"
	"errors"
	"strings"

	"tunik/internal/acl"
	"tunik/internal/dto"
	"tunik/internal/model"
	"tunik/internal/repository"

	"gorm.io/gorm"
)

type RolService = CrudService[model.Rol, int, dto.RolRequest]

// isSystemRol reports whether r is one of the roles the application relies
// on. Those can be neither renamed nor deleted.
func isSystemRol(r *model.Rol) bool {
	if r.IDRoles == model.RolAdministradorID {
		return true
	}
	d := strings.TrimSpace(r.Descripcion)
	return strings.EqualFold(d, model.RolAdministrador) || strings.EqualFold(d, model.RolCliente)
}

func NewRolService(repo repository.RolRepository, acls acl.Store) RolService {
	return NewCrudService(repo, CrudConfig[model.Rol, int, dto.RolRequest]{
		NotFound:   "Rol no encontrado",
		Duplicated: "Ya existe un rol con esa descripción",
		Key:        func(r *model.Rol) int { return r.IDRoles },
		Bind: func(ctx context.Context, req *dto.RolRequest, r *model.Rol, creating bool) error {
			desc, err := required("descripcion", req.Descripcion)
			if err != nil {
				return err
			}
			if !creating && isSystemRol(r) && desc != r.Descripcion {
				return Forbidden("No se puede renombrar un rol del sistema")
			}
			taken, err := repo.DescripcionInUse(ctx, desc, r.IDRoles)
			if err != nil {
				return err
			}
			if taken {
				return Conflict("Ya existe un rol con esa descripción")
			}
			r.Descripcion = desc
			return nil
		},
		// Administrador is refused before looking the row up, so the answer
		// does not depend on whether it exists.
		GuardDelete: func(ctx context.Context, id int) error {
			if id == model.RolAdministradorID {
				return Forbidden("No se puede eliminar el rol Administrador")
			}
			r, err := repo.FindByID(ctx, id)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("Rol no encontrado")
			}
			if err != nil {
				return err
			}
			if isSystemRol(r) {
				return Forbidden("No se puede eliminar un rol del sistema")
			}
			return nil
		},
		AfterDelete: func(_ context.Context, id int) {
			if err := acls.Delete(id); err != nil {
				logACLError(err, id)
			}
		},
	})
}
