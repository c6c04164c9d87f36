package service

import (
	"context"
	"errors"
	"slices"

	"tunik/internal/acl"
	"tunik/internal/dto"
	"tunik/internal/repository"

	"github.com/rs/zerolog/log"
)

// ACLService reads and edits the per-role access lists.
type ACLService interface {
	Options() []dto.ACLOption
	Get(ctx context.Context, rolID int) (acl.ACL, error)
	Set(ctx context.Context, rolID int, req dto.ACLRequest) (acl.ACL, error)
}

type aclService struct {
	roles repository.RolRepository
	store acl.Store
}

func NewACLService(roles repository.RolRepository, store acl.Store) ACLService {
	return &aclService{roles: roles, store: store}
}

func (s *aclService) Options() []dto.ACLOption {
	out := make([]dto.ACLOption, 0, len(acl.Modules))
	for _, m := range acl.Modules {
		out = append(out, dto.ACLOption{Modulo: m, Acciones: slices.Clone(acl.Actions)})
	}
	return out
}

func (s *aclService) Get(ctx context.Context, rolID int) (acl.ACL, error) {
	if err := s.requireRol(ctx, rolID); err != nil {
		return acl.ACL{}, err
	}
	return s.store.Get(rolID), nil
}

func (s *aclService) Set(ctx context.Context, rolID int, req dto.ACLRequest) (acl.ACL, error) {
	if err := s.requireRol(ctx, rolID); err != nil {
		return acl.ACL{}, err
	}
	a := acl.ACL{Permisos: req.Permisos, Privilegios: req.Privilegios}.Sanitize()
	if err := s.store.Set(rolID, a); err != nil {
		if errors.Is(err, acl.ErrAdministrador) {
			return acl.ACL{}, Forbidden("Los permisos del Administrador no se pueden modificar")
		}
		return acl.ACL{}, err
	}
	return s.store.Get(rolID), nil
}

func (s *aclService) requireRol(ctx context.Context, rolID int) error {
	ok, err := s.roles.Exists(ctx, rolID)
	if err != nil {
		return err
	}
	if !ok {
		return NotFound("Rol no encontrado")
	}
	return nil
}

func logACLError(err error, rolID int) {
	log.Error().Err(err).Int("idroles", rolID).Msg("acl store update failed")
}
