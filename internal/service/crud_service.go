package service

import (
	"context"
	"errors"

	"tunik/internal/acl"
	"tunik/internal/repository"

	"gorm.io/gorm"
)

// CrudService is the service every simple entity gets. Req is the request
// DTO bound by the handler.
type CrudService[T any, K repository.Key, Req any] interface {
	List(ctx context.Context, p repository.ListParams) ([]T, int64, error)
	Get(ctx context.Context, id K) (*T, error)
	Create(ctx context.Context, req *Req) (*T, error)
	Update(ctx context.Context, id K, req *Req) (*T, error)
	Delete(ctx context.Context, id K) error
}

// CrudConfig plugs entity rules into the generic service.
type CrudConfig[T any, K repository.Key, Req any] struct {
	NotFound   string // "Rol no encontrado"
	Duplicated string // message for unique violations; empty uses a generic one

	// Key returns the primary key of e.
	Key func(e *T) K
	// Bind validates req and copies it onto e. creating is true for POST;
	// on PUT e holds the stored row.
	Bind func(ctx context.Context, req *Req, e *T, creating bool) error
	// GuardDelete runs before the row is looked up.
	GuardDelete func(ctx context.Context, id K) error
	// AfterWrite runs after a successful create/update, AfterDelete after a delete.
	AfterWrite  func(ctx context.Context, e *T, created bool)
	AfterDelete func(ctx context.Context, id K)
	// OwnedBy returns the cedula of the customer e belongs to. When set,
	// owner-scoped callers (see acl.WithOwner) only list, read and write
	// their own rows.
	OwnedBy func(ctx context.Context, e *T) (string, error)
}

type crudService[T any, K repository.Key, Req any] struct {
	repo repository.CRUD[T, K]
	cfg  CrudConfig[T, K, Req]
}

func NewCrudService[T any, K repository.Key, Req any](repo repository.CRUD[T, K], cfg CrudConfig[T, K, Req]) CrudService[T, K, Req] {
	return &crudService[T, K, Req]{repo: repo, cfg: cfg}
}

func (s *crudService[T, K, Req]) List(ctx context.Context, p repository.ListParams) ([]T, int64, error) {
	if owner, ok := acl.OwnerFrom(ctx); ok && s.cfg.OwnedBy != nil {
		p.Owner = owner
	}
	return s.repo.List(ctx, p)
}

func (s *crudService[T, K, Req]) Get(ctx context.Context, id K) (*T, error) {
	e, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound(s.cfg.NotFound)
	}
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// authorize rejects e when the caller is owner-scoped and e belongs to
// someone else.
func (s *crudService[T, K, Req]) authorize(ctx context.Context, e *T) error {
	owner, ok := acl.OwnerFrom(ctx)
	if !ok || s.cfg.OwnedBy == nil {
		return nil
	}
	got, err := s.cfg.OwnedBy(ctx, e)
	if err != nil {
		return err
	}
	if got != owner {
		return Forbidden("Permisos insuficientes")
	}
	return nil
}

func (s *crudService[T, K, Req]) Create(ctx context.Context, req *Req) (*T, error) {
	e := new(T)
	if err := s.cfg.Bind(ctx, req, e, true); err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, e); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, translateWrite(err, s.cfg.Duplicated)
	}
	e = s.reload(ctx, e)
	if s.cfg.AfterWrite != nil {
		s.cfg.AfterWrite(ctx, e, true)
	}
	return e, nil
}

func (s *crudService[T, K, Req]) Update(ctx context.Context, id K, req *Req) (*T, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cfg.Bind(ctx, req, e, false); err != nil {
		return nil, err
	}
	// the row may not be handed over to another customer either
	if err := s.authorize(ctx, e); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, translateWrite(err, s.cfg.Duplicated)
	}
	e = s.reload(ctx, e)
	if s.cfg.AfterWrite != nil {
		s.cfg.AfterWrite(ctx, e, false)
	}
	return e, nil
}

func (s *crudService[T, K, Req]) Delete(ctx context.Context, id K) error {
	if s.cfg.GuardDelete != nil {
		if err := s.cfg.GuardDelete(ctx, id); err != nil {
			return err
		}
	}
	if _, ok := acl.OwnerFrom(ctx); ok && s.cfg.OwnedBy != nil {
		if _, err := s.Get(ctx, id); err != nil {
			return err
		}
	}
	if err := translateDelete(s.repo.Delete(ctx, id), s.cfg.NotFound); err != nil {
		return err
	}
	if s.cfg.AfterDelete != nil {
		s.cfg.AfterDelete(ctx, id)
	}
	return nil
}

// reload re-reads e so responses carry the preloaded relations. The written
// value is kept if the read fails.
func (s *crudService[T, K, Req]) reload(ctx context.Context, e *T) *T {
	if s.cfg.Key == nil {
		return e
	}
	fresh, err := s.repo.FindByID(ctx, s.cfg.Key(e))
	if err != nil {
		return e
	}
	return fresh
}
