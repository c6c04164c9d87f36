package service

import (
	"context"
	"encoding/json"
	"time"

	"tunik/internal/dto"
	"tunik/internal/model"
	"tunik/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	catalogCacheKey = "catalogo:servicios"
	catalogCacheTTL = time.Hour
)

// CatalogService serves the public list of services shown on the landing
// site. It is cached in Redis and dropped on every service or category write.
type CatalogService interface {
	Servicios(ctx context.Context) ([]dto.ServicioPublico, error)
	Invalidate(ctx context.Context)
}

type catalogService struct {
	repo repository.CRUD[model.Servicio, int]
	rdb  *redis.Client
}

// NewCatalogService accepts a nil rdb; every call then goes to the database.
func NewCatalogService(repo repository.CRUD[model.Servicio, int], rdb *redis.Client) CatalogService {
	return &catalogService{repo: repo, rdb: rdb}
}

func (s *catalogService) Servicios(ctx context.Context) ([]dto.ServicioPublico, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, catalogCacheKey).Bytes(); err == nil {
			var out []dto.ServicioPublico
			if json.Unmarshal(cached, &out) == nil {
				return out, nil
			}
		}
	}

	servicios, _, err := s.repo.List(ctx, repository.ListParams{})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ServicioPublico, 0, len(servicios))
	for _, sv := range servicios {
		item := dto.ServicioPublico{
			IDServicios:     sv.IDServicios,
			NombreServicios: sv.NombreServicios,
			PrecioUnitario:  sv.PrecioUnitario,
		}
		if sv.Categoria != nil {
			item.Categoria = sv.Categoria.NombreCategorias
		}
		out = append(out, item)
	}

	// best effort
	if s.rdb != nil {
		if b, err := json.Marshal(out); err == nil {
			_ = s.rdb.Set(context.WithoutCancel(ctx), catalogCacheKey, b, catalogCacheTTL).Err()
		}
	}
	return out, nil
}

func (s *catalogService) Invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(context.WithoutCancel(ctx), catalogCacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("catalog cache invalidation failed")
	}
}
