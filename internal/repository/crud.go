package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Key is the primary-key type of an entity: an autoincrement id or a natural
// string key such as a cedula or a licence plate.
type Key interface {
	~int | ~string
}

// Schema describes how an entity is queried.
type Schema struct {
	PK       string   // primary key column
	Search   []string // columns matched by the free-text q parameter
	Filters  []string // columns accepted as exact-match query filters
	Preloads []string // associations loaded on every read
	Order    string   // default ORDER BY

	// Owner is a condition with one placeholder for the owner's cedula,
	// applied when ListParams.Owner is set. Empty means not owner-scoped.
	Owner string
}

// ListParams narrows a List call. Page 0 returns every matching row.
type ListParams struct {
	Q       string
	Filters map[string]string
	Page    int
	Limit   int
	Owner   string // cedula the rows must belong to
}

// CRUD is the repository every entity gets.
type CRUD[T any, K Key] interface {
	List(ctx context.Context, p ListParams) ([]T, int64, error)
	FindByID(ctx context.Context, id K) (*T, error)
	Exists(ctx context.Context, id K) (bool, error)
	Create(ctx context.Context, e *T) error
	Update(ctx context.Context, e *T) error
	Delete(ctx context.Context, id K) error
	Schema() Schema
	DB() *gorm.DB
}

type crudRepo[T any, K Key] struct {
	db     *gorm.DB
	schema Schema
}

func NewCRUD[T any, K Key](db *gorm.DB, s Schema) CRUD[T, K] {
	return &crudRepo[T, K]{db: db, schema: s}
}

func (r *crudRepo[T, K]) Schema() Schema { return r.schema }
func (r *crudRepo[T, K]) DB() *gorm.DB   { return r.db }

func (r *crudRepo[T, K]) List(ctx context.Context, p ListParams) ([]T, int64, error) {
	q := r.db.WithContext(ctx).Model(new(T))
	q = applyFilters(q, r.schema, p)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = preload(q, r.schema.Preloads)
	if r.schema.Order != "" {
		q = q.Order(r.schema.Order)
	}
	if p.Page > 0 && p.Limit > 0 {
		q = q.Offset((p.Page - 1) * p.Limit).Limit(p.Limit)
	}

	items := make([]T, 0)
	if err := q.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *crudRepo[T, K]) FindByID(ctx context.Context, id K) (*T, error) {
	var e T
	err := preload(r.db.WithContext(ctx), r.schema.Preloads).
		Where(r.schema.PK+" = ?", id).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *crudRepo[T, K]) Exists(ctx context.Context, id K) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(new(T)).Where(r.schema.PK+" = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *crudRepo[T, K]) Create(ctx context.Context, e *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(e).Error
}

func (r *crudRepo[T, K]) Update(ctx context.Context, e *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(e).Error
}

// Delete removes one row. A missing row is gorm.ErrRecordNotFound; a row
// still referenced elsewhere surfaces as gorm.ErrForeignKeyViolated.
func (r *crudRepo[T, K]) Delete(ctx context.Context, id K) error {
	res := r.db.WithContext(ctx).Delete(new(T), r.schema.PK+" = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// applyFilters adds the q search (case-insensitive, any searchable column)
// and the exact filters the schema allows. Unknown filter keys are ignored.
func applyFilters(q *gorm.DB, s Schema, p ListParams) *gorm.DB {
	if term := strings.TrimSpace(p.Q); term != "" && len(s.Search) > 0 {
		like := "%" + strings.ToLower(term) + "%"
		conds := make([]string, len(s.Search))
		args := make([]any, len(s.Search))
		for i, col := range s.Search {
			conds[i] = "LOWER(CAST(" + col + " AS TEXT)) LIKE ?"
			args[i] = like
		}
		q = q.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
	if p.Owner != "" && s.Owner != "" {
		q = q.Where(s.Owner, p.Owner)
	}
	for _, col := range s.Filters {
		if v, ok := p.Filters[col]; ok && v != "" {
			q = q.Where(col+" = ?", v)
		}
	}
	return q
}

func preload(q *gorm.DB, assocs []string) *gorm.DB {
	for _, a := range assocs {
		q = q.Preload(a)
	}
	return q
}
