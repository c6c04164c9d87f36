package repository

import (
	"context"
	"strings"

	"tunik/internal/model"

	"gorm.io/gorm"
)

var rolSchema = Schema{
	PK:     "idroles",
	Search: []string{"descripcion"},
	Order:  "idroles",
}

type RolRepository interface {
	CRUD[model.Rol, int]
	// DescripcionInUse reports whether another role already has this name,
	// ignoring case.
	DescripcionInUse(ctx context.Context, descripcion string, exceptID int) (bool, error)
}

type rolRepo struct {
	CRUD[model.Rol, int]
	db *gorm.DB
}

func NewRolRepository(db *gorm.DB) RolRepository {
	return &rolRepo{CRUD: NewCRUD[model.Rol, int](db, rolSchema), db: db}
}

func (r *rolRepo) DescripcionInUse(ctx context.Context, descripcion string, exceptID int) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Rol{}).
		Where("LOWER(descripcion) = ? AND idroles <> ?", strings.ToLower(descripcion), exceptID).
		Count(&n).Error
	return n > 0, err
}
