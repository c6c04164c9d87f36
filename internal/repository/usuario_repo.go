package repository

import (
	"context"
	"strings"

	"tunik/internal/model"

	"gorm.io/gorm"
)

var usuarioSchema = Schema{
	PK:       "cedula",
	Search:   []string{"cedula", "nombre", "email", "telefono"},
	Filters:  []string{"idroles"},
	Preloads: []string{"Rol"},
	Order:    "nombre",
}

type UsuarioRepository interface {
	CRUD[model.Usuario, string]
	FindByEmail(ctx context.Context, email string) (*model.Usuario, error)
	EmailInUse(ctx context.Context, email, exceptCedula string) (bool, error)
}

type usuarioRepo struct {
	CRUD[model.Usuario, string]
	db *gorm.DB
}

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository {
	return &usuarioRepo{CRUD: NewCRUD[model.Usuario, string](db, usuarioSchema), db: db}
}

// FindByEmail matches case-insensitively.
func (r *usuarioRepo) FindByEmail(ctx context.Context, email string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).Preload("Rol").
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usuarioRepo) EmailInUse(ctx context.Context, email, exceptCedula string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Usuario{}).
		Where("LOWER(email) = ? AND cedula <> ?", strings.ToLower(strings.TrimSpace(email)), exceptCedula).
		Count(&n).Error
	return n > 0, err
}
