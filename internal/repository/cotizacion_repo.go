package repository

import (
	"context"

	"tunik/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var cotizacionSchema = Schema{
	PK:       "idcotizaciones",
	Search:   []string{"placa", "estado"},
	Filters:  []string{"placa", "estado", "idmpago"},
	Preloads: []string{"Vehiculo.Usuario", "Vehiculo.Marca", "MetodoPago", "Items.Servicio"},
	Order:    "fecha DESC, idcotizaciones DESC",
}

type CotizacionRepository interface {
	CRUD[model.Cotizacion, int]
	CreateTx(ctx context.Context, tx *gorm.DB, c *model.Cotizacion) error
	UpdateTx(ctx context.Context, tx *gorm.DB, c *model.Cotizacion) error
	DeleteTx(ctx context.Context, tx *gorm.DB, id int) error
	ServiciosByIDs(ctx context.Context, tx *gorm.DB, ids []int) ([]model.Servicio, error)
}

type cotizacionRepo struct {
	CRUD[model.Cotizacion, int]
	db *gorm.DB
}

func NewCotizacionRepository(db *gorm.DB) CotizacionRepository {
	return &cotizacionRepo{CRUD: NewCRUD[model.Cotizacion, int](db, cotizacionSchema), db: db}
}

func (r *cotizacionRepo) CreateTx(ctx context.Context, tx *gorm.DB, c *model.Cotizacion) error {
	if err := tx.WithContext(ctx).Omit(clause.Associations).Create(c).Error; err != nil {
		return err
	}
	return r.insertItems(ctx, tx, c)
}

func (r *cotizacionRepo) UpdateTx(ctx context.Context, tx *gorm.DB, c *model.Cotizacion) error {
	res := tx.WithContext(ctx).Omit(clause.Associations).
		Where("idcotizaciones = ?", c.IDCotizaciones).
		Select("placa", "fecha", "estado", "idmpago").
		Updates(c)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	if err := tx.WithContext(ctx).Where("idcotizaciones = ?", c.IDCotizaciones).Delete(&model.DetalleCotizacion{}).Error; err != nil {
		return err
	}
	return r.insertItems(ctx, tx, c)
}

func (r *cotizacionRepo) DeleteTx(ctx context.Context, tx *gorm.DB, id int) error {
	if err := tx.WithContext(ctx).Where("idcotizaciones = ?", id).Delete(&model.DetalleCotizacion{}).Error; err != nil {
		return err
	}
	res := tx.WithContext(ctx).Delete(&model.Cotizacion{}, "idcotizaciones = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *cotizacionRepo) insertItems(ctx context.Context, tx *gorm.DB, c *model.Cotizacion) error {
	if len(c.Items) == 0 {
		return nil
	}
	for i := range c.Items {
		c.Items[i].IDCotizaciones = c.IDCotizaciones
	}
	return tx.WithContext(ctx).Omit(clause.Associations).Create(&c.Items).Error
}

func (r *cotizacionRepo) ServiciosByIDs(ctx context.Context, tx *gorm.DB, ids []int) ([]model.Servicio, error) {
	var out []model.Servicio
	if len(ids) == 0 {
		return out, nil
	}
	err := tx.WithContext(ctx).Where("idservicios IN ?", ids).Find(&out).Error
	return out, err
}
