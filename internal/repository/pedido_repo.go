package repository

import (
	"context"

	"tunik/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var pedidoSchema = Schema{
	PK:       "idpedidos",
	Search:   []string{"estado"},
	Filters:  []string{"idproveedor", "estado"},
	Preloads: []string{"Proveedor", "Items.Producto"},
	Order:    "fecha_pedido DESC, idpedidos DESC",
}

// PedidoRepository adds the transactional header+items writes on top of the
// generic reads. Every *Tx method runs on the caller's transaction.
type PedidoRepository interface {
	CRUD[model.Pedido, int]
	FindByIDTx(ctx context.Context, tx *gorm.DB, id int) (*model.Pedido, error)
	CreateTx(ctx context.Context, tx *gorm.DB, p *model.Pedido) error
	UpdateTx(ctx context.Context, tx *gorm.DB, p *model.Pedido) error
	DeleteTx(ctx context.Context, tx *gorm.DB, id int) error
	ProductosByIDs(ctx context.Context, tx *gorm.DB, ids []int) ([]model.Producto, error)
	AdjustStockTx(ctx context.Context, tx *gorm.DB, productoID, delta int) error
	ListAll(ctx context.Context) ([]model.Pedido, error)
}

type pedidoRepo struct {
	CRUD[model.Pedido, int]
	db *gorm.DB
}

func NewPedidoRepository(db *gorm.DB) PedidoRepository {
	return &pedidoRepo{CRUD: NewCRUD[model.Pedido, int](db, pedidoSchema), db: db}
}

func (r *pedidoRepo) FindByIDTx(ctx context.Context, tx *gorm.DB, id int) (*model.Pedido, error) {
	var p model.Pedido
	err := preload(tx.WithContext(ctx), pedidoSchema.Preloads).
		Where("idpedidos = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pedidoRepo) CreateTx(ctx context.Context, tx *gorm.DB, p *model.Pedido) error {
	if err := tx.WithContext(ctx).Omit(clause.Associations).Create(p).Error; err != nil {
		return err
	}
	return r.insertItems(ctx, tx, p)
}

// UpdateTx saves the header and replaces the whole item list.
func (r *pedidoRepo) UpdateTx(ctx context.Context, tx *gorm.DB, p *model.Pedido) error {
	if err := tx.WithContext(ctx).Omit(clause.Associations).Save(p).Error; err != nil {
		return err
	}
	if err := tx.WithContext(ctx).Where("idpedidos = ?", p.IDPedidos).Delete(&model.DetallePedido{}).Error; err != nil {
		return err
	}
	return r.insertItems(ctx, tx, p)
}

func (r *pedidoRepo) DeleteTx(ctx context.Context, tx *gorm.DB, id int) error {
	if err := tx.WithContext(ctx).Where("idpedidos = ?", id).Delete(&model.DetallePedido{}).Error; err != nil {
		return err
	}
	res := tx.WithContext(ctx).Delete(&model.Pedido{}, "idpedidos = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *pedidoRepo) insertItems(ctx context.Context, tx *gorm.DB, p *model.Pedido) error {
	if len(p.Items) == 0 {
		return nil
	}
	for i := range p.Items {
		p.Items[i].IDPedidos = p.IDPedidos
	}
	return tx.WithContext(ctx).Omit(clause.Associations).Create(&p.Items).Error
}

func (r *pedidoRepo) ProductosByIDs(ctx context.Context, tx *gorm.DB, ids []int) ([]model.Producto, error) {
	var out []model.Producto
	if len(ids) == 0 {
		return out, nil
	}
	err := tx.WithContext(ctx).Where("idproductos IN ?", ids).Find(&out).Error
	return out, err
}

// AdjustStockTx adds delta (possibly negative) to a product's stock.
func (r *pedidoRepo) AdjustStockTx(ctx context.Context, tx *gorm.DB, productoID, delta int) error {
	return tx.WithContext(ctx).Model(&model.Producto{}).
		Where("idproductos = ?", productoID).
		UpdateColumn("cantidadexistente", gorm.Expr("cantidadexistente + ?", delta)).Error
}

func (r *pedidoRepo) ListAll(ctx context.Context) ([]model.Pedido, error) {
	items, _, err := r.List(ctx, ListParams{})
	return items, err
}
