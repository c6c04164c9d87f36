package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"tunik/internal/composer"
	"tunik/internal/dto"
	"tunik/internal/infra"
	"tunik/internal/model"
	"tunik/internal/repository"

	"gorm.io/gorm"
)

type PedidoService interface {
	List(ctx context.Context, p repository.ListParams) ([]model.Pedido, int64, error)
	Get(ctx context.Context, id int) (*model.Pedido, error)
	Create(ctx context.Context, req *dto.PedidoRequest) (*model.Pedido, error)
	Update(ctx context.Context, id int, req *dto.PedidoRequest) (*model.Pedido, error)
	Delete(ctx context.Context, id int) error
	// Export renders every order as an XLSX workbook.
	Export(ctx context.Context) ([]byte, error)
}

type pedidoService struct {
	repo        repository.PedidoRepository
	proveedores repository.CRUD[model.Proveedor, int]
}

func NewPedidoService(repo repository.PedidoRepository, proveedores repository.CRUD[model.Proveedor, int]) PedidoService {
	return &pedidoService{repo: repo, proveedores: proveedores}
}

func (s *pedidoService) List(ctx context.Context, p repository.ListParams) ([]model.Pedido, int64, error) {
	items, total, err := s.repo.List(ctx, p)
	if err != nil {
		return nil, 0, err
	}
	for i := range items {
		totalPedido(&items[i])
	}
	return items, total, nil
}

func (s *pedidoService) Get(ctx context.Context, id int) (*model.Pedido, error) {
	p, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound("Pedido no encontrado")
	}
	if err != nil {
		return nil, err
	}
	totalPedido(p)
	return p, nil
}

// ── Create ───────────────────────────────────────────────────────────────────
//   1. Compose header + lines (duplicates add up), validate date and provider
//   2. BEGIN TX: check every product belongs to the provider, insert
//      header and lines, add stock when the order is already Completado
//   3. COMMIT and reload with relations

func (s *pedidoService) Create(ctx context.Context, req *dto.PedidoRequest) (*model.Pedido, error) {
	p, lines, err := s.compose(ctx, req)
	if err != nil {
		return nil, err
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.checkProductos(ctx, tx, p.ProveedorID, lines); err != nil {
			return err
		}
		if err := s.repo.CreateTx(ctx, tx, p); err != nil {
			return translateWrite(err, "")
		}
		if p.Estado == model.PedidoCompletado {
			return s.moveStock(ctx, tx, p.Items, 1)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, p.IDPedidos)
}

// Update replaces header and lines. Stock is reverted for the stored state
// and applied again for the new one, so any estado transition is covered.
func (s *pedidoService) Update(ctx context.Context, id int, req *dto.PedidoRequest) (*model.Pedido, error) {
	p, lines, err := s.compose(ctx, req)
	if err != nil {
		return nil, err
	}
	p.IDPedidos = id

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		old, err := s.repo.FindByIDTx(ctx, tx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound("Pedido no encontrado")
		}
		if err != nil {
			return err
		}
		if err := s.checkProductos(ctx, tx, p.ProveedorID, lines); err != nil {
			return err
		}
		if old.Estado == model.PedidoCompletado {
			if err := s.moveStock(ctx, tx, old.Items, -1); err != nil {
				return err
			}
		}
		if err := s.repo.UpdateTx(ctx, tx, p); err != nil {
			return translateWrite(err, "")
		}
		if p.Estado == model.PedidoCompletado {
			return s.moveStock(ctx, tx, p.Items, 1)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *pedidoService) Delete(ctx context.Context, id int) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		old, err := s.repo.FindByIDTx(ctx, tx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound("Pedido no encontrado")
		}
		if err != nil {
			return err
		}
		if old.Estado == model.PedidoCompletado {
			if err := s.moveStock(ctx, tx, old.Items, -1); err != nil {
				return err
			}
		}
		return translateDelete(s.repo.DeleteTx(ctx, tx, id), "Pedido no encontrado")
	})
}

func (s *pedidoService) Export(ctx context.Context) ([]byte, error) {
	pedidos, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range pedidos {
		totalPedido(&pedidos[i])
	}
	return infra.ExportPedidosXLSX(pedidos)
}

// compose runs the request through a composer draft and builds the header.
// Only checks that need no transaction happen here.
func (s *pedidoService) compose(ctx context.Context, req *dto.PedidoRequest) (*model.Pedido, []composer.Line, error) {
	draft := composer.New[int](composer.Acumular)
	if req.IDProveedor > 0 {
		draft.ChangeParent(req.IDProveedor)
	}
	for _, it := range req.Items {
		if err := draft.AddItem(composer.Line{ItemID: it.IDProductos, Cantidad: it.Cantidad}); err != nil {
			return nil, nil, FieldError("items", "La cantidad de cada producto debe ser al menos 1")
		}
	}
	if err := draftError(draft.Validate(), "idproveedor", "Seleccione un proveedor"); err != nil {
		return nil, nil, err
	}

	fecha, ok := parseFecha(req.FechaPedido)
	if !ok {
		return nil, nil, FieldError("fechaPedido", "Fecha inválida")
	}
	estado := req.Estado
	if estado == "" {
		estado = model.PedidoPendiente
	}
	if err := exists(ctx, s.proveedores.Exists, req.IDProveedor, "idproveedor", "El proveedor no existe"); err != nil {
		return nil, nil, err
	}

	lines := draft.Items()
	p := &model.Pedido{ProveedorID: req.IDProveedor, FechaPedido: fecha, Estado: estado}
	for _, l := range lines {
		p.Items = append(p.Items, model.DetallePedido{ProductoID: l.ItemID, Cantidad: l.Cantidad})
	}
	return p, lines, nil
}

// checkProductos verifies every line references an existing product of the
// order's provider.
func (s *pedidoService) checkProductos(ctx context.Context, tx *gorm.DB, proveedorID int, lines []composer.Line) error {
	ids := make([]int, len(lines))
	for i, l := range lines {
		ids[i] = l.ItemID
	}
	productos, err := s.repo.ProductosByIDs(ctx, tx, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		i := slices.IndexFunc(productos, func(p model.Producto) bool { return p.IDProductos == id })
		if i < 0 {
			return FieldError("items", fmt.Sprintf("El producto %d no existe", id))
		}
		if productos[i].ProveedorID != proveedorID {
			return FieldError("items", fmt.Sprintf("El producto %d no pertenece al proveedor seleccionado", id))
		}
	}
	return nil
}

// moveStock adds sign × cantidad of every line to the product stock.
func (s *pedidoService) moveStock(ctx context.Context, tx *gorm.DB, items []model.DetallePedido, sign int) error {
	for _, it := range items {
		if err := s.repo.AdjustStockTx(ctx, tx, it.ProductoID, sign*it.Cantidad); err != nil {
			return err
		}
	}
	return nil
}

// totalPedido fills p.Total from the loaded products.
func totalPedido(p *model.Pedido) {
	lines := make([]composer.Line, 0, len(p.Items))
	for _, it := range p.Items {
		l := composer.Line{ItemID: it.ProductoID, Cantidad: it.Cantidad}
		if it.Producto != nil {
			l.Precio = it.Producto.Precio
		}
		lines = append(lines, l)
	}
	p.Total = composer.Total(lines)
}

// draftError turns a composer validation error into a field error.
func draftError(err error, parentField, parentMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, composer.ErrSinPadre):
		return FieldError(parentField, parentMsg)
	case errors.Is(err, composer.ErrSinItems):
		return FieldError("items", "Agregue al menos un ítem")
	}
	return Validation(err.Error())
}
