package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"tunik/internal/composer"
	"tunik/internal/dto"
	"tunik/internal/infra"
	"tunik/internal/model"
	"tunik/internal/repository"
	"tunik/internal/worker"

	"gorm.io/gorm"
)

type CotizacionService interface {
	List(ctx context.Context, p repository.ListParams) ([]model.Cotizacion, int64, error)
	Get(ctx context.Context, id int) (*model.Cotizacion, error)
	Create(ctx context.Context, req *dto.CotizacionRequest) (*model.Cotizacion, error)
	Update(ctx context.Context, id int, req *dto.CotizacionRequest) (*model.Cotizacion, error)
	Delete(ctx context.Context, id int) error
	// PDF renders the quote and returns the document with its file name.
	PDF(ctx context.Context, id int) ([]byte, string, error)
	// Enviar queues the quote to be archived and mailed. An empty email
	// sends it to the vehicle owner.
	Enviar(ctx context.Context, id int, email string) error
}

// CotizacionDeps are the lookups a quote must reference.
type CotizacionDeps struct {
	Vehiculos   repository.CRUD[model.Vehiculo, string]
	MetodosPago repository.CRUD[model.MetodoPago, int]
	Jobs        JobQueue
}

type cotizacionService struct {
	repo repository.CotizacionRepository
	deps CotizacionDeps
}

func NewCotizacionService(repo repository.CotizacionRepository, deps CotizacionDeps) CotizacionService {
	return &cotizacionService{repo: repo, deps: deps}
}

func (s *cotizacionService) List(ctx context.Context, p repository.ListParams) ([]model.Cotizacion, int64, error) {
	items, total, err := s.repo.List(ctx, p)
	if err != nil {
		return nil, 0, err
	}
	for i := range items {
		totalCotizacion(&items[i])
	}
	return items, total, nil
}

func (s *cotizacionService) Get(ctx context.Context, id int) (*model.Cotizacion, error) {
	c, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound("Cotización no encontrada")
	}
	if err != nil {
		return nil, err
	}
	totalCotizacion(c)
	return c, nil
}

func (s *cotizacionService) Create(ctx context.Context, req *dto.CotizacionRequest) (*model.Cotizacion, error) {
	c, explicit, err := s.compose(ctx, req)
	if err != nil {
		return nil, err
	}
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.priceItems(ctx, tx, c, explicit); err != nil {
			return err
		}
		return translateWrite(s.repo.CreateTx(ctx, tx, c), "")
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, c.IDCotizaciones)
}

func (s *cotizacionService) Update(ctx context.Context, id int, req *dto.CotizacionRequest) (*model.Cotizacion, error) {
	c, explicit, err := s.compose(ctx, req)
	if err != nil {
		return nil, err
	}
	c.IDCotizaciones = id
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.priceItems(ctx, tx, c, explicit); err != nil {
			return err
		}
		err := s.repo.UpdateTx(ctx, tx, c)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound("Cotización no encontrada")
		}
		return translateWrite(err, "")
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *cotizacionService) Delete(ctx context.Context, id int) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return translateDelete(s.repo.DeleteTx(ctx, tx, id), "Cotización no encontrada")
	})
}

func (s *cotizacionService) PDF(ctx context.Context, id int) ([]byte, string, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	b, err := infra.RenderCotizacionPDF(c)
	if err != nil {
		return nil, "", err
	}
	return b, infra.CotizacionFileName(id), nil
}

func (s *cotizacionService) Enviar(ctx context.Context, id int, email string) error {
	if s.deps.Jobs == nil || !s.deps.Jobs.Enabled() {
		return Unavailable("El envío de cotizaciones no está disponible")
	}
	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	email = strings.TrimSpace(email)
	if email == "" && (c.Vehiculo == nil || c.Vehiculo.Usuario == nil || c.Vehiculo.Usuario.Email == "") {
		return FieldError("email", "El propietario del vehículo no tiene email registrado")
	}
	err = s.deps.Jobs.EnqueueCotizacion(ctx, worker.CotizacionJobPayload{IDCotizaciones: id, Email: email})
	if errors.Is(err, worker.ErrQueueDisabled) {
		return Unavailable("El envío de cotizaciones no está disponible")
	}
	return err
}

// compose runs the request through a deduplicating draft. explicit holds the
// negotiated prices sent by the client, keyed by service id; the others are
// filled from the catalog by priceItems.
func (s *cotizacionService) compose(ctx context.Context, req *dto.CotizacionRequest) (*model.Cotizacion, map[int]bool, error) {
	placa := strings.TrimSpace(req.Placa)
	draft := composer.New[string](composer.Deduplicar)
	if placa != "" {
		draft.ChangeParent(placa)
	}
	explicit := make(map[int]bool, len(req.Items))
	for _, it := range req.Items {
		l := composer.Line{ItemID: it.IDServicios, Cantidad: 1}
		if it.PrecioChange != nil {
			if it.PrecioChange.IsNegative() {
				return nil, nil, FieldError("preciochange", "El precio no puede ser negativo")
			}
			l.Precio = *it.PrecioChange
		}
		// first occurrence wins, so only it decides whether the price was sent
		if _, seen := explicit[it.IDServicios]; !seen {
			explicit[it.IDServicios] = it.PrecioChange != nil
		}
		if err := draft.AddItem(l); err != nil {
			return nil, nil, Validation(err.Error())
		}
	}
	if err := draftError(draft.Validate(), "placa", "Seleccione un vehículo"); err != nil {
		return nil, nil, err
	}

	fecha, ok := parseFecha(req.Fecha)
	if !ok {
		return nil, nil, FieldError("fecha", "Fecha inválida")
	}
	estado := req.Estado
	if estado == "" {
		estado = model.CotizacionPendiente
	}
	if err := exists(ctx, s.deps.Vehiculos.Exists, placa, "placa", "El vehículo no existe"); err != nil {
		return nil, nil, err
	}
	if req.IDMPago != nil {
		if err := exists(ctx, s.deps.MetodosPago.Exists, *req.IDMPago, "idmpago", "El método de pago no existe"); err != nil {
			return nil, nil, err
		}
	}

	c := &model.Cotizacion{VehiculoID: placa, Fecha: fecha, Estado: estado, MetodoPagoID: req.IDMPago}
	for _, l := range draft.Items() {
		c.Items = append(c.Items, model.DetalleCotizacion{ServicioID: l.ItemID, PrecioChange: l.Precio})
	}
	return c, explicit, nil
}

// priceItems checks every service exists and applies its list price to the
// lines sent without one.
func (s *cotizacionService) priceItems(ctx context.Context, tx *gorm.DB, c *model.Cotizacion, explicit map[int]bool) error {
	ids := make([]int, len(c.Items))
	for i, it := range c.Items {
		ids[i] = it.ServicioID
	}
	servicios, err := s.repo.ServiciosByIDs(ctx, tx, ids)
	if err != nil {
		return err
	}
	for i := range c.Items {
		it := &c.Items[i]
		j := slices.IndexFunc(servicios, func(sv model.Servicio) bool { return sv.IDServicios == it.ServicioID })
		if j < 0 {
			return FieldError("items", fmt.Sprintf("El servicio %d no existe", it.ServicioID))
		}
		if !explicit[it.ServicioID] {
			it.PrecioChange = servicios[j].PrecioUnitario
		}
	}
	return nil
}

// totalCotizacion fills c.Total: every line counts once at its negotiated price.
func totalCotizacion(c *model.Cotizacion) {
	lines := make([]composer.Line, 0, len(c.Items))
	for _, it := range c.Items {
		lines = append(lines, composer.Line{ItemID: it.ServicioID, Cantidad: 1, Precio: it.PrecioChange})
	}
	c.Total = composer.Total(lines)
}
