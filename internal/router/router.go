package router

import (
	"tunik/internal/acl"
	"tunik/internal/config"
	"tunik/internal/dto"
	"tunik/internal/handler"
	"tunik/internal/infra"
	"tunik/internal/middleware"
	"tunik/internal/model"
	"tunik/internal/repository"
	"tunik/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Deps are the long-lived collaborators built by cmd/server.
// Redis, Jobs and MailCB may be nil.
type Deps struct {
	Config     *config.Config
	DB         *gorm.DB
	Redis      *redis.Client
	ACL        acl.Store
	Jobs       service.JobQueue
	MailCB     *infra.CircuitBreaker
	APILimit   *middleware.RateLimiter
	LoginLimit *middleware.RateLimiter
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(d Deps) *gin.Engine {
	cfg := d.Config
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if d.APILimit == nil {
		d.APILimit = middleware.NewAPIRateLimiter()
	}
	if d.LoginLimit == nil {
		d.LoginLimit = middleware.NewLoginRateLimiter()
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(middleware.ErrorHandler())
	r.Use(d.APILimit.Handler())

	db := d.DB

	// ── Repositories ─────────────────────────────────────────────────────────
	rolRepo := repository.NewRolRepository(db)
	usuarioRepo := repository.NewUsuarioRepository(db)
	marcaRepo := repository.NewMarcaRepository(db)
	tipoRepo := repository.NewTipoVehiculoRepository(db)
	vehiculoRepo := repository.NewVehiculoRepository(db)
	categoriaRepo := repository.NewCategoriaServicioRepository(db)
	servicioRepo := repository.NewServicioRepository(db)
	metodoPagoRepo := repository.NewMetodoPagoRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)
	cotizacionRepo := repository.NewCotizacionRepository(db)
	agendaRepo := repository.NewAgendaCitaRepository(db)
	evaluacionRepo := repository.NewEvaluacionRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	catalogSvc := service.NewCatalogService(servicioRepo, d.Redis)
	authSvc := service.NewAuthService(usuarioRepo, d.ACL, cfg)
	aclSvc := service.NewACLService(rolRepo, d.ACL)
	pedidoSvc := service.NewPedidoService(pedidoRepo, proveedorRepo)
	cotizacionSvc := service.NewCotizacionService(cotizacionRepo, service.CotizacionDeps{
		Vehiculos:   vehiculoRepo,
		MetodosPago: metodoPagoRepo,
		Jobs:        d.Jobs,
	})

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	aclH := handler.NewACLHandler(aclSvc)
	pedidosH := handler.NewPedidosHandler(pedidoSvc)
	cotizacionesH := handler.NewCotizacionesHandler(cotizacionSvc)
	catalogoH := handler.NewCatalogoHandler(catalogSvc)

	// ── Routes ───────────────────────────────────────────────────────────────
	api := r.Group("/api")

	// Public
	api.GET("/health", handler.Health(db, d.Redis, d.MailCB))
	api.GET("/public/servicios", catalogoH.Servicios)
	auth := api.Group("/auth")
	{
		auth.POST("/login", d.LoginLimit.Handler(), authH.Login)
		auth.POST("/register", d.LoginLimit.Handler(), authH.Register)
	}

	// Protected routes
	p := api.Group("", middleware.JWTAuth(cfg.JWTSecret))
	perm := func(module string) gin.HandlerFunc { return middleware.RequirePermiso(d.ACL, module) }

	p.GET("/auth/me", authH.Me)

	roles := p.Group("/roles")
	{
		roles.GET("/acl-options", perm("roles"), aclH.Options)
		roles.GET("/:id/acl", perm("roles"), aclH.Get)
		roles.PUT("/:id/acl", perm("roles"), aclH.Set)
	}
	handler.NewCrudHandler(service.NewRolService(rolRepo, d.ACL), "Rol eliminado").
		Register(roles, perm("roles"))
	handler.NewCrudHandler(service.NewUsuarioService(usuarioRepo, rolRepo), "Usuario eliminado").
		Register(p.Group("/usuarios"), perm("usuarios"))

	handler.NewCrudHandler(service.NewMarcaService(marcaRepo), "Marca eliminada").
		Register(p.Group("/marcas"), perm("marcas"))
	handler.NewCrudHandler(service.NewTipoVehiculoService(tipoRepo), "Tipo de vehículo eliminado").
		Register(p.Group("/tipovehiculos"), perm("tipovehiculos"))
	handler.NewCrudHandler(service.NewVehiculoService(vehiculoRepo, service.VehiculoDeps{
		Tipos: tipoRepo, Marcas: marcaRepo, Usuarios: usuarioRepo,
	}), "Vehículo eliminado").
		Register(p.Group("/vehiculos"), perm("vehiculos"))

	handler.NewCrudHandler(service.NewCategoriaServicioService(categoriaRepo, catalogSvc), "Categoría eliminada").
		Register(p.Group("/categoriaservicios"), perm("categoriaservicios"))
	handler.NewCrudHandler(service.NewServicioService(servicioRepo, categoriaRepo, catalogSvc), "Servicio eliminado").
		Register(p.Group("/servicios"), perm("servicios"))
	handler.NewCrudHandler(service.NewMetodoPagoService(metodoPagoRepo), "Método de pago eliminado").
		Register(p.Group("/metodospago"), perm("metodospago"))

	handler.NewCrudHandler(service.NewProveedorService(proveedorRepo), "Proveedor eliminado").
		Register(p.Group("/proveedores"), perm("proveedores"))
	handler.NewCrudHandler(service.NewProductoService(productoRepo, proveedorRepo), "Producto eliminado").
		Register(p.Group("/productos"), perm("productos"))

	pedidos := p.Group("/pedidos")
	pedidos.GET("/export", perm("pedidos"), pedidosH.Export)
	handler.NewCrudHandler[model.Pedido, int, dto.PedidoRequest](pedidoSvc, "Pedido eliminado").
		Register(pedidos, perm("pedidos"))

	cotizaciones := p.Group("/cotizaciones")
	cotizaciones.GET("/:id/pdf", perm("cotizaciones"), cotizacionesH.PDF)
	cotizaciones.POST("/:id/enviar", middleware.RequireAccion(d.ACL, "cotizaciones", acl.Editar), cotizacionesH.Enviar)
	handler.NewCrudHandler[model.Cotizacion, int, dto.CotizacionRequest](cotizacionSvc, "Cotización eliminada").
		Register(cotizaciones, perm("cotizaciones"))

	handler.NewCrudHandler(service.NewAgendaCitaService(agendaRepo, vehiculoRepo, d.Jobs), "Cita eliminada").
		Register(p.Group("/agendacitas"), perm("agendacitas"))
	handler.NewCrudHandler(service.NewEvaluacionService(evaluacionRepo, usuarioRepo, servicioRepo), "Evaluación eliminada").
		Register(p.Group("/evaluaciones"), perm("evaluaciones"))

	// Swagger UI, outside production only
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
