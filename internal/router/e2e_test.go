//go:build integration

package router_test

// End-to-end tests against real Postgres and Redis started with testcontainers.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"tunik/internal/acl"
	"tunik/internal/config"
	"tunik/internal/infra"
	"tunik/internal/model"
	"tunik/internal/repository"
	"tunik/internal/router"
	"tunik/internal/worker"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

type e2eEnv struct {
	t      *testing.T
	srv    *httptest.Server
	db     *gorm.DB
	rdb    *redis.Client
	pdfDir string
	token  string
}

func (e *e2eEnv) do(method, path string, body any) (int, map[string]any) {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, e.srv.URL+path, &buf)
	require.NoError(e.t, err)
	req.Header.Set("Content-Type", "application/json")
	if e.token != "" {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	resp, err := e.srv.Client().Do(req)
	require.NoError(e.t, err)
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func (e *e2eEnv) create(path string, body any) map[string]any {
	e.t.Helper()
	code, out := e.do(http.MethodPost, path, body)
	require.Equal(e.t, http.StatusCreated, code, out)
	return out["data"].(map[string]any)
}

func num(m map[string]any, key string) int { return int(m[key].(float64)) }

// ── Test Suite Setup ─────────────────────────────────────────────────────────

func setupE2E(t *testing.T) *e2eEnv {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	pgC, err := tcPostgres.Run(ctx, "postgres:16-alpine",
		tcPostgres.WithDatabase("tunik_test"),
		tcPostgres.WithUsername("tunik"),
		tcPostgres.WithPassword("tunik"),
		testcontainers.WithWaitStrategy(tcPostgres.BasicWaitStrategies()...),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(context.Background()) })
	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(context.Background()) })
	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Env:                "test",
		DBDriver:           "postgres",
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		JWTSecret:          "e2e-secret",
		JWTExpirationHours: 1,
		WorkerPoolSize:     1,
		PDFStoragePath:     t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DBDriver, cfg.DSN())
	require.NoError(t, err)
	require.NoError(t, infra.RunMigrations(db))
	require.NoError(t, infra.SeedSystemData(db))
	// a second run must be a no-op
	require.NoError(t, infra.SeedSystemData(db))

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, infra.UpsertUsuario(db, &model.Usuario{
		Cedula: "0000000000", Nombre: "Admin E2E", Email: "admin@e2e.test",
		Contrasena: string(hash), RolID: model.RolAdministradorID,
	}))

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	acls, err := acl.NewFileStore(filepath.Join(t.TempDir(), "acl.json"))
	require.NoError(t, err)

	store, err := infra.NewDocumentStore(ctx, cfg)
	require.NoError(t, err)
	mailCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	mailer := infra.NewMailer(cfg, mailCB)

	dispatcher := worker.NewDispatcher(rdb)
	pool := worker.NewPool(rdb)
	pool.Handle(worker.JobEmail, worker.NewEmailWorker(mailer).Process)
	pool.Handle(worker.JobCotizacion, worker.NewCotizacionWorker(repository.NewCotizacionRepository(db), store, mailer).Process)
	pool.Start(ctx, cfg.WorkerPoolSize)

	r := router.New(router.Deps{Config: cfg, DB: db, Redis: rdb, ACL: acls, Jobs: dispatcher, MailCB: mailCB})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	env := &e2eEnv{t: t, srv: srv, db: db, rdb: rdb, pdfDir: cfg.PDFStoragePath}
	code, out := env.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "admin@e2e.test", "contrasena": "admin123"})
	require.Equal(t, http.StatusOK, code, out)
	env.token = out["token"].(string)
	return env
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_CotizacionEnviarArchivesPDF(t *testing.T) {
	env := setupE2E(t)

	env.create("/api/usuarios", map[string]any{
		"cedula": "0102030405", "nombre": "Ana", "email": "ana@example.com",
		"contrasena": "secreto", "idroles": model.RolClienteID,
	})
	marca := env.create("/api/marcas", map[string]string{"descripcion": "Toyota"})
	tipo := env.create("/api/tipovehiculos", map[string]string{"nombre": "Sedán"})
	env.create("/api/vehiculos", map[string]any{
		"placa": "PBA-1234", "modelo": "Corolla", "color": "Gris",
		"idtipovehiculos": num(tipo, "idtipovehiculos"), "idmarca": num(marca, "idmarca"), "cedula": "0102030405",
	})
	cat := env.create("/api/categoriaservicios", map[string]string{"nombrecategorias": "Lavado"})
	serv := env.create("/api/servicios", map[string]any{
		"nombreservicios": "Lavado completo", "preciounitario": "15.00",
		"idcategoriaservicios": num(cat, "idcategoriaservicios"),
	})

	cot := env.create("/api/cotizaciones", map[string]any{
		"placa": "PBA-1234", "fecha": "2024-06-01",
		"items": []map[string]any{{"idservicios": num(serv, "idservicios")}},
	})
	id := num(cot, "idcotizaciones")

	code, out := env.do(http.MethodPost, "/api/cotizaciones/"+strconv.Itoa(id)+"/enviar", nil)
	require.Equal(t, http.StatusAccepted, code, out)

	pdf := filepath.Join(env.pdfDir, infra.CotizacionFileName(id))
	require.Eventually(t, func() bool {
		_, err := os.Stat(pdf)
		return err == nil
	}, 15*time.Second, 200*time.Millisecond, "worker never archived %s", pdf)
}

func TestE2E_CatalogCachedInRedis(t *testing.T) {
	env := setupE2E(t)
	ctx := context.Background()

	cat := env.create("/api/categoriaservicios", map[string]string{"nombrecategorias": "Pulido"})
	env.create("/api/servicios", map[string]any{
		"nombreservicios": "Pulido de faros", "preciounitario": "25",
		"idcategoriaservicios": num(cat, "idcategoriaservicios"),
	})

	code, _ := env.do(http.MethodGet, "/api/public/servicios", nil)
	require.Equal(t, http.StatusOK, code)
	n, err := env.rdb.Exists(ctx, "catalogo:servicios").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// any write to servicios drops the cached copy
	env.create("/api/servicios", map[string]any{
		"nombreservicios": "Encerado", "preciounitario": "30",
		"idcategoriaservicios": num(cat, "idcategoriaservicios"),
	})
	n, err = env.rdb.Exists(ctx, "catalogo:servicios").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	code, out := env.do(http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "connected", out["redis"])
}

func TestE2E_PedidoCompletadoMovesStock(t *testing.T) {
	env := setupE2E(t)

	prov := env.create("/api/proveedores", map[string]string{"nombre": "Distribuidora Norte"})
	prod := env.create("/api/productos", map[string]any{
		"nombreproductos": "Cera líquida", "precio": "12.50", "cantidadexistente": 4,
		"idproveedor": num(prov, "idproveedor"),
	})
	pid := num(prod, "idproductos")

	ped := env.create("/api/pedidos", map[string]any{
		"idproveedor": num(prov, "idproveedor"), "fechaPedido": "2024-06-01", "estado": "Completado",
		"items": []map[string]int{{"idproductos": pid, "cantidad": 6}},
	})

	stock := func() int {
		var p model.Producto
		require.NoError(t, env.db.First(&p, pid).Error)
		return p.CantidadExistente
	}
	assert.Equal(t, 10, stock())

	code, out := env.do(http.MethodDelete, "/api/pedidos/"+strconv.Itoa(num(ped, "idpedidos")), nil)
	require.Equal(t, http.StatusOK, code, out)
	assert.Equal(t, 4, stock())

	// the provider is referenced by the product
	code, _ = env.do(http.MethodDelete, "/api/proveedores/"+strconv.Itoa(num(prov, "idproveedor")), nil)
	assert.Equal(t, http.StatusConflict, code)
}
