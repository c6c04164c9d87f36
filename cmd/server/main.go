package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tunik/internal/acl"
	"tunik/internal/config"
	"tunik/internal/infra"
	"tunik/internal/middleware"
	"tunik/internal/repository"
	"tunik/internal/router"
	"tunik/internal/worker"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	// Structured logger: dev pretty, prod JSON
	infra.SetupLogger(cfg.Env, cfg.LogLevel)

	db, err := infra.NewDatabase(cfg.DBDriver, cfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("failed to connect to database")
	}
	if err := infra.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}
	if err := infra.SeedSystemData(db); err != nil {
		log.Fatal().Err(err).Msg("seeding system data failed")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	if rdb == nil {
		log.Warn().Msg("REDIS_URL not set: catalog cache and job queue disabled")
	}

	acls, err := acl.NewFileStore(cfg.ACLFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.ACLFile).Msg("failed to load ACL store")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	mailer := infra.NewMailer(cfg, mailCB)
	store, err := infra.NewDocumentStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure document store")
	}

	// Worker handlers are wired here (composition root) so the pool has
	// access to every infrastructure dependency.
	dispatcher := worker.NewDispatcher(rdb)
	if dispatcher.Enabled() {
		pool := worker.NewPool(rdb)
		pool.Handle(worker.JobEmail, worker.NewEmailWorker(mailer).Process)
		pool.Handle(worker.JobCotizacion, worker.NewCotizacionWorker(repository.NewCotizacionRepository(db), store, mailer).Process)
		pool.Start(ctx, cfg.WorkerPoolSize)

		worker.StartReminderCron(ctx, worker.ReminderCronConfig{
			Citas:    repository.NewAgendaCitaRepository(db),
			Queue:    dispatcher,
			Interval: time.Duration(cfg.ReminderIntervalMinutes) * time.Minute,
		})
	}

	apiLimit := middleware.NewAPIRateLimiter()
	loginLimit := middleware.NewLoginRateLimiter()
	go apiLimit.Run(ctx)
	go loginLimit.Run(ctx)

	r := router.New(router.Deps{
		Config:     cfg,
		DB:         db,
		Redis:      rdb,
		ACL:        acls,
		Jobs:       dispatcher,
		MailCB:     mailCB,
		APILimit:   apiLimit,
		LoginLimit: loginLimit,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("tunik backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	log.Info().Msg("server exited")
}
