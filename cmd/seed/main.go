// Command seed migrates the schema, inserts the system roles and payment
// methods, and creates or refreshes the administrator account.
//
//	go run ./cmd/seed -email admin@tunik.com -password secreto
package main

import (
	"flag"
	"os"
	"strings"

	"tunik/internal/config"
	"tunik/internal/infra"
	"tunik/internal/model"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func main() {
	cedula := flag.String("cedula", envOr("ADMIN_CEDULA", "0000000000"), "administrator cedula")
	nombre := flag.String("nombre", envOr("ADMIN_NOMBRE", "Administrador"), "administrator name")
	email := flag.String("email", envOr("ADMIN_EMAIL", "admin@tunik.com"), "administrator email")
	password := flag.String("password", envOr("ADMIN_PASSWORD", "admin123"), "administrator password")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	infra.SetupLogger(cfg.Env, cfg.LogLevel)

	db, err := infra.NewDatabase(cfg.DBDriver, cfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := infra.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}
	if err := infra.SeedSystemData(db); err != nil {
		log.Fatal().Err(err).Msg("seeding system data failed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), 12)
	if err != nil {
		log.Fatal().Err(err).Msg("bcrypt error")
	}
	admin := &model.Usuario{
		Cedula:     *cedula,
		Nombre:     *nombre,
		Email:      strings.ToLower(*email),
		Contrasena: string(hash),
		RolID:      model.RolAdministradorID,
	}
	if err := infra.UpsertUsuario(db, admin); err != nil {
		log.Fatal().Err(err).Msg("admin upsert failed")
	}
	log.Info().Str("email", admin.Email).Str("cedula", admin.Cedula).Msg("administrator created or updated")
}
