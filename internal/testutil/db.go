// Package testutil opens throwaway databases for package tests.
package testutil

import (
	"testing"

	"tunik/internal/infra"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB returns a migrated, seeded in-memory SQLite database private to t.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := infra.NewDatabase("sqlite", dsn)
	require.NoError(t, err)
	require.NoError(t, infra.RunMigrations(db))
	require.NoError(t, infra.SeedSystemData(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
