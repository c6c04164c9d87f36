package service

import (
	"context"

	"gorm.io/gorm"
)

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// exists wraps a repository Exists call, turning a miss into a field error.
func exists[K comparable](ctx context.Context, check func(context.Context, K) (bool, error), id K, field, msg string) error {
	ok, err := check(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return FieldError(field, msg)
	}
	return nil
}
