package acl

import "context"

type ownerKey struct{}

// WithOwner marks ctx as acting for the customer identified by cedula.
// Services restrict customer-owned records (vehicles, appointments,
// evaluations) to that cedula.
func WithOwner(ctx context.Context, cedula string) context.Context {
	return context.WithValue(ctx, ownerKey{}, cedula)
}

// OwnerFrom returns the cedula set by WithOwner. ok is false for unscoped
// callers: administrators, workers and tests.
func OwnerFrom(ctx context.Context) (cedula string, ok bool) {
	cedula, ok = ctx.Value(ownerKey{}).(string)
	return cedula, ok && cedula != ""
}

// Scoped reports whether a role only sees its own records.
func Scoped(rolID int) bool { return rolID != administradorID }
