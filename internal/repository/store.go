package repository

import (
	"context"
	"errors"

	"storefront/api/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken signals the per-email uniqueness constraint. Insert
	// reports it atomically; callers must not pre-check and then insert.
	ErrEmailTaken = errors.New("email already registered")
)

// CredentialStore is the user-record store behind the auth core. Email
// lookups are case-insensitive; the implementation owns the uniqueness
// guarantee, so concurrent inserts of the same email yield exactly one
// record and one ErrEmailTaken.
type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id string) (models.User, error)
	Insert(ctx context.Context, user models.User) error
	UpdatePassword(ctx context.Context, id string, passwordHash []byte) error
	UpdateRole(ctx context.Context, id string, role models.Role) error
	UpdateActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]models.User, error)
}

// AuditStore records security-relevant events. Recording is best-effort;
// auth flows proceed even when the trail write fails.
type AuditStore interface {
	Record(ctx context.Context, event models.AuditEvent) error
	DeleteOlderThan(ctx context.Context, cutoffDays int) (int64, error)
}
