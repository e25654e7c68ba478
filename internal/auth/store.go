package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/kbukum/vibeapi/internal/users"
)

// UserStore is the persistence contract the auth service depends on.
// Implemented by store/postgres; tests substitute an in-memory fake.
type UserStore interface {
	// FindByEmail returns the user with the given email, or users.ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*users.User, error)

	// FindByID returns the user with the given ID, or users.ErrNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*users.User, error)

	// Insert creates a new user record. A duplicate email yields
	// users.ErrDuplicateEmail.
	Insert(ctx context.Context, email, passwordHash, name string, role users.Role) (*users.User, error)

	// TouchLastLogin records a successful login timestamp.
	TouchLastLogin(ctx context.Context, id uuid.UUID) error
}
