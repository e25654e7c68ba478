package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("users: not found")

	// ErrDuplicateEmail is returned when an insert collides on email.
	ErrDuplicateEmail = errors.New("users: email already registered")
)

// Store is the persistence contract for profile operations.
type Store interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)

	// UpdateName changes the display name and returns the updated record.
	UpdateName(ctx context.Context, id uuid.UUID, name string) (*User, error)

	// UpdatePassword replaces the stored credential hash.
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	// Delete removes the user. Deleting an unknown ID yields ErrNotFound.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns a page of users plus the total count.
	List(ctx context.Context, page, perPage int) ([]User, int64, error)
}
