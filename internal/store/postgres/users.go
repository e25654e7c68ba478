package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kbukum/vibeapi/internal/users"
)

// uniqueViolation is the SQLSTATE for unique constraint violations.
const uniqueViolation = "23505"

const userColumns = "id, email, password_hash, name, role, created_at, updated_at, last_login"

// UserStore implements auth.UserStore and users.Store on PostgreSQL.
type UserStore struct {
	pool *pgxpool.Pool
}

// NewUserStore creates a UserStore backed by the given pool.
func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

func scanUser(row pgx.Row) (*users.User, error) {
	var u users.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role,
		&u.CreatedAt, &u.UpdatedAt, &u.LastLogin,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, users.ErrNotFound
		}
		return nil, fmt.Errorf("postgres: scan user: %w", err)
	}
	return &u, nil
}

// FindByID returns the user with the given ID, or users.ErrNotFound.
func (s *UserStore) FindByID(ctx context.Context, id uuid.UUID) (*users.User, error) {
	row := s.pool.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id)
	return scanUser(row)
}

// FindByEmail returns the user with the given email, or users.ErrNotFound.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*users.User, error) {
	row := s.pool.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1", email)
	return scanUser(row)
}

// Insert creates a new user. A unique violation on email maps to
// users.ErrDuplicateEmail.
func (s *UserStore) Insert(ctx context.Context, email, passwordHash, name string, role users.Role) (*users.User, error) {
	id := uuid.New()
	row := s.pool.QueryRow(ctx,
		`INSERT INTO users (id, email, password_hash, name, role)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+userColumns,
		id, email, passwordHash, name, role)

	user, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, users.ErrDuplicateEmail
		}
		return nil, err
	}
	return user, nil
}

// TouchLastLogin records a successful login timestamp.
func (s *UserStore) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE users SET last_login = now() WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("postgres: touch last login: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return users.ErrNotFound
	}
	return nil
}

// UpdateName changes the display name and returns the updated record.
func (s *UserStore) UpdateName(ctx context.Context, id uuid.UUID, name string) (*users.User, error) {
	row := s.pool.QueryRow(ctx,
		`UPDATE users SET name = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING `+userColumns,
		id, name)
	return scanUser(row)
}

// UpdatePassword replaces the stored credential hash.
func (s *UserStore) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1",
		id, passwordHash)
	if err != nil {
		return fmt.Errorf("postgres: update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return users.ErrNotFound
	}
	return nil
}

// Delete removes the user. Deleting an unknown ID yields users.ErrNotFound.
func (s *UserStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("postgres: delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return users.ErrNotFound
	}
	return nil
}

// List returns a page of users ordered by creation time plus the total count.
func (s *UserStore) List(ctx context.Context, page, perPage int) ([]users.User, int64, error) {
	var total int64
	if err := s.pool.QueryRow(ctx, "SELECT count(*) FROM users").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres: count users: %w", err)
	}

	offset := (page - 1) * perPage
	rows, err := s.pool.Query(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2",
		perPage, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: list users: %w", err)
	}
	defer rows.Close()

	var records []users.User
	for rows.Next() {
		var u users.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role,
			&u.CreatedAt, &u.UpdatedAt, &u.LastLogin,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres: scan user row: %w", err)
		}
		records = append(records, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres: iterate users: %w", err)
	}

	return records, total, nil
}

// DeleteStaleBefore removes users whose last login (or creation, for users
// who never logged in) predates the cutoff. Used by the cleanup job.
func (s *UserStore) DeleteStaleBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM users
		 WHERE last_login < $1
		    OR (last_login IS NULL AND created_at < $1)`,
		cutoff)
	if err != nil {
		return 0, fmt.Errorf("postgres: delete stale users: %w", err)
	}
	return tag.RowsAffected(), nil
}

// CountActiveSince returns how many users logged in after the cutoff. Used
// by the background metrics job.
func (s *UserStore) CountActiveSince(ctx context.Context, cutoff time.Time) (int64, error) {
	var n int64
	err := s.pool.QueryRow(ctx,
		"SELECT count(*) FROM users WHERE last_login >= $1", cutoff).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("postgres: count active users: %w", err)
	}
	return n, nil
}
