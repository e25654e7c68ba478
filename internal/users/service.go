package users

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/kbukum/vibeapi/internal/auth/password"
	apperrors "github.com/kbukum/vibeapi/internal/errors"
	"github.com/kbukum/vibeapi/internal/logger"
)

// Service implements profile operations over the user store.
type Service struct {
	store  Store
	hasher password.Hasher
	log    *logger.Logger
}

// NewService wires the users service.
func NewService(store Store, hasher password.Hasher, log *logger.Logger) *Service {
	return &Service{store: store, hasher: hasher, log: log.WithComponent("users")}
}

// GetByID returns the public view of a user.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Response, error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperrors.NotFound("user")
		}
		return nil, apperrors.DatabaseError(err)
	}
	resp := user.ToResponse()
	return &resp, nil
}

// Update applies the mutable profile fields and returns the updated view.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Response, error) {
	if req.Name == nil {
		return s.GetByID(ctx, id)
	}

	user, err := s.store.UpdateName(ctx, id, *req.Name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperrors.NotFound("user")
		}
		return nil, apperrors.DatabaseError(err)
	}
	resp := user.ToResponse()
	return &resp, nil
}

// ChangePassword verifies the current password before storing a new hash.
// A wrong current password maps to the same generic authentication failure
// as login to avoid acting as a password oracle.
func (s *Service) ChangePassword(ctx context.Context, id uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperrors.NotFound("user")
		}
		return apperrors.DatabaseError(err)
	}

	ok, err := s.hasher.Verify(req.CurrentPassword, user.PasswordHash)
	if err != nil {
		s.log.Error("Stored credential hash is malformed", map[string]interface{}{
			"user_id": user.ID.String(),
			"error":   err.Error(),
		})
		return apperrors.AuthenticationFailed()
	}
	if !ok {
		return apperrors.AuthenticationFailed()
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return apperrors.Internal(err)
	}

	if err := s.store.UpdatePassword(ctx, id, hash); err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

// Delete removes a user.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperrors.NotFound("user")
		}
		return apperrors.DatabaseError(err)
	}
	return nil
}

// List returns a page of users and the total count.
func (s *Service) List(ctx context.Context, page, perPage int) ([]Response, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	records, total, err := s.store.List(ctx, page, perPage)
	if err != nil {
		return nil, 0, apperrors.DatabaseError(err)
	}

	responses := make([]Response, len(records))
	for i := range records {
		responses[i] = records[i].ToResponse()
	}
	return responses, total, nil
}
