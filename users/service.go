package users

import (
	"context"

	"github.com/pkg/errors"

	apperrors "github.com/jrsteele09/go-boardgame-service/internal/errors"
)

// Service provides profile operations for the authenticated user.
type Service struct {
	users Repo
	owned []OwnedData // domains purged when the account is deleted
}

// NewService initializes a profile Service. The owned slices are purged,
// in order, when an account is deleted.
func NewService(users Repo, owned ...OwnedData) (*Service, error) {
	if users == nil {
		return nil, errors.New("[users.NewService] Users repo is required")
	}
	return &Service{users: users, owned: owned}, nil
}

// GetProfile returns the caller's own user record.
func (s *Service) GetProfile(ctx context.Context, userID int64) (*User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[Service.GetProfile] user %d", userID)
	}
	return user, nil
}

// UpdateProfile changes the caller's display name.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, name string) (*User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[Service.UpdateProfile] user %d", userID)
	}

	user.Name = name
	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[Service.UpdateProfile] update user %d", userID)
	}
	return updated, nil
}

// DeleteAccount removes the user and everything the user owns: reviews,
// collection entries and labels go first so no orphaned rows remain.
func (s *Service) DeleteAccount(ctx context.Context, userID int64) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return apperrors.Wrapf(err, "[Service.DeleteAccount] user %d", userID)
	}

	for _, o := range s.owned {
		if err := o.DeleteByUserID(ctx, userID); err != nil {
			return apperrors.Wrapf(err, "[Service.DeleteAccount] purge owned data for user %d", userID)
		}
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return apperrors.Wrapf(err, "[Service.DeleteAccount] delete user %d", userID)
	}
	return nil
}
