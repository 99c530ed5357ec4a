package collection

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/jrsteele09/go-boardgame-service/auth"
	apperrors "github.com/jrsteele09/go-boardgame-service/internal/errors"
	"github.com/jrsteele09/go-boardgame-service/reviews"
)

// RatingLookup is the slice of the review store the collection needs: the
// caller's own rating for a game, if any.
type RatingLookup interface {
	GetByUserIDAndGameID(ctx context.Context, userID int64, gameID int) (*reviews.Review, error)
}

// Service manages a user's board game collection and its labels.
type Service struct {
	entries    EntryRepo
	reconciler *Reconciler
	ratings    RatingLookup
	nowTime    func() time.Time
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// NewService initializes a collection Service with required dependencies.
func NewService(entries EntryRepo, reconciler *Reconciler, ratings RatingLookup, options ...ServiceOption) (*Service, error) {
	if entries == nil {
		return nil, errors.New("[collection.NewService] Entries repo is required")
	}
	if reconciler == nil {
		return nil, errors.New("[collection.NewService] label reconciler is required")
	}
	if ratings == nil {
		return nil, errors.New("[collection.NewService] rating lookup is required")
	}

	s := &Service{entries: entries, reconciler: reconciler, ratings: ratings, nowTime: time.Now}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// List returns the caller's collection, newest first, each entry enriched
// with the caller's own rating for the game when one exists.
func (s *Service) List(ctx context.Context, userID int64) ([]Item, error) {
	entries, err := s.entries.ListByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[Service.List] user %d", userID)
	}

	items := make([]Item, 0, len(entries))
	for _, entry := range entries {
		items = append(items, Item{Entry: entry, UserRating: s.ratingFor(ctx, userID, entry.GameID)})
	}
	return items, nil
}

// AddGame puts a game into the caller's collection. A game already present
// yields ErrConflict. Label names, when supplied, are reconciled to the
// caller's label rows.
func (s *Service) AddGame(ctx context.Context, userID int64, gameID int, notes string, labelNames []string) (*Item, error) {
	labels, err := s.reconciler.Reconcile(ctx, userID, labelNames)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[Service.AddGame] labels for game %d", gameID)
	}

	entry, err := s.entries.Create(ctx, &Entry{
		UserID:     userID,
		GameID:     gameID,
		Notes:      notes,
		Labels:     labels,
		ModifiedAt: s.nowTime(),
	})
	if err != nil {
		return nil, apperrors.Wrapf(err, "[Service.AddGame] game %d for user %d", gameID, userID)
	}

	return &Item{Entry: *entry, UserRating: s.ratingFor(ctx, userID, gameID)}, nil
}

// UpdateGame rewrites an entry's notes and, when labelNames is non-nil,
// replaces its label attachments with the reconciled set. A nil labelNames
// leaves the attachments untouched. Labels detached here are not deleted.
func (s *Service) UpdateGame(ctx context.Context, userID int64, gameID int, notes string, labelNames []string) (*Item, error) {
	entry, err := s.entries.GetByUserIDAndGameID(ctx, userID, gameID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[Service.UpdateGame] game %d for user %d", gameID, userID)
	}

	if err := auth.Authorize(userID, entry.UserID); err != nil {
		return nil, apperrors.Wrapf(err, "[Service.UpdateGame] game %d", gameID)
	}

	entry.Notes = notes
	entry.ModifiedAt = s.nowTime()

	if labelNames != nil {
		labels, err := s.reconciler.Reconcile(ctx, userID, labelNames)
		if err != nil {
			return nil, apperrors.Wrapf(err, "[Service.UpdateGame] labels for game %d", gameID)
		}
		entry.Labels = labels
	}

	updated, err := s.entries.Update(ctx, entry)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[Service.UpdateGame] update game %d for user %d", gameID, userID)
	}

	return &Item{Entry: *updated, UserRating: s.ratingFor(ctx, userID, gameID)}, nil
}

// RemoveGame takes a game out of the caller's collection.
func (s *Service) RemoveGame(ctx context.Context, userID int64, gameID int) error {
	entry, err := s.entries.GetByUserIDAndGameID(ctx, userID, gameID)
	if err != nil {
		return apperrors.Wrapf(err, "[Service.RemoveGame] game %d for user %d", gameID, userID)
	}

	if err := auth.Authorize(userID, entry.UserID); err != nil {
		return apperrors.Wrapf(err, "[Service.RemoveGame] game %d", gameID)
	}

	if err := s.entries.DeleteByUserIDAndGameID(ctx, userID, gameID); err != nil {
		return apperrors.Wrapf(err, "[Service.RemoveGame] delete game %d for user %d", gameID, userID)
	}
	return nil
}

func (s *Service) ratingFor(ctx context.Context, userID int64, gameID int) *int {
	review, err := s.ratings.GetByUserIDAndGameID(ctx, userID, gameID)
	if err != nil {
		return nil
	}
	rating := review.Rating
	return &rating
}
