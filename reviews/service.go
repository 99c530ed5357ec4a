package reviews

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/jrsteele09/go-boardgame-service/auth"
	apperrors "github.com/jrsteele09/go-boardgame-service/internal/errors"
	"github.com/jrsteele09/go-boardgame-service/users"
)

// Service provides review operations. Mutations are guarded by ownership:
// the authenticated subject must match the review's recorded owner.
type Service struct {
	reviews  Repo
	userRepo users.Repo
	nowTime  func() time.Time
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// NewService initializes a review Service with required dependencies.
func NewService(reviews Repo, userRepo users.Repo, options ...ServiceOption) (*Service, error) {
	if reviews == nil {
		return nil, errors.New("[reviews.NewService] Reviews repo is required")
	}
	if userRepo == nil {
		return nil, errors.New("[reviews.NewService] Users repo is required")
	}

	s := &Service{reviews: reviews, userRepo: userRepo, nowTime: time.Now}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Create stores a new review for the caller. A second review for the same
// game by the same user yields ErrConflict.
func (s *Service) Create(ctx context.Context, callerID int64, gameID, rating int, reviewText string) (*Review, error) {
	user, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[Service.Create] user %d", callerID)
	}

	now := s.nowTime()
	review, err := s.reviews.Create(ctx, &Review{
		UserID:     user.ID,
		UserName:   user.Name,
		GameID:     gameID,
		Rating:     rating,
		ReviewText: reviewText,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, apperrors.Wrapf(err, "[Service.Create] review for game %d", gameID)
	}
	return review, nil
}

// Get returns a single review by id. Reviews are public.
func (s *Service) Get(ctx context.Context, reviewID int64) (*Review, error) {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[Service.Get] review %d", reviewID)
	}
	return review, nil
}

// ListByUser returns all reviews written by one user, newest first.
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]Review, error) {
	list, err := s.reviews.ListByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[Service.ListByUser] user %d", userID)
	}
	return list, nil
}

// ListByGame returns all reviews for one game plus the total count and
// average rating. The average is nil when there are no reviews.
func (s *Service) ListByGame(ctx context.Context, gameID int) (*GameReviews, error) {
	list, err := s.reviews.ListByGameID(ctx, gameID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[Service.ListByGame] game %d", gameID)
	}

	result := &GameReviews{Reviews: list, TotalCount: int64(len(list))}
	if len(list) > 0 {
		var sum int
		for _, r := range list {
			sum += r.Rating
		}
		avg := float64(sum) / float64(len(list))
		result.AverageRating = &avg
	}
	return result, nil
}

// Update rewrites the rating and text of a review the caller owns.
// A review that exists but belongs to someone else yields ErrForbidden,
// which is distinct from the ErrNotFound of a missing review.
func (s *Service) Update(ctx context.Context, callerID, reviewID int64, rating int, reviewText string) (*Review, error) {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[Service.Update] review %d", reviewID)
	}

	if err := auth.Authorize(callerID, review.UserID); err != nil {
		return nil, apperrors.Wrapf(err, "[Service.Update] review %d", reviewID)
	}

	review.Rating = rating
	review.ReviewText = reviewText
	review.UpdatedAt = s.nowTime()

	updated, err := s.reviews.Update(ctx, review)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[Service.Update] review %d", reviewID)
	}
	return updated, nil
}

// Delete removes a review the caller owns.
func (s *Service) Delete(ctx context.Context, callerID, reviewID int64) error {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return apperrors.Wrapf(err, "[Service.Delete] review %d", reviewID)
	}

	if err := auth.Authorize(callerID, review.UserID); err != nil {
		return apperrors.Wrapf(err, "[Service.Delete] review %d", reviewID)
	}

	if err := s.reviews.Delete(ctx, review.ID); err != nil {
		return apperrors.Wrapf(err, "[Service.Delete] review %d", reviewID)
	}
	return nil
}
