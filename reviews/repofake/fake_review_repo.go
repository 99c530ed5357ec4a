package fakereviewrepo

import (
	"context"
	"sort"
	"sync"

	apperrors "github.com/jrsteele09/go-boardgame-service/internal/errors"
	"github.com/jrsteele09/go-boardgame-service/reviews"
)

var _ reviews.Repo = (*FakeReviewRepo)(nil)

type FakeReviewRepo struct {
	reviews map[int64]*reviews.Review
	nextID  int64
	lock    sync.RWMutex
}

func NewFakeReviewRepo() *FakeReviewRepo {
	return &FakeReviewRepo{
		reviews: make(map[int64]*reviews.Review),
		nextID:  1,
	}
}

func (rr *FakeReviewRepo) Create(_ context.Context, review *reviews.Review) (*reviews.Review, error) {
	rr.lock.Lock()
	defer rr.lock.Unlock()

	for _, existing := range rr.reviews {
		if existing.UserID == review.UserID && existing.GameID == review.GameID {
			return nil, apperrors.ErrConflict
		}
	}

	stored := *review
	stored.ID = rr.nextID
	rr.nextID++
	rr.reviews[stored.ID] = &stored

	result := stored
	return &result, nil
}

func (rr *FakeReviewRepo) GetByID(_ context.Context, id int64) (*reviews.Review, error) {
	rr.lock.RLock()
	defer rr.lock.RUnlock()

	review, ok := rr.reviews[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	result := *review
	return &result, nil
}

func (rr *FakeReviewRepo) GetByUserIDAndGameID(_ context.Context, userID int64, gameID int) (*reviews.Review, error) {
	rr.lock.RLock()
	defer rr.lock.RUnlock()

	for _, review := range rr.reviews {
		if review.UserID == userID && review.GameID == gameID {
			result := *review
			return &result, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (rr *FakeReviewRepo) ListByUserID(_ context.Context, userID int64) ([]reviews.Review, error) {
	rr.lock.RLock()
	defer rr.lock.RUnlock()

	var list []reviews.Review
	for _, review := range rr.reviews {
		if review.UserID == userID {
			list = append(list, *review)
		}
	}
	sortNewestFirst(list)
	return list, nil
}

func (rr *FakeReviewRepo) ListByGameID(_ context.Context, gameID int) ([]reviews.Review, error) {
	rr.lock.RLock()
	defer rr.lock.RUnlock()

	var list []reviews.Review
	for _, review := range rr.reviews {
		if review.GameID == gameID {
			list = append(list, *review)
		}
	}
	sortNewestFirst(list)
	return list, nil
}

func (rr *FakeReviewRepo) Update(_ context.Context, review *reviews.Review) (*reviews.Review, error) {
	rr.lock.Lock()
	defer rr.lock.Unlock()

	if _, ok := rr.reviews[review.ID]; !ok {
		return nil, apperrors.ErrNotFound
	}
	stored := *review
	rr.reviews[stored.ID] = &stored

	result := stored
	return &result, nil
}

func (rr *FakeReviewRepo) Delete(_ context.Context, id int64) error {
	rr.lock.Lock()
	defer rr.lock.Unlock()

	if _, ok := rr.reviews[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(rr.reviews, id)
	return nil
}

func (rr *FakeReviewRepo) DeleteByUserID(_ context.Context, userID int64) error {
	rr.lock.Lock()
	defer rr.lock.Unlock()

	for id, review := range rr.reviews {
		if review.UserID == userID {
			delete(rr.reviews, id)
		}
	}
	return nil
}

func sortNewestFirst(list []reviews.Review) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID > list[j].ID
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}
