package fakecollectionrepo

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-boardgame-service/collection"
	apperrors "github.com/jrsteele09/go-boardgame-service/internal/errors"
)

var _ collection.LabelRepo = (*FakeLabelRepo)(nil)

// FakeLabelRepo enforces the same (user id, name) uniqueness the real store
// guarantees with a constraint, so reconciliation races are testable here.
type FakeLabelRepo struct {
	labels map[int64]*collection.Label
	nextID int64
	lock   sync.RWMutex

	// CreateHook, when set, runs inside Create before the insert. Tests use
	// it to interleave a competing insert and provoke the conflict path.
	CreateHook func()
}

func NewFakeLabelRepo() *FakeLabelRepo {
	return &FakeLabelRepo{
		labels: make(map[int64]*collection.Label),
		nextID: 1,
	}
}

func (lr *FakeLabelRepo) ListByUserIDAndNames(_ context.Context, userID int64, names []string) ([]collection.Label, error) {
	lr.lock.RLock()
	defer lr.lock.RUnlock()

	wanted := make(map[string]struct{}, len(names))
	for _, name := range names {
		wanted[name] = struct{}{}
	}

	var list []collection.Label
	for _, label := range lr.labels {
		if label.UserID != userID {
			continue
		}
		if _, ok := wanted[label.Name]; ok {
			list = append(list, *label)
		}
	}
	return list, nil
}

func (lr *FakeLabelRepo) Create(_ context.Context, label *collection.Label) (*collection.Label, error) {
	if lr.CreateHook != nil {
		lr.CreateHook()
	}

	lr.lock.Lock()
	defer lr.lock.Unlock()

	for _, existing := range lr.labels {
		if existing.UserID == label.UserID && existing.Name == label.Name {
			return nil, apperrors.ErrConflict
		}
	}

	stored := *label
	stored.ID = lr.nextID
	lr.nextID++
	lr.labels[stored.ID] = &stored

	result := stored
	return &result, nil
}

func (lr *FakeLabelRepo) DeleteByUserID(_ context.Context, userID int64) error {
	lr.lock.Lock()
	defer lr.lock.Unlock()

	for id, label := range lr.labels {
		if label.UserID == userID {
			delete(lr.labels, id)
		}
	}
	return nil
}
