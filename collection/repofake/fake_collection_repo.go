package fakecollectionrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/jrsteele09/go-boardgame-service/collection"
	apperrors "github.com/jrsteele09/go-boardgame-service/internal/errors"
)

var _ collection.EntryRepo = (*FakeEntryRepo)(nil)

type FakeEntryRepo struct {
	entries map[int64]*collection.Entry
	nextID  int64
	lock    sync.RWMutex
}

func NewFakeEntryRepo() *FakeEntryRepo {
	return &FakeEntryRepo{
		entries: make(map[int64]*collection.Entry),
		nextID:  1,
	}
}

func (er *FakeEntryRepo) Create(_ context.Context, entry *collection.Entry) (*collection.Entry, error) {
	er.lock.Lock()
	defer er.lock.Unlock()

	for _, existing := range er.entries {
		if existing.UserID == entry.UserID && existing.GameID == entry.GameID {
			return nil, apperrors.ErrConflict
		}
	}

	stored := copyEntry(entry)
	stored.ID = er.nextID
	er.nextID++
	er.entries[stored.ID] = stored

	result := copyEntry(stored)
	return result, nil
}

func (er *FakeEntryRepo) GetByUserIDAndGameID(_ context.Context, userID int64, gameID int) (*collection.Entry, error) {
	er.lock.RLock()
	defer er.lock.RUnlock()

	for _, entry := range er.entries {
		if entry.UserID == userID && entry.GameID == gameID {
			return copyEntry(entry), nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (er *FakeEntryRepo) ListByUserID(_ context.Context, userID int64) ([]collection.Entry, error) {
	er.lock.RLock()
	defer er.lock.RUnlock()

	var list []collection.Entry
	for _, entry := range er.entries {
		if entry.UserID == userID {
			list = append(list, *copyEntry(entry))
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].ModifiedAt.Equal(list[j].ModifiedAt) {
			return list[i].ID > list[j].ID
		}
		return list[i].ModifiedAt.After(list[j].ModifiedAt)
	})
	return list, nil
}

func (er *FakeEntryRepo) Update(_ context.Context, entry *collection.Entry) (*collection.Entry, error) {
	er.lock.Lock()
	defer er.lock.Unlock()

	if _, ok := er.entries[entry.ID]; !ok {
		return nil, apperrors.ErrNotFound
	}
	stored := copyEntry(entry)
	er.entries[stored.ID] = stored

	result := copyEntry(stored)
	return result, nil
}

func (er *FakeEntryRepo) DeleteByUserIDAndGameID(_ context.Context, userID int64, gameID int) error {
	er.lock.Lock()
	defer er.lock.Unlock()

	for id, entry := range er.entries {
		if entry.UserID == userID && entry.GameID == gameID {
			delete(er.entries, id)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (er *FakeEntryRepo) DeleteByUserID(_ context.Context, userID int64) error {
	er.lock.Lock()
	defer er.lock.Unlock()

	for id, entry := range er.entries {
		if entry.UserID == userID {
			delete(er.entries, id)
		}
	}
	return nil
}

func copyEntry(entry *collection.Entry) *collection.Entry {
	result := *entry
	result.Labels = append([]collection.Label(nil), entry.Labels...)
	return &result
}
