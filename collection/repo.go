package collection

import "context"

// EntryRepo is the persistence boundary for collection entries. Create
// returns ErrConflict when the game is already in the user's collection;
// lookups return ErrNotFound. Reads include the entry's labels; Update
// replaces notes, timestamp and the label attachment set.
type EntryRepo interface {
	Create(ctx context.Context, entry *Entry) (*Entry, error)
	GetByUserIDAndGameID(ctx context.Context, userID int64, gameID int) (*Entry, error)
	ListByUserID(ctx context.Context, userID int64) ([]Entry, error)
	Update(ctx context.Context, entry *Entry) (*Entry, error)
	DeleteByUserIDAndGameID(ctx context.Context, userID int64, gameID int) error
	DeleteByUserID(ctx context.Context, userID int64) error
}

// LabelRepo is the persistence boundary for labels. The store must enforce
// uniqueness of (user id, name); Create maps a violation to ErrConflict,
// which the reconciler treats as "another caller won the race".
type LabelRepo interface {
	ListByUserIDAndNames(ctx context.Context, userID int64, names []string) ([]Label, error)
	Create(ctx context.Context, label *Label) (*Label, error)
	DeleteByUserID(ctx context.Context, userID int64) error
}
