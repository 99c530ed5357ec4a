package reviews

import "context"

// Repo is the persistence boundary for reviews. Create returns ErrConflict
// when the user has already reviewed the game; lookups return ErrNotFound.
// List results are ordered newest first.
type Repo interface {
	Create(ctx context.Context, review *Review) (*Review, error)
	GetByID(ctx context.Context, id int64) (*Review, error)
	GetByUserIDAndGameID(ctx context.Context, userID int64, gameID int) (*Review, error)
	ListByUserID(ctx context.Context, userID int64) ([]Review, error)
	ListByGameID(ctx context.Context, gameID int) ([]Review, error)
	Update(ctx context.Context, review *Review) (*Review, error)
	Delete(ctx context.Context, id int64) error
	DeleteByUserID(ctx context.Context, userID int64) error
}
