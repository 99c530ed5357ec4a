package users

import "context"

// Repo is the persistence boundary for user records.
// Create returns ErrConflict when the email is already registered;
// lookups return ErrNotFound when no row matches.
type Repo interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	Update(ctx context.Context, user *User) (*User, error)
	Delete(ctx context.Context, id int64) error
}

// OwnedData is the slice of another domain's storage that can purge
// everything a user owns. Account deletion fans out over these.
type OwnedData interface {
	DeleteByUserID(ctx context.Context, userID int64) error
}
