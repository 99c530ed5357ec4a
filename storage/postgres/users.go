package postgres

import (
	"context"
	"database/sql"

	"github.com/jrsteele09/go-boardgame-service/users"
)

// UserRepo implements users.Repo over PostgreSQL.
type UserRepo struct {
	db *sql.DB
}

var _ users.Repo = (*UserRepo)(nil)

func (r *UserRepo) Create(ctx context.Context, user *users.User) (*users.User, error) {
	query := `
		INSERT INTO users (email, name, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	stored := *user
	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.Name, user.PasswordHash, user.CreatedAt).Scan(&stored.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return &stored, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	query := `
		SELECT id, email, name, password_hash, created_at
		FROM users
		WHERE email = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*users.User, error) {
	query := `
		SELECT id, email, name, password_hash, created_at
		FROM users
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepo) Update(ctx context.Context, user *users.User) (*users.User, error) {
	query := `
		UPDATE users
		SET email = $2, name = $3, password_hash = $4
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, user.ID, user.Email, user.Name, user.PasswordHash)
	if err != nil {
		return nil, mapError(err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return nil, mapError(sql.ErrNoRows)
	}
	stored := *user
	return &stored, nil
}

func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return mapError(sql.ErrNoRows)
	}
	return nil
}

func (r *UserRepo) scanOne(row *sql.Row) (*users.User, error) {
	user := &users.User{}
	err := row.Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return user, nil
}
