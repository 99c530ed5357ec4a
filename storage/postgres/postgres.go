// Package postgres implements the service's repositories over PostgreSQL
// using the pgx stdlib driver, with goose-managed schema migrations
// embedded in the binary.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	apperrors "github.com/jrsteele09/go-boardgame-service/internal/errors"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store owns the database handle and hands out the per-domain repositories.
type Store struct {
	db      *sql.DB
	users   *UserRepo
	reviews *ReviewRepo
	entries *EntryRepo
	labels  *LabelRepo
}

// Open connects to the database and brings the schema up to date.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	s := &Store{
		db:      db,
		users:   &UserRepo{db: db},
		reviews: &ReviewRepo{db: db},
		entries: &EntryRepo{db: db},
		labels:  &LabelRepo{db: db},
	}

	if err := s.RunMigrations(context.Background()); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return s, nil
}

// RunMigrations applies any pending embedded migrations.
func (s *Store) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, s.db, "migrations")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Users() *UserRepo {
	return s.users
}

func (s *Store) Reviews() *ReviewRepo {
	return s.reviews
}

func (s *Store) Entries() *EntryRepo {
	return s.entries
}

func (s *Store) Labels() *LabelRepo {
	return s.labels
}

// uniqueViolation is the PostgreSQL error code for a unique constraint hit.
const uniqueViolation = "23505"

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return apperrors.ErrConflict
	}
	return fmt.Errorf("db error: %w", err)
}
