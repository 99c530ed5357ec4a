package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-boardgame-service/collection"
	apperrors "github.com/jrsteele09/go-boardgame-service/internal/errors"
	"github.com/jrsteele09/go-boardgame-service/reviews"
	"github.com/jrsteele09/go-boardgame-service/users"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

func TestUserRepo_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &UserRepo{db: db}

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("alice@example.com", "Alice", "hash", now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	user, err := repo.Create(context.Background(), &users.User{
		Email:        "alice@example.com",
		Name:         "Alice",
		PasswordHash: "hash",
		CreatedAt:    now,
	})

	require.NoError(t, err)
	require.Equal(t, int64(1), user.ID)
	require.Equal(t, "alice@example.com", user.Email)
}

func TestUserRepo_Create_DuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &UserRepo{db: db}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation})

	_, err := repo.Create(context.Background(), &users.User{Email: "alice@example.com"})

	require.Error(t, err)
	require.True(t, apperrors.Is(err, apperrors.ErrConflict))
}

func TestUserRepo_GetByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &UserRepo{db: db}

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "email", "name", "password_hash", "created_at"}).
		AddRow(int64(1), "alice@example.com", "Alice", "hash", now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs("alice@example.com").
		WillReturnRows(rows)

	user, err := repo.GetByEmail(context.Background(), "alice@example.com")

	require.NoError(t, err)
	require.Equal(t, int64(1), user.ID)
	require.Equal(t, "Alice", user.Name)
}

func TestUserRepo_GetByEmail_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &UserRepo{db: db}

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")

	require.Error(t, err)
	require.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestUserRepo_Update_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &UserRepo{db: db}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.Update(context.Background(), &users.User{ID: 99})

	require.Error(t, err)
	require.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestUserRepo_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &UserRepo{db: db}

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users")).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 1))
}

func TestReviewRepo_Create_Duplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &ReviewRepo{db: db}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO reviews")).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation})

	_, err := repo.Create(context.Background(), &reviews.Review{UserID: 1, GameID: 1})

	require.Error(t, err)
	require.True(t, apperrors.Is(err, apperrors.ErrConflict))
}

func TestReviewRepo_ListByGameID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &ReviewRepo{db: db}

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "name", "game_id", "rating", "review_text", "created_at", "updated_at"}).
		AddRow(int64(2), int64(1), "Alice", 174430, 5, "superb", now, now).
		AddRow(int64(1), int64(2), "Bob", 174430, 2, "not for me", now.Add(-time.Hour), now.Add(-time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta("FROM reviews r")).
		WithArgs(174430).
		WillReturnRows(rows)

	list, err := repo.ListByGameID(context.Background(), 174430)

	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Alice", list[0].UserName)
	require.Equal(t, 5, list[0].Rating)
}

func TestLabelRepo_ListByUserIDAndNames(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &LabelRepo{db: db}

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "name", "created_at"}).
		AddRow(int64(1), int64(1), "Strategy", now).
		AddRow(int64(2), int64(1), "Euro", now)
	mock.ExpectQuery(regexp.QuoteMeta(`name IN ($2, $3)`)).
		WithArgs(int64(1), "Strategy", "Euro").
		WillReturnRows(rows)

	list, err := repo.ListByUserIDAndNames(context.Background(), 1, []string{"Strategy", "Euro"})

	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Strategy", list[0].Name)
}

func TestLabelRepo_ListByUserIDAndNames_EmptyInput(t *testing.T) {
	db, _ := newMockDB(t)
	repo := &LabelRepo{db: db}

	list, err := repo.ListByUserIDAndNames(context.Background(), 1, nil)

	require.NoError(t, err)
	require.Empty(t, list)
}

func TestLabelRepo_Create_Conflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &LabelRepo{db: db}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO labels")).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation})

	_, err := repo.Create(context.Background(), &collection.Label{UserID: 1, Name: "Strategy"})

	require.Error(t, err)
	require.True(t, apperrors.Is(err, apperrors.ErrConflict))
}

func TestEntryRepo_Create_LinksLabels(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &EntryRepo{db: db}

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO collection_entries")).
		WithArgs(int64(1), 174430, "notes", now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(10)))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO collection_entry_labels")).
		WithArgs(int64(10), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	entry, err := repo.Create(context.Background(), &collection.Entry{
		UserID:     1,
		GameID:     174430,
		Notes:      "notes",
		Labels:     []collection.Label{{ID: 5, UserID: 1, Name: "Strategy"}},
		ModifiedAt: now,
	})

	require.NoError(t, err)
	require.Equal(t, int64(10), entry.ID)
}

func TestEntryRepo_Create_Duplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &EntryRepo{db: db}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO collection_entries")).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation})
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), &collection.Entry{UserID: 1, GameID: 174430})

	require.Error(t, err)
	require.True(t, apperrors.Is(err, apperrors.ErrConflict))
}

func TestMapError(t *testing.T) {
	require.NoError(t, mapError(nil))
	require.True(t, apperrors.Is(mapError(sql.ErrNoRows), apperrors.ErrNotFound))
	require.True(t, apperrors.Is(mapError(&pgconn.PgError{Code: uniqueViolation}), apperrors.ErrConflict))
	require.False(t, apperrors.Is(mapError(&pgconn.PgError{Code: "42601"}), apperrors.ErrConflict))
}
