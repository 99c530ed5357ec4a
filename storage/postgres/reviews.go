package postgres

import (
	"context"
	"database/sql"

	"github.com/jrsteele09/go-boardgame-service/reviews"
)

// ReviewRepo implements reviews.Repo over PostgreSQL. Reads join the users
// table so the reviewer's display name comes back with each row.
type ReviewRepo struct {
	db *sql.DB
}

var _ reviews.Repo = (*ReviewRepo)(nil)

const reviewColumns = `r.id, r.user_id, u.name, r.game_id, r.rating, r.review_text, r.created_at, r.updated_at`

func (r *ReviewRepo) Create(ctx context.Context, review *reviews.Review) (*reviews.Review, error) {
	query := `
		INSERT INTO reviews (user_id, game_id, rating, review_text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	stored := *review
	err := r.db.QueryRowContext(ctx, query,
		review.UserID, review.GameID, review.Rating, review.ReviewText,
		review.CreatedAt, review.UpdatedAt).Scan(&stored.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return &stored, nil
}

func (r *ReviewRepo) GetByID(ctx context.Context, id int64) (*reviews.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.id = $1
	`
	return scanReview(r.db.QueryRowContext(ctx, query, id))
}

func (r *ReviewRepo) GetByUserIDAndGameID(ctx context.Context, userID int64, gameID int) (*reviews.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.user_id = $1 AND r.game_id = $2
	`
	return scanReview(r.db.QueryRowContext(ctx, query, userID, gameID))
}

func (r *ReviewRepo) ListByUserID(ctx context.Context, userID int64) ([]reviews.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC, r.id DESC
	`
	return r.list(ctx, query, userID)
}

func (r *ReviewRepo) ListByGameID(ctx context.Context, gameID int) ([]reviews.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.game_id = $1
		ORDER BY r.created_at DESC, r.id DESC
	`
	return r.list(ctx, query, gameID)
}

func (r *ReviewRepo) Update(ctx context.Context, review *reviews.Review) (*reviews.Review, error) {
	query := `
		UPDATE reviews
		SET rating = $2, review_text = $3, updated_at = $4
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, review.ID, review.Rating, review.ReviewText, review.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return nil, mapError(sql.ErrNoRows)
	}
	stored := *review
	return &stored, nil
}

func (r *ReviewRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return mapError(sql.ErrNoRows)
	}
	return nil
}

func (r *ReviewRepo) DeleteByUserID(ctx context.Context, userID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE user_id = $1`, userID); err != nil {
		return mapError(err)
	}
	return nil
}

func (r *ReviewRepo) list(ctx context.Context, query string, arg any) ([]reviews.Review, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var list []reviews.Review
	for rows.Next() {
		review := reviews.Review{}
		if err := rows.Scan(&review.ID, &review.UserID, &review.UserName, &review.GameID,
			&review.Rating, &review.ReviewText, &review.CreatedAt, &review.UpdatedAt); err != nil {
			return nil, mapError(err)
		}
		list = append(list, review)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return list, nil
}

func scanReview(row *sql.Row) (*reviews.Review, error) {
	review := &reviews.Review{}
	err := row.Scan(&review.ID, &review.UserID, &review.UserName, &review.GameID,
		&review.Rating, &review.ReviewText, &review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return review, nil
}
