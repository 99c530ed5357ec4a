package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jrsteele09/go-boardgame-service/collection"
)

// LabelRepo implements collection.LabelRepo over PostgreSQL. The
// UNIQUE (user_id, name) constraint is the backstop for concurrent
// reconciliation: a losing insert surfaces as ErrConflict.
type LabelRepo struct {
	db *sql.DB
}

var _ collection.LabelRepo = (*LabelRepo)(nil)

func (r *LabelRepo) ListByUserIDAndNames(ctx context.Context, userID int64, names []string) ([]collection.Label, error) {
	if len(names) == 0 {
		return nil, nil
	}

	args := make([]any, 0, len(names)+1)
	args = append(args, userID)
	placeholders := make([]string, len(names))
	for i, name := range names {
		args = append(args, name)
		placeholders[i] = fmt.Sprintf("$%d", i+2)
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, name, created_at
		FROM labels
		WHERE user_id = $1 AND name IN (%s)
	`, strings.Join(placeholders, ", "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var list []collection.Label
	for rows.Next() {
		label := collection.Label{}
		if err := rows.Scan(&label.ID, &label.UserID, &label.Name, &label.CreatedAt); err != nil {
			return nil, mapError(err)
		}
		list = append(list, label)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return list, nil
}

func (r *LabelRepo) Create(ctx context.Context, label *collection.Label) (*collection.Label, error) {
	query := `
		INSERT INTO labels (user_id, name, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	stored := *label
	err := r.db.QueryRowContext(ctx, query, label.UserID, label.Name, label.CreatedAt).Scan(&stored.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return &stored, nil
}

func (r *LabelRepo) DeleteByUserID(ctx context.Context, userID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM labels WHERE user_id = $1`, userID); err != nil {
		return mapError(err)
	}
	return nil
}
