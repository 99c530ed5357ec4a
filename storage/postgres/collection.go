package postgres

import (
	"context"
	"database/sql"

	"github.com/jrsteele09/go-boardgame-service/collection"
)

// EntryRepo implements collection.EntryRepo over PostgreSQL. Label
// attachments live in the collection_entry_labels join table; Update
// replaces the attachment set inside one transaction.
type EntryRepo struct {
	db *sql.DB
}

var _ collection.EntryRepo = (*EntryRepo)(nil)

func (r *EntryRepo) Create(ctx context.Context, entry *collection.Entry) (*collection.Entry, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, mapError(err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO collection_entries (user_id, game_id, notes, modified_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	stored := *entry
	stored.Labels = append([]collection.Label(nil), entry.Labels...)
	err = tx.QueryRowContext(ctx, query,
		entry.UserID, entry.GameID, entry.Notes, entry.ModifiedAt).Scan(&stored.ID)
	if err != nil {
		return nil, mapError(err)
	}

	if err := linkLabels(ctx, tx, stored.ID, stored.Labels); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, mapError(err)
	}
	return &stored, nil
}

func (r *EntryRepo) GetByUserIDAndGameID(ctx context.Context, userID int64, gameID int) (*collection.Entry, error) {
	query := `
		SELECT id, user_id, game_id, notes, modified_at
		FROM collection_entries
		WHERE user_id = $1 AND game_id = $2
	`
	entry := &collection.Entry{}
	err := r.db.QueryRowContext(ctx, query, userID, gameID).Scan(
		&entry.ID, &entry.UserID, &entry.GameID, &entry.Notes, &entry.ModifiedAt)
	if err != nil {
		return nil, mapError(err)
	}

	labels, err := r.labelsFor(ctx, []int64{entry.ID})
	if err != nil {
		return nil, err
	}
	entry.Labels = labels[entry.ID]
	return entry, nil
}

func (r *EntryRepo) ListByUserID(ctx context.Context, userID int64) ([]collection.Entry, error) {
	query := `
		SELECT id, user_id, game_id, notes, modified_at
		FROM collection_entries
		WHERE user_id = $1
		ORDER BY modified_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var list []collection.Entry
	var ids []int64
	for rows.Next() {
		entry := collection.Entry{}
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.GameID, &entry.Notes, &entry.ModifiedAt); err != nil {
			return nil, mapError(err)
		}
		list = append(list, entry)
		ids = append(ids, entry.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	labels, err := r.labelsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].Labels = labels[list[i].ID]
	}
	return list, nil
}

func (r *EntryRepo) Update(ctx context.Context, entry *collection.Entry) (*collection.Entry, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, mapError(err)
	}
	defer tx.Rollback()

	query := `
		UPDATE collection_entries
		SET notes = $2, modified_at = $3
		WHERE id = $1
	`
	result, err := tx.ExecContext(ctx, query, entry.ID, entry.Notes, entry.ModifiedAt)
	if err != nil {
		return nil, mapError(err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return nil, mapError(sql.ErrNoRows)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM collection_entry_labels WHERE entry_id = $1`, entry.ID); err != nil {
		return nil, mapError(err)
	}
	if err := linkLabels(ctx, tx, entry.ID, entry.Labels); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, mapError(err)
	}

	stored := *entry
	stored.Labels = append([]collection.Label(nil), entry.Labels...)
	return &stored, nil
}

func (r *EntryRepo) DeleteByUserIDAndGameID(ctx context.Context, userID int64, gameID int) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM collection_entries WHERE user_id = $1 AND game_id = $2`, userID, gameID)
	if err != nil {
		return mapError(err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return mapError(sql.ErrNoRows)
	}
	return nil
}

func (r *EntryRepo) DeleteByUserID(ctx context.Context, userID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM collection_entries WHERE user_id = $1`, userID); err != nil {
		return mapError(err)
	}
	return nil
}

func linkLabels(ctx context.Context, tx *sql.Tx, entryID int64, labels []collection.Label) error {
	for _, label := range labels {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO collection_entry_labels (entry_id, label_id) VALUES ($1, $2)`, entryID, label.ID)
		if err != nil {
			return mapError(err)
		}
	}
	return nil
}

func (r *EntryRepo) labelsFor(ctx context.Context, entryIDs []int64) (map[int64][]collection.Label, error) {
	result := make(map[int64][]collection.Label, len(entryIDs))
	if len(entryIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT el.entry_id, l.id, l.user_id, l.name, l.created_at
		FROM collection_entry_labels el
		JOIN labels l ON l.id = el.label_id
		WHERE el.entry_id = $1
	`
	// One query per entry keeps the driver-level parameter handling simple;
	// collections are small (one row per owned game).
	for _, entryID := range entryIDs {
		rows, err := r.db.QueryContext(ctx, query, entryID)
		if err != nil {
			return nil, mapError(err)
		}
		for rows.Next() {
			var eid int64
			label := collection.Label{}
			if err := rows.Scan(&eid, &label.ID, &label.UserID, &label.Name, &label.CreatedAt); err != nil {
				rows.Close()
				return nil, mapError(err)
			}
			result[eid] = append(result[eid], label)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, mapError(err)
		}
		rows.Close()
	}
	return result, nil
}
