package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/license-flow/internal/model"
)

// HistoryRepo provides append and read access to the action_history
// table.  The table is append-only: no update or delete statement exists
// anywhere in this file, and none should be added.
type HistoryRepo struct {
	db *sql.DB
}

// NewHistoryRepo returns a new HistoryRepo bound to the given database.
func NewHistoryRepo(db *sql.DB) *HistoryRepo { return &HistoryRepo{db: db} }

// AppendTx inserts one history entry within the scope of an existing
// transaction and populates the generated id and created_at on the
// provided record.  The caller must commit or rollback the transaction.
func (r *HistoryRepo) AppendTx(ctx context.Context, tx *sql.Tx, e *model.ActionHistory) error {
	const q = `INSERT INTO action_history (application_id, actor_id, target_user_id, action, comments)
	           VALUES (?,?,?,?,?)`
	res, err := tx.ExecContext(ctx, q, e.ApplicationID, e.ActorID, e.TargetUserID, e.Action, e.Comments)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return tx.QueryRowContext(ctx,
		"SELECT created_at FROM action_history WHERE id=?", e.ID).Scan(&e.CreatedAt)
}

// ListByApplication returns the full history of an application, oldest
// first.  Ties on created_at are broken by insertion order via the id
// column, which gives every application a total action order.
func (r *HistoryRepo) ListByApplication(ctx context.Context, applicationID string) ([]model.ActionHistory, error) {
	const q = `SELECT id, application_id, actor_id, target_user_id, action, comments, created_at
	           FROM action_history WHERE application_id=? ORDER BY created_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, q, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	entries := make([]model.ActionHistory, 0)
	for rows.Next() {
		var e model.ActionHistory
		var target sql.NullInt64
		if err := rows.Scan(&e.ID, &e.ApplicationID, &e.ActorID, &target, &e.Action, &e.Comments, &e.CreatedAt); err != nil {
			return nil, err
		}
		if target.Valid {
			t := uint64(target.Int64)
			e.TargetUserID = &t
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
