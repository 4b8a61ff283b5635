package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/license-flow/internal/model"
)

// FlowMapRepo provides persistence for per-user forwarding maps.  The
// flow_maps table holds one row per current user; the permitted
// recipients live in the flow_map_next_users join table.
type FlowMapRepo struct {
	db *sql.DB
}

// NewFlowMapRepo returns a new FlowMapRepo bound to the given database.
func NewFlowMapRepo(db *sql.DB) *FlowMapRepo { return &FlowMapRepo{db: db} }

// Replace is an idempotent upsert of a user's forwarding map: the map row
// is created if missing and its recipient set is replaced wholesale with
// the given ids.  Calling it twice with the same arguments yields the
// same membership with no duplicate rows.  Every referenced user,
// including the current user, must exist; a dangling id aborts the whole
// operation with ErrUserNotFound before anything is written.
func (r *FlowMapRepo) Replace(ctx context.Context, currentUserID uint64, nextUserIDs []uint64) (model.FlowMap, error) {
	unique := dedupeUserIDs(nextUserIDs)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.FlowMap{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	referenced := append([]uint64{currentUserID}, unique...)
	if err := usersExistTx(ctx, tx, referenced); err != nil {
		return model.FlowMap{}, err
	}

	var mapID uint64
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM flow_maps WHERE current_user_id=? LIMIT 1", currentUserID).Scan(&mapID)
	switch {
	case err == sql.ErrNoRows:
		res, err := tx.ExecContext(ctx,
			"INSERT INTO flow_maps (current_user_id) VALUES (?)", currentUserID)
		if err != nil {
			return model.FlowMap{}, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return model.FlowMap{}, err
		}
		mapID = uint64(id)
	case err != nil:
		return model.FlowMap{}, err
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM flow_map_next_users WHERE flow_map_id=?", mapID); err != nil {
		return model.FlowMap{}, err
	}
	if len(unique) > 0 {
		q := "INSERT INTO flow_map_next_users (flow_map_id, next_user_id) VALUES "
		args := make([]interface{}, 0, len(unique)*2)
		for i, id := range unique {
			if i > 0 {
				q += ","
			}
			q += "(?,?)"
			args = append(args, mapID, id)
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return model.FlowMap{}, err
		}
	}

	fm := model.FlowMap{ID: mapID, CurrentUserID: currentUserID, NextUserIDs: unique}
	if err := tx.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM flow_maps WHERE id=?", mapID).Scan(&fm.CreatedAt, &fm.UpdatedAt); err != nil {
		return model.FlowMap{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.FlowMap{}, err
	}
	committed = true
	return fm, nil
}

// dedupeUserIDs drops zero ids and duplicates while preserving caller
// order.  The resulting slice is the map's recipient membership, so
// feeding the same input in repeatedly always settles on the same rows.
func dedupeUserIDs(ids []uint64) []uint64 {
	unique := make([]uint64, 0, len(ids))
	seen := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			unique = append(unique, id)
		}
	}
	return unique
}

// usersExistTx verifies that every id in the slice references an existing
// user.  It counts distinct matches rather than querying per id.
func usersExistTx(ctx context.Context, tx *sql.Tx, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	distinct := make(map[uint64]struct{}, len(ids))
	placeholders := make([]string, 0, len(ids))
	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		if _, ok := distinct[id]; ok {
			continue
		}
		distinct[id] = struct{}{}
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}
	var n int
	q := "SELECT COUNT(*) FROM users WHERE id IN (" + strings.Join(placeholders, ",") + ")"
	if err := tx.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return err
	}
	if n != len(distinct) {
		return ErrUserNotFound
	}
	return nil
}

// ListByUser returns every flow map owned by the given user together with
// its recipient ids.  The simple model keeps at most one map per user but
// the read path tolerates several.
func (r *FlowMapRepo) ListByUser(ctx context.Context, userID uint64) ([]model.FlowMap, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, current_user_id, created_at, updated_at FROM flow_maps WHERE current_user_id=? ORDER BY id", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	maps := make([]model.FlowMap, 0)
	index := make(map[uint64]int)
	for rows.Next() {
		var fm model.FlowMap
		if err := rows.Scan(&fm.ID, &fm.CurrentUserID, &fm.CreatedAt, &fm.UpdatedAt); err != nil {
			return nil, err
		}
		fm.NextUserIDs = []uint64{}
		index[fm.ID] = len(maps)
		maps = append(maps, fm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(maps) == 0 {
		return maps, nil
	}
	// Populate recipients for all maps in a single query.
	ids := make([]interface{}, 0, len(maps))
	placeholders := make([]string, 0, len(maps))
	for _, fm := range maps {
		ids = append(ids, fm.ID)
		placeholders = append(placeholders, "?")
	}
	q := `SELECT flow_map_id, next_user_id FROM flow_map_next_users
	      WHERE flow_map_id IN (` + strings.Join(placeholders, ",") + `) ORDER BY id`
	nrows, err := r.db.QueryContext(ctx, q, ids...)
	if err != nil {
		return nil, err
	}
	defer nrows.Close()
	for nrows.Next() {
		var mapID, nextID uint64
		if err := nrows.Scan(&mapID, &nextID); err != nil {
			return nil, err
		}
		if idx, ok := index[mapID]; ok {
			maps[idx].NextUserIDs = append(maps[idx].NextUserIDs, nextID)
		}
	}
	if err := nrows.Err(); err != nil {
		return nil, err
	}
	return maps, nil
}
