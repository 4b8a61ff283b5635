package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/license-flow/internal/model"
	"github.com/iliyamo/license-flow/internal/workflow"
)

// WorkflowStore implements workflow.Store on top of the application and
// history repositories.  Each Apply method runs the history append and
// the application update inside a single transaction with the
// rollback-unless-committed pattern, so the dual write is observed as a
// unit or not at all.  Request cancellation before commit rolls the whole
// step back; after commit it has no effect.
type WorkflowStore struct {
	db      *sql.DB
	apps    *ApplicationRepo
	history *HistoryRepo
}

// NewWorkflowStore constructs a WorkflowStore and panics if any
// dependency is nil.
func NewWorkflowStore(db *sql.DB, apps *ApplicationRepo, history *HistoryRepo) *WorkflowStore {
	if db == nil || apps == nil || history == nil {
		panic("nil dependency passed to NewWorkflowStore")
	}
	return &WorkflowStore{db: db, apps: apps, history: history}
}

// GetApplication loads current application state for the engine.
func (s *WorkflowStore) GetApplication(ctx context.Context, id string) (model.Application, error) {
	return s.apps.GetByID(ctx, id)
}

// ApplyStatusChange appends the history entry, then performs the
// conditional status update keyed on the status the engine read.  If the
// condition fails the transaction rolls back, taking the history row with
// it, and workflow.ErrConflict is returned.
func (s *WorkflowStore) ApplyStatusChange(ctx context.Context, id string, from, to workflow.Status, entry model.ActionHistory) (model.Application, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Application{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := s.history.AppendTx(ctx, tx, &entry); err != nil {
		return model.Application{}, err
	}
	if err := s.apps.UpdateStatusTx(ctx, tx, id, from, to); err != nil {
		return model.Application{}, err
	}
	updated, err := s.apps.GetByIDTx(ctx, tx, id)
	if err != nil {
		return model.Application{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Application{}, err
	}
	committed = true
	return updated, nil
}

// ApplyForward appends the history entry and records the forwarding
// comments, leaving the status untouched.
func (s *WorkflowStore) ApplyForward(ctx context.Context, id string, comments string, entry model.ActionHistory) (model.Application, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Application{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := s.history.AppendTx(ctx, tx, &entry); err != nil {
		return model.Application{}, err
	}
	if err := s.apps.UpdateForwardCommentsTx(ctx, tx, id, comments); err != nil {
		return model.Application{}, err
	}
	updated, err := s.apps.GetByIDTx(ctx, tx, id)
	if err != nil {
		return model.Application{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Application{}, err
	}
	committed = true
	return updated, nil
}
