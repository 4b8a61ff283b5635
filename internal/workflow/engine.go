package workflow

import (
	"context"
	"fmt"

	"github.com/iliyamo/license-flow/internal/model"
)

// Actor identifies the authenticated user performing a workflow action.
// It is resolved from the JWT by middleware before reaching the engine;
// the engine trusts it as-is.
type Actor struct {
	ID       uint64
	Username string
	Role     Role
}

// Store is the persistence capability the engine depends on.  The two
// Apply methods must perform the history append and the application
// update as one atomic unit: either both effects commit or neither does.
// ApplyStatusChange must additionally condition the update on the
// application still holding the from status and return ErrConflict when
// it no longer does.
type Store interface {
	// GetApplication loads current application state.  It returns
	// ErrApplicationNotFound when no such application exists.
	GetApplication(ctx context.Context, id string) (model.Application, error)

	// ApplyStatusChange appends the history entry and moves the
	// application from the given status to the new one.  It returns
	// ErrConflict when the application's status no longer matches from.
	ApplyStatusChange(ctx context.Context, id string, from, to Status, entry model.ActionHistory) (model.Application, error)

	// ApplyForward appends the history entry and records the forwarding
	// comments on the application.  Status is left untouched.
	ApplyForward(ctx context.Context, id string, comments string, entry model.ActionHistory) (model.Application, error)
}

// Notifier receives accepted actions after they commit.  Implementations
// must not fail the request: errors are the notifier's problem.  A nil
// notifier disables notification.
type Notifier interface {
	ActionAccepted(ctx context.Context, app model.Application, entry model.ActionHistory)
}

// Engine orchestrates the two critical paths of the system: status
// changes and forwards.  It validates the actor's blanket permission,
// then the business rule (transition table or hierarchy), and only then
// lets the store mutate state.  Rejected actions leave application and
// history state untouched because no store call is made before all
// checks pass.  The engine holds no mutable state between calls.
type Engine struct {
	store    Store
	notifier Notifier
}

// NewEngine constructs an Engine.  The store must be non-nil; the
// notifier may be nil.
func NewEngine(store Store, notifier Notifier) *Engine {
	if store == nil {
		panic("nil store passed to NewEngine")
	}
	return &Engine{store: store, notifier: notifier}
}

// ChangeStatus moves an application to a new status on behalf of the
// actor.  The check order is fixed: blanket role permission, existence,
// transition legality, then the atomic dual-write.  The comment defaults
// to a note naming the actor when the caller supplies none.
func (e *Engine) ChangeStatus(ctx context.Context, actor Actor, applicationID string, next Status, comment string) (model.Application, error) {
	if !CanChangeStatus(actor.Role) {
		return model.Application{}, ErrForbidden
	}
	app, err := e.store.GetApplication(ctx, applicationID)
	if err != nil {
		return model.Application{}, err
	}
	current := Status(app.Status)
	if !CanTransition(current, next) {
		return model.Application{}, ErrInvalidTransition
	}
	if comment == "" {
		comment = "Status changed by " + actor.Username
	}
	entry := model.ActionHistory{
		ApplicationID: applicationID,
		ActorID:       actor.ID,
		Action:        fmt.Sprintf("STATUS_CHANGE:%s->%s", current, next),
		Comments:      comment,
	}
	updated, err := e.store.ApplyStatusChange(ctx, applicationID, current, next, entry)
	if err != nil {
		return model.Application{}, err
	}
	if e.notifier != nil {
		e.notifier.ActionAccepted(ctx, updated, entry)
	}
	return updated, nil
}

// Forward routes an application to another rank on behalf of the actor.
// Forwarding records history and the forwarding comments but does not
// advance the status; a separate ChangeStatus call does that.
func (e *Engine) Forward(ctx context.Context, actor Actor, applicationID string, target Role, comments string) (model.Application, error) {
	if !CanForward(actor.Role) {
		return model.Application{}, ErrForbidden
	}
	if _, err := e.store.GetApplication(ctx, applicationID); err != nil {
		return model.Application{}, err
	}
	if !CanForwardTo(actor.Role, target) {
		return model.Application{}, ErrInvalidForwardTarget
	}
	entry := model.ActionHistory{
		ApplicationID: applicationID,
		ActorID:       actor.ID,
		Action:        "FORWARDED_TO:" + string(target),
		Comments:      comments,
	}
	updated, err := e.store.ApplyForward(ctx, applicationID, comments, entry)
	if err != nil {
		return model.Application{}, err
	}
	if e.notifier != nil {
		e.notifier.ActionAccepted(ctx, updated, entry)
	}
	return updated, nil
}
