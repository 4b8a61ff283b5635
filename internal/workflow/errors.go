// Package workflow implements the application routing engine: the status
// state machine, the rank forwarding hierarchy and the orchestration that
// ties them to persistent application state.  This file defines the
// sentinel errors the engine returns.  Handlers translate them into HTTP
// status codes; the values themselves carry no transport detail.
package workflow

import "errors"

// ErrForbidden is returned when the acting rank lacks blanket permission
// for the requested operation type.  Handlers map it to HTTP 403.
var ErrForbidden = errors.New("role not permitted for this operation")

// ErrApplicationNotFound is returned when the referenced application does
// not exist.  Handlers map it to HTTP 404.
var ErrApplicationNotFound = errors.New("application not found")

// ErrInvalidTransition is returned when the requested status is not
// reachable from the application's current status.  Handlers map it to
// HTTP 400.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrInvalidForwardTarget is returned when the target rank is outside the
// acting rank's forwarding set.  Handlers map it to HTTP 400.
var ErrInvalidForwardTarget = errors.New("invalid forwarding target for role")

// ErrConflict is returned when a concurrent update changed the
// application between the engine's read and its conditional write.  The
// caller may re-fetch and retry; the engine never retries on its own.
// Handlers map it to HTTP 409.
var ErrConflict = errors.New("application was modified concurrently")
