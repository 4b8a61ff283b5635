// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios.  Workflow
// specific sentinels (not found, conflict) live in the workflow package
// because the engine's store contract is expressed in those terms.
package repository

import "errors"

// ErrDuplicateID is returned when an application insert collides with an
// existing generated identifier.  The caller should draw a fresh id and
// retry once before treating the insert as failed.
var ErrDuplicateID = errors.New("application id already exists")

// ErrUsernameExists is returned when creating a user with a username that
// is already taken.  Handlers should translate this into HTTP 409.
var ErrUsernameExists = errors.New("username already exists")

// ErrUserNotFound is returned when a referenced user does not exist,
// either as the subject of a lookup or as a flow-map recipient.
var ErrUserNotFound = errors.New("user not found")

// ErrRoleNotFound is returned when a role lookup or update targets a
// role id that does not exist.
var ErrRoleNotFound = errors.New("role not found")

// ErrPermissionNotFound is returned when a permission update targets a
// permission id that does not exist.
var ErrPermissionNotFound = errors.New("permission not found")
