package model

import "time"

// ActionHistory is one row of the append-only `action_history` table.
// Every accepted workflow action (status change or forward) writes
// exactly one entry; rejected actions write none.  Rows are never
// updated or deleted, and the per-application order is created_at
// ascending with the auto-increment id breaking ties.
//
// Fields:
//
//	ID            – primary key identifier.
//	ApplicationID – owning application (ALM-... id).
//	ActorID       – user who performed the action.
//	TargetUserID  – optional user the action was directed at.
//	Action        – descriptor tag, e.g. "STATUS_CHANGE:FRESH->FORWARDED"
//	                or "FORWARDED_TO:ACP".
//	Comments      – free-text comment recorded with the action.
//	CreatedAt     – timestamp of the action.
type ActionHistory struct {
	ID            uint64    `json:"id"`                       // action_history.id
	ApplicationID string    `json:"application_id"`           // action_history.application_id
	ActorID       uint64    `json:"actor_id"`                 // action_history.actor_id
	TargetUserID  *uint64   `json:"target_user_id,omitempty"` // action_history.target_user_id (nullable)
	Action        string    `json:"action"`                   // action_history.action
	Comments      string    `json:"comments"`                 // action_history.comments
	CreatedAt     time.Time `json:"created_at"`               // action_history.created_at
}
