package model

import "time"

// FlowMap is a per-user forwarding map: the explicit set of users the
// current user may hand an application to.  It is distinct from the rank
// hierarchy, which constrains role-to-role forwarding; a flow map narrows
// that down to named people (e.g. a supervisor's two subordinates).  The
// simple model keeps at most one map per current user.
//
// Fields:
//
//	ID            – primary key identifier.
//	CurrentUserID – owner of the map.
//	NextUserIDs   – ordered ids of the permitted recipients.
//	CreatedAt     – timestamp of creation.
//	UpdatedAt     – timestamp of last update.
type FlowMap struct {
	ID            uint64    `json:"id"`              // flow_maps.id
	CurrentUserID uint64    `json:"current_user_id"` // flow_maps.current_user_id
	NextUserIDs   []uint64  `json:"next_user_ids"`   // flow_map_next_users.next_user_id, insertion order
	CreatedAt     time.Time `json:"created_at"`      // flow_maps.created_at
	UpdatedAt     time.Time `json:"updated_at"`      // flow_maps.updated_at
}

// FlowMapNextUser is one row of the `flow_map_next_users` join table,
// linking a flow map to a permitted recipient.
type FlowMapNextUser struct {
	ID         uint64    // flow_map_next_users.id
	FlowMapID  uint64    // flow_map_next_users.flow_map_id
	NextUserID uint64    // flow_map_next_users.next_user_id
	CreatedAt  time.Time // flow_map_next_users.created_at
}
