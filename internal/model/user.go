package model

import "time"

// User represents an officer account as stored in the `users` table.
// Passwords are stored as bcrypt hashes and are never serialized into
// responses; handlers define separate response types.  Each user
// references exactly one role through RoleID.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Username     – unique login name.
//	OfficeName   – station or office the user belongs to.
//	Email        – optional contact email.
//	PhoneNo      – optional contact phone number.
//	PasswordHash – bcrypt hashed password.
//	RoleID       – foreign key into the roles table.
//	CreatedAt    – timestamp of creation.
//	UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	OfficeName   string    // users.office_name
	Email        *string   // users.email (nullable)
	PhoneNo      *string   // users.phone_no (nullable)
	PasswordHash string    // users.password_hash
	RoleID       uint8     // users.role_id (references roles.id)
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// Role represents a row in the `roles` table.  The code is the rank
// abbreviation used throughout the workflow (ZS, SHO, ACP, DCP, CP);
// the name is the human-readable title.
//
// Fields:
//
//	ID        – numeric identifier of the role.
//	Code      – unique rank code.
//	Name      – display name (e.g. "Station House Officer").
//	IsActive  – whether the role may be assigned to users.
//	CreatedAt – timestamp of creation.
//	UpdatedAt – timestamp of last update.
type Role struct {
	ID        uint8     `json:"id"`         // roles.id
	Code      string    `json:"code"`       // roles.code
	Name      string    `json:"name"`       // roles.name
	IsActive  bool      `json:"is_active"`  // roles.is_active
	CreatedAt time.Time `json:"created_at"` // roles.created_at
	UpdatedAt time.Time `json:"updated_at"` // roles.updated_at
}

// Permission represents a row in the `permissions` table.  Category is a
// free-text grouping label such as "Action".
type Permission struct {
	ID        uint64    `json:"id"`         // permissions.id
	Code      string    `json:"code"`       // permissions.code
	Name      string    `json:"name"`       // permissions.name
	Category  string    `json:"category"`   // permissions.category
	CreatedAt time.Time `json:"created_at"` // permissions.created_at
	UpdatedAt time.Time `json:"updated_at"` // permissions.updated_at
}

// RolePermission is the explicit join between roles and permissions.
// Each grant is timestamped independently of the role and permission it
// connects.
type RolePermission struct {
	ID           uint64    // role_permissions.id
	RoleID       uint8     // role_permissions.role_id
	PermissionID uint64    // role_permissions.permission_id
	CreatedAt    time.Time // role_permissions.created_at
	UpdatedAt    time.Time // role_permissions.updated_at
}
