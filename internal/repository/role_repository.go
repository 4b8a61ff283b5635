package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/license-flow/internal/model"
)

// RoleRepo provides CRUD for roles and permissions.  These are plain
// administrative records; the workflow's rank hierarchy is static and
// lives in the workflow package, not here.
type RoleRepo struct{ DB *sql.DB }

// NewRoleRepo returns a new RoleRepo bound to the given database.
func NewRoleRepo(db *sql.DB) *RoleRepo { return &RoleRepo{DB: db} }

// CreateRole inserts a role and reads it back with its timestamps.
func (r *RoleRepo) CreateRole(ctx context.Context, code, name string, isActive bool) (model.Role, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO roles (code, name, is_active) VALUES (?,?,?)", code, name, isActive)
	if err != nil {
		return model.Role{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Role{}, err
	}
	return r.getRole(ctx, uint8(id))
}

func (r *RoleRepo) getRole(ctx context.Context, id uint8) (model.Role, error) {
	var role model.Role
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, code, name, is_active, created_at, updated_at FROM roles WHERE id=? LIMIT 1", id).
		Scan(&role.ID, &role.Code, &role.Name, &role.IsActive, &role.CreatedAt, &role.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Role{}, ErrRoleNotFound
	}
	return role, err
}

// UpdateRole applies a partial update to a role's name and active flag.
func (r *RoleRepo) UpdateRole(ctx context.Context, id uint8, name *string, isActive *bool) (model.Role, error) {
	var sets []string
	var args []interface{}
	if name != nil {
		sets = append(sets, "name=?")
		args = append(args, *name)
	}
	if isActive != nil {
		sets = append(sets, "is_active=?")
		args = append(args, *isActive)
	}
	if len(sets) > 0 {
		args = append(args, id)
		if _, err := r.DB.ExecContext(ctx, "UPDATE roles SET "+strings.Join(sets, ",")+" WHERE id=?", args...); err != nil {
			return model.Role{}, err
		}
	}
	return r.getRole(ctx, id)
}

// ListOrdered returns all roles sorted by display name, the ordering the
// hierarchy listing endpoint exposes.
func (r *RoleRepo) ListOrdered(ctx context.Context) ([]model.Role, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, code, name, is_active, created_at, updated_at FROM roles ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	roles := make([]model.Role, 0)
	for rows.Next() {
		var role model.Role
		if err := rows.Scan(&role.ID, &role.Code, &role.Name, &role.IsActive, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return roles, nil
}

// RoleWithPermissions is a role together with the permissions granted to
// it, returned by the role actions endpoint.
type RoleWithPermissions struct {
	model.Role
	Permissions []model.Permission `json:"permissions"`
}

// GetWithPermissions loads a role and its granted permissions.  Returns
// ErrRoleNotFound when the role does not exist.
func (r *RoleRepo) GetWithPermissions(ctx context.Context, id uint8) (RoleWithPermissions, error) {
	role, err := r.getRole(ctx, id)
	if err != nil {
		return RoleWithPermissions{}, err
	}
	const q = `SELECT p.id, p.code, p.name, p.category, p.created_at, p.updated_at
	           FROM role_permissions rp JOIN permissions p ON p.id = rp.permission_id
	           WHERE rp.role_id=? ORDER BY rp.created_at, rp.id`
	rows, err := r.DB.QueryContext(ctx, q, id)
	if err != nil {
		return RoleWithPermissions{}, err
	}
	defer rows.Close()
	out := RoleWithPermissions{Role: role, Permissions: make([]model.Permission, 0)}
	for rows.Next() {
		var p model.Permission
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.Category, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return RoleWithPermissions{}, err
		}
		out.Permissions = append(out.Permissions, p)
	}
	if err := rows.Err(); err != nil {
		return RoleWithPermissions{}, err
	}
	return out, nil
}

// CreatePermission inserts a permission and reads it back.
func (r *RoleRepo) CreatePermission(ctx context.Context, code, name, category string) (model.Permission, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO permissions (code, name, category) VALUES (?,?,?)", code, name, category)
	if err != nil {
		return model.Permission{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Permission{}, err
	}
	return r.getPermission(ctx, uint64(id))
}

func (r *RoleRepo) getPermission(ctx context.Context, id uint64) (model.Permission, error) {
	var p model.Permission
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, code, name, category, created_at, updated_at FROM permissions WHERE id=? LIMIT 1", id).
		Scan(&p.ID, &p.Code, &p.Name, &p.Category, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Permission{}, ErrPermissionNotFound
	}
	return p, err
}

// UpdatePermission applies a partial update to a permission's name and
// category.
func (r *RoleRepo) UpdatePermission(ctx context.Context, id uint64, name, category *string) (model.Permission, error) {
	var sets []string
	var args []interface{}
	if name != nil {
		sets = append(sets, "name=?")
		args = append(args, *name)
	}
	if category != nil {
		sets = append(sets, "category=?")
		args = append(args, *category)
	}
	if len(sets) > 0 {
		args = append(args, id)
		if _, err := r.DB.ExecContext(ctx, "UPDATE permissions SET "+strings.Join(sets, ",")+" WHERE id=?", args...); err != nil {
			return model.Permission{}, err
		}
	}
	return r.getPermission(ctx, id)
}
