package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/license-flow/internal/model"
	"github.com/iliyamo/license-flow/internal/utils"
)

// UserRepo provides persistence for officer accounts.
type UserRepo struct{ DB *sql.DB }

// NewUserRepo returns a new UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// UserWithRole joins a user row with its role's code and name, which the
// auth layer needs when issuing tokens and the user listing returns.
type UserWithRole struct {
	model.User
	RoleCode string
	RoleName string
}

// Create inserts a user with a bcrypt-hashed password and returns its ID.
// The username is normalized to lowercase before insertion.
func (r *UserRepo) Create(ctx context.Context, username, officeName string, email, phoneNo *string, password string, roleID uint8, cost int) (uint64, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, office_name, email, phone_no, password_hash, role_id) VALUES (?,?,?,?,?,?)",
		username, officeName, email, phoneNo, hash, roleID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

const userJoinColumns = `u.id, u.username, u.office_name, u.email, u.phone_no, u.password_hash,
	u.role_id, u.created_at, u.updated_at, r.code, r.name`

func scanUserWithRole(row rowScanner) (UserWithRole, error) {
	var u UserWithRole
	var email, phone sql.NullString
	err := row.Scan(&u.ID, &u.Username, &u.OfficeName, &email, &phone, &u.PasswordHash,
		&u.RoleID, &u.CreatedAt, &u.UpdatedAt, &u.RoleCode, &u.RoleName)
	if err != nil {
		return UserWithRole{}, err
	}
	u.Email = strPtr(email)
	u.PhoneNo = strPtr(phone)
	return u, nil
}

// GetByUsername fetches a user and their role by normalized username.
// The login handler relies on sql.ErrNoRows to answer invalid
// credentials without revealing whether the username exists.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (UserWithRole, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	const q = `SELECT ` + userJoinColumns + ` FROM users u JOIN roles r ON r.id = u.role_id
	           WHERE u.username=? LIMIT 1`
	return scanUserWithRole(r.DB.QueryRowContext(ctx, q, username))
}

// GetByID fetches a user and their role by id.  Returns ErrUserNotFound
// when no such user exists.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (UserWithRole, error) {
	const q = `SELECT ` + userJoinColumns + ` FROM users u JOIN roles r ON r.id = u.role_id
	           WHERE u.id=? LIMIT 1`
	u, err := scanUserWithRole(r.DB.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return UserWithRole{}, ErrUserNotFound
	}
	return u, err
}

// List returns all users with their roles, optionally restricted to one
// role name, ordered by username.
func (r *UserRepo) List(ctx context.Context, roleName string) ([]UserWithRole, error) {
	q := `SELECT ` + userJoinColumns + ` FROM users u JOIN roles r ON r.id = u.role_id`
	var args []interface{}
	if roleName != "" {
		q += " WHERE r.name = ?"
		args = append(args, roleName)
	}
	q += " ORDER BY u.username"
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := make([]UserWithRole, 0)
	for rows.Next() {
		u, err := scanUserWithRole(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

// UserUpdate carries the optional fields of a partial user update.  Nil
// pointers leave the column untouched.
type UserUpdate struct {
	OfficeName *string
	Email      *string
	PhoneNo    *string
	RoleID     *uint8
	Password   *string // plain; hashed here before storage
}

// Update applies a partial update to a user.  It returns ErrUserNotFound
// when the id does not exist and is a no-op when every field is nil.
func (r *UserRepo) Update(ctx context.Context, id uint64, upd UserUpdate, bcryptCost int) error {
	var sets []string
	var args []interface{}
	if upd.OfficeName != nil {
		sets = append(sets, "office_name=?")
		args = append(args, *upd.OfficeName)
	}
	if upd.Email != nil {
		sets = append(sets, "email=?")
		args = append(args, *upd.Email)
	}
	if upd.PhoneNo != nil {
		sets = append(sets, "phone_no=?")
		args = append(args, *upd.PhoneNo)
	}
	if upd.RoleID != nil {
		sets = append(sets, "role_id=?")
		args = append(args, *upd.RoleID)
	}
	if upd.Password != nil {
		hash, err := utils.HashPassword(*upd.Password, bcryptCost)
		if err != nil {
			return err
		}
		sets = append(sets, "password_hash=?")
		args = append(args, hash)
	}
	if len(sets) == 0 {
		return nil
	}
	// Existence is checked separately: an UPDATE that changes nothing also
	// reports zero affected rows on MySQL.
	var exists int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE id=?", id).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return ErrUserNotFound
	}
	args = append(args, id)
	_, err := r.DB.ExecContext(ctx, "UPDATE users SET "+strings.Join(sets, ",")+" WHERE id=?", args...)
	return err
}

// Delete removes a user.  Returns ErrUserNotFound when no row is affected.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Permissions returns the permission rows granted to the given role,
// ordered by grant time.  Used when assembling the profile response.
func (r *UserRepo) Permissions(ctx context.Context, roleID uint8) ([]model.Permission, error) {
	const q = `SELECT p.id, p.code, p.name, p.category, p.created_at, p.updated_at
	           FROM role_permissions rp JOIN permissions p ON p.id = rp.permission_id
	           WHERE rp.role_id=? ORDER BY rp.created_at, rp.id`
	rows, err := r.DB.QueryContext(ctx, q, roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	perms := make([]model.Permission, 0)
	for rows.Next() {
		var p model.Permission
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.Category, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return perms, nil
}
