package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/license-flow/internal/model"
	"github.com/iliyamo/license-flow/internal/workflow"
)

// ApplicationRepo provides persistence for license applications.  All
// timestamp fields are assumed to be stored in UTC.  Applications are
// never deleted; the only mutations are the status update and the
// forwarding comment update, both driven by the workflow store.
type ApplicationRepo struct {
	db *sql.DB
}

// NewApplicationRepo returns a new ApplicationRepo bound to the given database.
func NewApplicationRepo(db *sql.DB) *ApplicationRepo { return &ApplicationRepo{db: db} }

// DB exposes the underlying handle so the workflow store can open
// transactions spanning applications and action history.
func (r *ApplicationRepo) DB() *sql.DB { return r.db }

// appColumns is the canonical column list shared by every SELECT in this
// file so scanApplication stays in sync with one place.
const appColumns = `id, applicant_name, applicant_mobile, applicant_email, father_name, gender, dob,
	address, application_type, weapon_type, weapon_reason, license_type, license_validity,
	is_previously_held_license, previous_license_number, has_criminal_record, criminal_record_details,
	forward_comments, status, created_at, updated_at`

// rowScanner matches both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanApplication(row rowScanner) (model.Application, error) {
	var a model.Application
	var mobile, email, father, gender, address sql.NullString
	var appType, weaponType, weaponReason, licType, prevNo, crimDetails sql.NullString
	var dob, validity sql.NullTime
	err := row.Scan(
		&a.ID, &a.ApplicantName, &mobile, &email, &father, &gender, &dob,
		&address, &appType, &weaponType, &weaponReason, &licType, &validity,
		&a.IsPreviouslyHeldLicense, &prevNo, &a.HasCriminalRecord, &crimDetails,
		&a.ForwardComments, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return model.Application{}, err
	}
	a.ApplicantMobile = strPtr(mobile)
	a.ApplicantEmail = strPtr(email)
	a.FatherName = strPtr(father)
	a.Gender = strPtr(gender)
	a.Address = strPtr(address)
	a.ApplicationType = strPtr(appType)
	a.WeaponType = strPtr(weaponType)
	a.WeaponReason = strPtr(weaponReason)
	a.LicenseType = strPtr(licType)
	a.PreviousLicenseNumber = strPtr(prevNo)
	a.CriminalRecordDetails = strPtr(crimDetails)
	a.DOB = timePtr(dob)
	a.LicenseValidity = timePtr(validity)
	return a, nil
}

func strPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}

// Create inserts a new application under its pre-generated id and reads
// the row back to populate database-assigned timestamps.  A primary key
// collision on the generated id is reported as ErrDuplicateID so the
// caller can retry with a fresh one.
func (r *ApplicationRepo) Create(ctx context.Context, a *model.Application) error {
	const q = `INSERT INTO applications
		(id, applicant_name, applicant_mobile, applicant_email, father_name, gender, dob,
		 address, application_type, weapon_type, weapon_reason, license_type, license_validity,
		 is_previously_held_license, previous_license_number, has_criminal_record, criminal_record_details,
		 forward_comments, status)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`
	_, err := r.db.ExecContext(ctx, q,
		a.ID, a.ApplicantName, a.ApplicantMobile, a.ApplicantEmail, a.FatherName, a.Gender, a.DOB,
		a.Address, a.ApplicationType, a.WeaponType, a.WeaponReason, a.LicenseType, a.LicenseValidity,
		a.IsPreviouslyHeldLicense, a.PreviousLicenseNumber, a.HasCriminalRecord, a.CriminalRecordDetails,
		a.ForwardComments, a.Status,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrDuplicateID
		}
		return err
	}
	created, err := r.GetByID(ctx, a.ID)
	if err != nil {
		return err
	}
	*a = created
	return nil
}

// GetByID fetches one application.  It returns
// workflow.ErrApplicationNotFound when no row exists so the engine and
// the handlers share a single sentinel.
func (r *ApplicationRepo) GetByID(ctx context.Context, id string) (model.Application, error) {
	const q = `SELECT ` + appColumns + ` FROM applications WHERE id=? LIMIT 1`
	a, err := scanApplication(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return model.Application{}, workflow.ErrApplicationNotFound
	}
	return a, err
}

// ApplicationFilter carries the optional list filters.  Zero values mean
// "no constraint".  Page is 1-based.
type ApplicationFilter struct {
	Search    string     // substring match over applicant name or email
	Status    string     // exact status match
	StartDate *time.Time // created_at lower bound (inclusive)
	EndDate   *time.Time // created_at upper bound (inclusive)
	Page      int
	PageSize  int
}

// List returns applications matching the filter, newest first.  The WHERE
// clause is assembled dynamically from the populated filter fields; all
// values travel as placeholders.
func (r *ApplicationRepo) List(ctx context.Context, f ApplicationFilter) ([]model.Application, error) {
	var conds []string
	var args []interface{}
	if f.Search != "" {
		conds = append(conds, "(applicant_name LIKE ? OR applicant_email LIKE ?)")
		like := "%" + f.Search + "%"
		args = append(args, like, like)
	}
	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, f.Status)
	}
	if f.StartDate != nil {
		conds = append(conds, "created_at >= ?")
		args = append(args, f.StartDate.UTC())
	}
	if f.EndDate != nil {
		conds = append(conds, "created_at <= ?")
		args = append(args, f.EndDate.UTC())
	}
	q := `SELECT ` + appColumns + ` FROM applications`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY created_at DESC"
	page := f.Page
	if page < 1 {
		page = 1
	}
	size := f.PageSize
	if size < 1 {
		size = 10
	}
	q += " LIMIT ? OFFSET ?"
	args = append(args, size, (page-1)*size)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	apps := make([]model.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return apps, nil
}

// UpdateStatusTx performs the conditional status update inside the given
// transaction.  The WHERE clause keys on the previously read status; the
// transition table has no self-loops, so zero affected rows always means
// another writer moved the application first and the update reports
// workflow.ErrConflict.
func (r *ApplicationRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id string, from, to workflow.Status) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE applications SET status=? WHERE id=? AND status=?",
		string(to), id, string(from))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return workflow.ErrConflict
	}
	return nil
}

// UpdateForwardCommentsTx records forwarding comments inside the given
// transaction.  RowsAffected is not checked here: MySQL reports zero
// affected rows when the new value equals the old one, and existence was
// already established by the engine's load.
func (r *ApplicationRepo) UpdateForwardCommentsTx(ctx context.Context, tx *sql.Tx, id string, comments string) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE applications SET forward_comments=? WHERE id=?",
		comments, id)
	return err
}

// GetByIDTx is GetByID within a transaction, used to return the committed
// row from the workflow store's atomic operations.
func (r *ApplicationRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id string) (model.Application, error) {
	const q = `SELECT ` + appColumns + ` FROM applications WHERE id=? LIMIT 1`
	a, err := scanApplication(tx.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return model.Application{}, workflow.ErrApplicationNotFound
	}
	return a, err
}
