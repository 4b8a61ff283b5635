package model

import "time"

// Application represents a license application as stored in the
// `applications` table.  The primary key is the generated business
// identifier (ALM-YYYYMMDD-NNNNN), not an auto-increment.  Applications
// are never deleted; once created they only move through the status
// lifecycle, so the row doubles as the head of its audit trail.
//
// Optional applicant fields are pointers so that absent values survive a
// round trip through JSON and the database as NULL rather than zero
// values.
type Application struct {
	ID                      string     `json:"id"`                                // applications.id (ALM-...)
	ApplicantName           string     `json:"applicant_name"`                    // applications.applicant_name
	ApplicantMobile         *string    `json:"applicant_mobile,omitempty"`        // applications.applicant_mobile (nullable)
	ApplicantEmail          *string    `json:"applicant_email,omitempty"`         // applications.applicant_email (nullable)
	FatherName              *string    `json:"father_name,omitempty"`             // applications.father_name (nullable)
	Gender                  *string    `json:"gender,omitempty"`                  // applications.gender (nullable)
	DOB                     *time.Time `json:"dob,omitempty"`                     // applications.dob (nullable)
	Address                 *string    `json:"address,omitempty"`                 // applications.address (nullable)
	ApplicationType         *string    `json:"application_type,omitempty"`        // applications.application_type (nullable)
	WeaponType              *string    `json:"weapon_type,omitempty"`             // applications.weapon_type (nullable)
	WeaponReason            *string    `json:"weapon_reason,omitempty"`           // applications.weapon_reason (nullable)
	LicenseType             *string    `json:"license_type,omitempty"`            // applications.license_type (nullable)
	LicenseValidity         *time.Time `json:"license_validity,omitempty"`        // applications.license_validity (nullable)
	IsPreviouslyHeldLicense bool       `json:"is_previously_held_license"`        // applications.is_previously_held_license
	PreviousLicenseNumber   *string    `json:"previous_license_number,omitempty"` // applications.previous_license_number (nullable)
	HasCriminalRecord       bool       `json:"has_criminal_record"`               // applications.has_criminal_record
	CriminalRecordDetails   *string    `json:"criminal_record_details,omitempty"` // applications.criminal_record_details (nullable)
	ForwardComments         string     `json:"forward_comments"`                  // applications.forward_comments
	Status                  string     `json:"status"`                            // applications.status (workflow.Status value)
	CreatedAt               time.Time  `json:"created_at"`                        // applications.created_at
	UpdatedAt               time.Time  `json:"updated_at"`                        // applications.updated_at
}
