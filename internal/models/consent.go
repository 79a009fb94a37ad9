package models

import (
	"database/sql"
	"time"
)

// UserConsent is a row of the user_consents table.
type UserConsent struct {
	UserID    string     `db:"user_id"`
	PartnerID string     `db:"partner_id"`
	DeletedAt *time.Time `db:"deleted_at"`
	AuditFields
}

// ConsentPartner is a user_consents row joined to its partner.
type ConsentPartner struct {
	PartnerID string         `db:"partner_id"`
	Website   sql.NullString `db:"website"`
	CreatedAt sql.NullTime   `db:"created_at"`
	UpdatedAt sql.NullTime   `db:"updated_at"`
}
