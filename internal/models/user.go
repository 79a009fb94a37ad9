package models

import (
	"database/sql"
	"time"
)

// AuditFields are the timestamp columns shared by all tables.
type AuditFields struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// User is a row of the users table.
type User struct {
	UserID                string         `db:"user_id"`
	Email                 string         `db:"email"`
	Name                  string         `db:"name"`
	Company               sql.NullString `db:"company"`
	Language              string         `db:"language"`
	PasswordHash          sql.NullString `db:"password_hash"`
	EmailIsVerified       bool           `db:"email_is_verified"`
	ImageURL              sql.NullString `db:"image_url"`
	Source                string         `db:"source"`
	SourceID              sql.NullString `db:"source_id"`
	EmailVerificationCode string         `db:"email_verification_code"`
	AuditFields
}
