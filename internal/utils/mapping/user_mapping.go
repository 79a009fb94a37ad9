package mapping

import (
	"database/sql"

	"github.com/SscSPs/citizen_accounts/internal/core/domain"
	"github.com/SscSPs/citizen_accounts/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:                d.UserID,
		Email:                 d.Email,
		Name:                  d.Name,
		Company:               toNullString(d.Company),
		Language:              d.Language,
		PasswordHash:          toNullString(d.PasswordHash),
		EmailIsVerified:       d.EmailIsVerified,
		ImageURL:              toNullString(d.ImageURL),
		Source:                string(d.Source),
		SourceID:              toNullString(d.SourceID),
		EmailVerificationCode: d.EmailVerificationCode,
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:                m.UserID,
		Email:                 m.Email,
		Name:                  m.Name,
		Company:               fromNullString(m.Company),
		Language:              m.Language,
		PasswordHash:          fromNullString(m.PasswordHash),
		EmailIsVerified:       m.EmailIsVerified,
		ImageURL:              fromNullString(m.ImageURL),
		Source:                domain.AuthSource(m.Source),
		SourceID:              fromNullString(m.SourceID),
		EmailVerificationCode: m.EmailVerificationCode,
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
