package domain

import "time"

// UserConsent records that a user agreed to share data with a partner.
type UserConsent struct {
	UserID    string     `json:"userId"`
	PartnerID string     `json:"partnerId"`
	DeletedAt *time.Time `json:"-"` // logical delete
	AuditFields
}

// ConsentListItem is one partner a user currently consents to.
// Timestamps are the partner's own.
type ConsentListItem struct {
	PartnerID string     `json:"id"`
	Website   *string    `json:"website"`
	CreatedAt *time.Time `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

// GrantResult tells whether a grant inserted a new consent.
type GrantResult int

const (
	ConsentGranted GrantResult = iota + 1
	ConsentAlreadyGranted
)

func (r GrantResult) String() string {
	switch r {
	case ConsentGranted:
		return "granted"
	case ConsentAlreadyGranted:
		return "already_granted"
	default:
		return "unknown"
	}
}
