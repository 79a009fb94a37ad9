package repositories

import (
	"context"

	"github.com/SscSPs/citizen_accounts/internal/core/domain"
)

// ConsentRepository persists user consents to partners.
type ConsentRepository interface {
	// InsertConsentIfAbsent inserts the consent, or revives a logically deleted one.
	// inserted is false when an active consent already existed.
	// An unknown partner yields apperrors.ErrNotFound.
	InsertConsentIfAbsent(ctx context.Context, consent domain.UserConsent) (inserted bool, err error)

	// DeleteConsent hard deletes at most one consent and returns the number of rows removed.
	DeleteConsent(ctx context.Context, userID, partnerID string) (int64, error)

	// ListConsents returns the partners the user currently consents to, in store order.
	ListConsents(ctx context.Context, userID string) ([]domain.ConsentListItem, error)
}
