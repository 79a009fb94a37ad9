package mapping

import (
	"encoding/json"
	"time"

	"github.com/SscSPs/citizen_accounts/internal/core/domain"
	"github.com/SscSPs/citizen_accounts/internal/models"
)

// ToModelConnection converts a domain UserConnection to a model UserConnection
func ToModelConnection(d domain.UserConnection) models.UserConnection {
	return models.UserConnection{
		UserID:           d.UserID,
		ConnectionID:     string(d.ConnectionID),
		ConnectionUserID: d.ConnectionUserID,
		ConnectionData:   []byte(d.ConnectionData),
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainConnection converts a model UserConnection to a domain UserConnection
func ToDomainConnection(m models.UserConnection) domain.UserConnection {
	return domain.UserConnection{
		UserID:           m.UserID,
		ConnectionID:     domain.ConnectionID(m.ConnectionID),
		ConnectionUserID: m.ConnectionUserID,
		ConnectionData:   json.RawMessage(m.ConnectionData),
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelConsent converts a domain UserConsent to a model UserConsent
func ToModelConsent(d domain.UserConsent) models.UserConsent {
	return models.UserConsent{
		UserID:      d.UserID,
		PartnerID:   d.PartnerID,
		DeletedAt:   d.DeletedAt,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainConsentListItem converts a joined consent/partner row.
func ToDomainConsentListItem(m models.ConsentPartner) domain.ConsentListItem {
	item := domain.ConsentListItem{
		PartnerID: m.PartnerID,
		Website:   fromNullString(m.Website),
	}
	if m.CreatedAt.Valid {
		t := m.CreatedAt.Time
		item.CreatedAt = &t
	}
	if m.UpdatedAt.Valid {
		t := m.UpdatedAt.Time
		item.UpdatedAt = &t
	}
	return item
}

// ToModelActivity encodes an activity for storage.
func ToModelActivity(d domain.Activity) (models.Activity, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return models.Activity{}, err
	}
	createdAt := d.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	return models.Activity{
		ActivityID: d.ActivityID,
		ActorType:  d.Actor.Type,
		ActorID:    d.Actor.ID,
		Data:       data,
		CreatedAt:  createdAt,
	}, nil
}
