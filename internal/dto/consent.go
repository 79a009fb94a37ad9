package dto

import "github.com/SscSPs/citizen_accounts/internal/core/domain"

// GrantConsentRequest names the partner the user consents to.
type GrantConsentRequest struct {
	PartnerID string `json:"partnerId" binding:"required"`
}

// GrantConsentResponse reports whether the grant created a consent.
type GrantConsentResponse struct {
	Result string `json:"result"`
}

// ListConsentsResponse wraps the partners a user consents to.
type ListConsentsResponse struct {
	Count int                      `json:"count"`
	Rows  []domain.ConsentListItem `json:"rows"`
}

func ToListConsentsResponse(items []domain.ConsentListItem) ListConsentsResponse {
	if items == nil {
		items = []domain.ConsentListItem{}
	}
	return ListConsentsResponse{
		Count: len(items),
		Rows:  items,
	}
}
