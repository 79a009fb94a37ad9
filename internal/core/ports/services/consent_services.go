package services

import (
	"context"

	"github.com/SscSPs/citizen_accounts/internal/core/domain"
)

// ConsentLedgerSvc records which partners a user shares data with.
type ConsentLedgerSvc interface {
	Grant(ctx context.Context, userID, partnerID string) (domain.GrantResult, error)
	Revoke(ctx context.Context, userID, partnerID string) error
	List(ctx context.Context, userID string) ([]domain.ConsentListItem, error)
}
