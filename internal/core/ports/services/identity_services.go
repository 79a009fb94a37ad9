package services

import (
	"context"

	"github.com/SscSPs/citizen_accounts/internal/core/domain"
)

// IdentityResolverSvc maps a provider identity to exactly one local user.
type IdentityResolverSvc interface {
	Resolve(ctx context.Context, in domain.ResolverInput) (*domain.Resolution, error)
}
