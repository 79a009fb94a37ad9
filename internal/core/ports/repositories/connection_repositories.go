package repositories

import (
	"context"

	"github.com/SscSPs/citizen_accounts/internal/core/domain"
)

// ConnectionRepository persists provider identities linked to users.
type ConnectionRepository interface {
	// FindConnectionWithUser looks up a connection by provider and subject id and returns
	// it together with its user. apperrors.ErrNotFound when absent.
	FindConnectionWithUser(ctx context.Context, connectionID domain.ConnectionID, connectionUserID string) (*domain.UserConnection, *domain.User, error)

	// CreateConnection inserts a connection. A concurrent insert of the same
	// (connectionID, connectionUserID) yields apperrors.ErrConflict.
	CreateConnection(ctx context.Context, conn domain.UserConnection) error
}
