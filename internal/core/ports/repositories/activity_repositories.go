package repositories

import (
	"context"

	"github.com/SscSPs/citizen_accounts/internal/core/domain"
)

// ActivityRepository stores audit activities.
type ActivityRepository interface {
	SaveActivity(ctx context.Context, activity domain.Activity) error
}
