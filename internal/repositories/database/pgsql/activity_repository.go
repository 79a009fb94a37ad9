package pgsql

import (
	"context"

	"github.com/SscSPs/citizen_accounts/internal/core/domain"
	portsrepo "github.com/SscSPs/citizen_accounts/internal/core/ports/repositories"
	"github.com/SscSPs/citizen_accounts/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxActivityRepository struct {
	BaseRepository
}

func newPgxActivityRepository(db *pgxpool.Pool) portsrepo.ActivityRepository {
	return &PgxActivityRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.ActivityRepository = (*PgxActivityRepository)(nil)

const insertActivityQuery = `
	INSERT INTO activities (activity_id, actor_type, actor_id, data, created_at)
	VALUES ($1, $2, $3, $4, $5)
`

func (r *PgxActivityRepository) SaveActivity(ctx context.Context, activity domain.Activity) error {
	m, err := mapping.ToModelActivity(activity)
	if err != nil {
		return storeErr("failed to encode activity %s", err, activity.ActivityID)
	}
	if _, err := r.db(ctx).Exec(ctx, insertActivityQuery, m.ActivityID, m.ActorType, m.ActorID, m.Data, m.CreatedAt); err != nil {
		return storeErr("failed to save activity %s", err, activity.ActivityID)
	}
	return nil
}
