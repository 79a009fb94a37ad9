package pgsql

import (
	"context"

	"github.com/SscSPs/citizen_accounts/internal/apperrors"
	"github.com/SscSPs/citizen_accounts/internal/core/domain"
	portsrepo "github.com/SscSPs/citizen_accounts/internal/core/ports/repositories"
	"github.com/SscSPs/citizen_accounts/internal/models"
	"github.com/SscSPs/citizen_accounts/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxConsentRepository struct {
	BaseRepository
}

func newPgxConsentRepository(db *pgxpool.Pool) portsrepo.ConsentRepository {
	return &PgxConsentRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.ConsentRepository = (*PgxConsentRepository)(nil)

const (
	// The conditional DO UPDATE only touches logically deleted rows, so an active
	// consent reports zero affected rows.
	insertConsentIfAbsentQuery = `
		INSERT INTO user_consents (user_id, partner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, partner_id) DO UPDATE
			SET deleted_at = NULL, updated_at = EXCLUDED.updated_at
			WHERE user_consents.deleted_at IS NOT NULL
	`

	deleteConsentQuery = `DELETE FROM user_consents WHERE user_id = $1 AND partner_id = $2`

	listConsentsQuery = `
		SELECT uc.partner_id, p.website, p.created_at, p.updated_at
		FROM user_consents uc
		LEFT JOIN partners p ON p.partner_id = uc.partner_id
		WHERE uc.user_id = $1
		  AND uc.deleted_at IS NULL
	`
)

func (r *PgxConsentRepository) InsertConsentIfAbsent(ctx context.Context, consent domain.UserConsent) (bool, error) {
	// partner ids are UUIDs, anything else names no partner
	if !isUUID(consent.PartnerID) {
		return false, apperrors.NewNotFoundError("partner " + consent.PartnerID + " does not exist")
	}
	m := mapping.ToModelConsent(consent)
	cmdTag, err := r.db(ctx).Exec(ctx, insertConsentIfAbsentQuery,
		m.UserID,
		m.PartnerID,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		if code, _ := pgErrorCode(err); code == pgForeignKeyViolation {
			return false, apperrors.NewNotFoundError("partner " + consent.PartnerID + " does not exist")
		}
		return false, storeErr("failed to insert consent of user %s for partner %s", err, consent.UserID, consent.PartnerID)
	}
	return cmdTag.RowsAffected() > 0, nil
}

func (r *PgxConsentRepository) DeleteConsent(ctx context.Context, userID, partnerID string) (int64, error) {
	if !isUUID(partnerID) {
		return 0, nil
	}
	cmdTag, err := r.db(ctx).Exec(ctx, deleteConsentQuery, userID, partnerID)
	if err != nil {
		return 0, storeErr("failed to delete consent of user %s for partner %s", err, userID, partnerID)
	}
	return cmdTag.RowsAffected(), nil
}

func (r *PgxConsentRepository) ListConsents(ctx context.Context, userID string) ([]domain.ConsentListItem, error) {
	rows, err := r.db(ctx).Query(ctx, listConsentsQuery, userID)
	if err != nil {
		return nil, storeErr("failed to query consents of user %s", err, userID)
	}
	defer rows.Close()

	items := []domain.ConsentListItem{}
	for rows.Next() {
		var m models.ConsentPartner
		if err := rows.Scan(&m.PartnerID, &m.Website, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, storeErr("failed to scan consent row", err)
		}
		items = append(items, mapping.ToDomainConsentListItem(m))
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("error iterating consent rows", err)
	}
	return items, nil
}
