package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/citizen_accounts/internal/apperrors"
	"github.com/SscSPs/citizen_accounts/internal/core/domain"
	portsrepo "github.com/SscSPs/citizen_accounts/internal/core/ports/repositories"
	"github.com/SscSPs/citizen_accounts/internal/models"
	"github.com/SscSPs/citizen_accounts/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxConnectionRepository struct {
	BaseRepository
}

func newPgxConnectionRepository(db *pgxpool.Pool) portsrepo.ConnectionRepository {
	return &PgxConnectionRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.ConnectionRepository = (*PgxConnectionRepository)(nil)

const (
	findConnectionWithUserQuery = `
		SELECT
			uc.user_id, uc.connection_id, uc.connection_user_id, uc.connection_data,
			uc.created_at, uc.updated_at,
			u.user_id, u.email, u.name, u.company, u.language, u.password_hash,
			u.email_is_verified, u.image_url, u.source, u.source_id,
			u.email_verification_code, u.created_at, u.updated_at
		FROM user_connections uc
		JOIN users u ON u.user_id = uc.user_id
		WHERE uc.connection_id = $1 AND uc.connection_user_id = $2
	`

	insertConnectionQuery = `
		INSERT INTO user_connections (
			user_id, connection_id, connection_user_id, connection_data, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`
)

func (r *PgxConnectionRepository) FindConnectionWithUser(ctx context.Context, connectionID domain.ConnectionID, connectionUserID string) (*domain.UserConnection, *domain.User, error) {
	var c models.UserConnection
	var u models.User
	err := r.db(ctx).QueryRow(ctx, findConnectionWithUserQuery, string(connectionID), connectionUserID).Scan(
		&c.UserID,
		&c.ConnectionID,
		&c.ConnectionUserID,
		&c.ConnectionData,
		&c.CreatedAt,
		&c.UpdatedAt,
		&u.UserID,
		&u.Email,
		&u.Name,
		&u.Company,
		&u.Language,
		&u.PasswordHash,
		&u.EmailIsVerified,
		&u.ImageURL,
		&u.Source,
		&u.SourceID,
		&u.EmailVerificationCode,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.ErrNotFound
		}
		return nil, nil, storeErr("failed to find %s connection %s", err, connectionID, connectionUserID)
	}

	conn := mapping.ToDomainConnection(c)
	user := mapping.ToDomainUser(u)
	return &conn, &user, nil
}

func (r *PgxConnectionRepository) CreateConnection(ctx context.Context, conn domain.UserConnection) error {
	m := mapping.ToModelConnection(conn)
	_, err := r.db(ctx).Exec(ctx, insertConnectionQuery,
		m.UserID,
		m.ConnectionID,
		m.ConnectionUserID,
		m.ConnectionData,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		if code, _ := pgErrorCode(err); code == pgUniqueViolation {
			return apperrors.NewConflictError("connection " + m.ConnectionID + "/" + m.ConnectionUserID + " was linked concurrently")
		}
		return storeErr("failed to create %s connection for user %s", err, m.ConnectionID, m.UserID)
	}
	return nil
}
