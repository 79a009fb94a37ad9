package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/citizen_accounts/internal/apperrors"
	"github.com/SscSPs/citizen_accounts/internal/core/domain"
	portsrepo "github.com/SscSPs/citizen_accounts/internal/core/ports/repositories"
	"github.com/SscSPs/citizen_accounts/internal/models"
	"github.com/SscSPs/citizen_accounts/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const (
	selectUserFields = `
		user_id, email, name, company, language, password_hash, email_is_verified,
		image_url, source, source_id, email_verification_code, created_at, updated_at
	`

	insertUserQuery = `
		INSERT INTO users (
			user_id, email, name, company, language, password_hash, email_is_verified,
			image_url, source, source_id, email_verification_code, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	findOrCreateUserQuery = insertUserQuery + `
		ON CONFLICT ((lower(email))) DO NOTHING
		RETURNING ` + selectUserFields

	findUserByIDQuery = `SELECT ` + selectUserFields + ` FROM users WHERE user_id = $1`

	findUserByEmailQuery = `SELECT ` + selectUserFields + ` FROM users WHERE lower(email) = lower($1)`

	findUserByVerificationCodeQuery = `SELECT ` + selectUserFields + ` FROM users WHERE email_verification_code = $1`

	updateUserProfileQuery = `
		UPDATE users
		SET name = $2, company = $3, email = $4, language = $5, image_url = $6,
			password_hash = $7, updated_at = $8
		WHERE user_id = $1
	`

	updateUserImageQuery = `UPDATE users SET image_url = $2, updated_at = $3 WHERE user_id = $1`

	markEmailVerifiedQuery = `UPDATE users SET email_is_verified = TRUE, updated_at = $2 WHERE user_id = $1`
)

func scanUser(row pgx.Row) (models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Email,
		&m.Name,
		&m.Company,
		&m.Language,
		&m.PasswordHash,
		&m.EmailIsVerified,
		&m.ImageURL,
		&m.Source,
		&m.SourceID,
		&m.EmailVerificationCode,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

func userArgs(m models.User) []any {
	return []any{
		m.UserID,
		m.Email,
		m.Name,
		m.Company,
		m.Language,
		m.PasswordHash,
		m.EmailIsVerified,
		m.ImageURL,
		m.Source,
		m.SourceID,
		m.EmailVerificationCode,
		m.CreatedAt,
		m.UpdatedAt,
	}
}

func (r *PgxUserRepository) findOne(ctx context.Context, query string, arg string) (*domain.User, error) {
	modelUser, err := scanUser(r.db(ctx).QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, storeErr("failed to find user", err)
	}
	domainUser := mapping.ToDomainUser(modelUser)
	return &domainUser, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, findUserByIDQuery, userID)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, findUserByEmailQuery, email)
}

func (r *PgxUserRepository) FindUserByVerificationCode(ctx context.Context, code string) (*domain.User, error) {
	return r.findOne(ctx, findUserByVerificationCodeQuery, code)
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	_, err := r.db(ctx).Exec(ctx, insertUserQuery, userArgs(mapping.ToModelUser(user))...)
	if err != nil {
		if code, _ := pgErrorCode(err); code == pgUniqueViolation {
			return apperrors.NewDuplicateError("a user with email " + user.Email + " already exists")
		}
		return storeErr("failed to save user %s", err, user.UserID)
	}
	return nil
}

func (r *PgxUserRepository) FindOrCreateUserByEmail(ctx context.Context, defaults domain.User) (*domain.User, bool, error) {
	modelUser, err := scanUser(r.db(ctx).QueryRow(ctx, findOrCreateUserQuery, userArgs(mapping.ToModelUser(defaults))...))
	if err == nil {
		created := mapping.ToDomainUser(modelUser)
		return &created, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, storeErr("failed to find or create user by email", err)
	}

	// DO NOTHING returned no row: the email is taken.
	existing, err := r.FindUserByEmail(ctx, defaults.Email)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *PgxUserRepository) UpdateUserProfile(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	cmdTag, err := r.db(ctx).Exec(ctx, updateUserProfileQuery,
		m.UserID,
		m.Name,
		m.Company,
		m.Email,
		m.Language,
		m.ImageURL,
		m.PasswordHash,
		m.UpdatedAt,
	)
	if err != nil {
		if code, _ := pgErrorCode(err); code == pgUniqueViolation {
			return apperrors.NewDuplicateError("a user with email " + user.Email + " already exists")
		}
		return storeErr("failed to update user %s", err, user.UserID)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) UpdateUserImage(ctx context.Context, userID string, imageURL string) error {
	cmdTag, err := r.db(ctx).Exec(ctx, updateUserImageQuery, userID, imageURL, time.Now().UTC())
	if err != nil {
		return storeErr("failed to update image of user %s", err, userID)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) MarkEmailVerified(ctx context.Context, userID string) error {
	cmdTag, err := r.db(ctx).Exec(ctx, markEmailVerifiedQuery, userID, time.Now().UTC())
	if err != nil {
		return storeErr("failed to verify email of user %s", err, userID)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
