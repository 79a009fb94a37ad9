package repositories

import (
	"context"

	"github.com/SscSPs/citizen_accounts/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email, case-insensitively.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUserByVerificationCode retrieves the user owning an email verification code.
	FindUserByVerificationCode(ctx context.Context, code string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user. A taken email yields apperrors.ErrDuplicate.
	SaveUser(ctx context.Context, user domain.User) error

	// FindOrCreateUserByEmail returns the user owning defaults.Email, inserting defaults
	// when there is none. created reports whether the insert happened.
	FindOrCreateUserByEmail(ctx context.Context, defaults domain.User) (user *domain.User, created bool, err error)

	// UpdateUserProfile stores the profile fields of user (name, company, email,
	// language, image, password hash).
	UpdateUserProfile(ctx context.Context, user domain.User) error

	// UpdateUserImage sets the profile image URL.
	UpdateUserImage(ctx context.Context, userID string, imageURL string) error

	// MarkEmailVerified flags the user's email as verified.
	MarkEmailVerified(ctx context.Context, userID string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
// This is a facade for clients that need access to all operations
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
