package services

import (
	"context"

	"github.com/SscSPs/citizen_accounts/internal/core/domain"
	"github.com/SscSPs/citizen_accounts/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// UpdateUser updates the profile fields of a user. The password is only
	// changed when allowPassword is set.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, allowPassword bool) (*domain.User, error)
}

// UserLifecycleSvc defines operations for managing user lifecycle
type UserLifecycleSvc interface {
	// Register creates an unverified local account and requests a verification mail.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// VerifyEmail marks the owner of code as verified.
	VerifyEmail(ctx context.Context, code string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserLifecycleSvc
}
