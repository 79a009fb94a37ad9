package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/SscSPs/citizen_accounts/internal/apperrors"
	"github.com/SscSPs/citizen_accounts/internal/core/domain"
	"github.com/SscSPs/citizen_accounts/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/citizen_accounts/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/citizen_accounts/internal/core/ports/services"
	"github.com/SscSPs/citizen_accounts/internal/platform/metrics"
	"github.com/go-playground/validator/v10"
)

// credentialService verifies local email/password logins.
type credentialService struct {
	BaseService
	userRepo portsrepo.UserReader
	hasher   gateways.PasswordHasher
	mailer   gateways.VerificationMailer
	validate *validator.Validate
}

// NewCredentialService creates a new local credential verifier.
func NewCredentialService(userRepo portsrepo.UserReader, hasher gateways.PasswordHasher, mailer gateways.VerificationMailer) portssvc.CredentialVerifierSvc {
	return &credentialService{
		userRepo: userRepo,
		hasher:   hasher,
		mailer:   mailer,
		validate: validator.New(),
	}
}

// Verify returns the user owning email when password matches.
// Accounts created through a provider have no password and are reported as not found.
// Unverified accounts get their verification mail re-sent before being rejected.
func (s *credentialService) Verify(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		metrics.AuthAttempt(string(domain.SourceLocal), apperrors.ReasonInvalidEmailFormat)
		return nil, apperrors.NewInvalidEmailFormatError()
	}

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to look up user for login")
			return nil, err
		}
		user = nil
	}
	if user == nil || !user.HasPassword() {
		metrics.AuthAttempt(string(domain.SourceLocal), apperrors.ReasonAccountNotFound)
		return nil, apperrors.NewAccountNotFoundError()
	}

	if !user.EmailIsVerified {
		mailErr := s.mailer.SendVerification(ctx, user.Email, user.EmailVerificationCode)
		metrics.VerificationMailRequested(mailErr)
		if mailErr != nil {
			s.LogError(ctx, mailErr, "Failed to request verification mail", slog.String("user_id", user.UserID))
		}
		metrics.AuthAttempt(string(domain.SourceLocal), apperrors.ReasonAccountNotVerified)
		return nil, apperrors.NewAccountNotVerifiedError()
	}

	if !s.hasher.Matches(*user.PasswordHash, password) {
		metrics.AuthAttempt(string(domain.SourceLocal), apperrors.ReasonInvalidPassword)
		return nil, apperrors.NewInvalidPasswordError()
	}

	metrics.AuthAttempt(string(domain.SourceLocal), "success")
	return user, nil
}
