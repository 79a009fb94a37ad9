package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/citizen_accounts/internal/apperrors"
	"github.com/SscSPs/citizen_accounts/internal/core/domain"
	"github.com/SscSPs/citizen_accounts/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/citizen_accounts/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/citizen_accounts/internal/core/ports/services"
	"github.com/SscSPs/citizen_accounts/internal/dto"
	"github.com/SscSPs/citizen_accounts/internal/platform/metrics"
	"github.com/SscSPs/citizen_accounts/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	hasher   gateways.PasswordHasher
	mailer   gateways.VerificationMailer
	validate *validator.Validate
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, hasher gateways.PasswordHasher, mailer gateways.VerificationMailer) portssvc.UserSvcFacade {
	return &userService{
		userRepo: userRepo,
		hasher:   hasher,
		mailer:   mailer,
		validate: validator.New(),
	}
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("User not found")
		}
		s.LogError(ctx, err, "Failed to get user", slog.String("user_id", userID))
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, allowPassword bool) (*domain.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Company != nil {
		user.Company = req.Company
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if err := s.validate.Var(email, "required,email"); err != nil {
			return nil, apperrors.NewInvalidEmailFormatError()
		}
		user.Email = email
	}
	if req.Language != nil {
		user.Language = *req.Language
	}
	if req.ImageURL != nil {
		user.ImageURL = req.ImageURL
	}
	if req.Password != nil {
		if !allowPassword {
			s.LogWarn(ctx, "Ignoring password change from partner token", slog.String("user_id", userID))
		} else {
			digest, err := s.hasher.Hash(*req.Password)
			if err != nil {
				return nil, fmt.Errorf("failed to hash password: %w", err)
			}
			user.PasswordHash = &digest
		}
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.userRepo.UpdateUserProfile(ctx, *user); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("User not found")
		}
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "User updated", slog.String("user_id", userID))
	return user, nil
}

// Register creates an unverified local account. The verification mail is best
// effort; a publishing failure does not undo the registration.
func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	email := strings.TrimSpace(req.Email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, apperrors.NewInvalidEmailFormatError()
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = utils.EmailToDisplayName(email)
	}
	language := req.Language
	if language == "" {
		language = defaultLanguage
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:                uuid.NewString(),
		Email:                 email,
		Name:                  name,
		Language:              language,
		PasswordHash:          &digest,
		Source:                domain.SourceLocal,
		EmailVerificationCode: uuid.NewString(),
		AuditFields:           domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to register user")
		}
		return nil, err
	}

	mailErr := s.mailer.SendVerification(ctx, user.Email, user.EmailVerificationCode)
	metrics.VerificationMailRequested(mailErr)
	if mailErr != nil {
		s.LogError(ctx, mailErr, "Failed to request verification mail", slog.String("user_id", user.UserID))
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

func (s *userService) VerifyEmail(ctx context.Context, code string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByVerificationCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Unknown verification code")
		}
		return nil, err
	}
	if user.EmailIsVerified {
		return user, nil
	}

	if err := s.userRepo.MarkEmailVerified(ctx, user.UserID); err != nil {
		s.LogError(ctx, err, "Failed to verify email", slog.String("user_id", user.UserID))
		return nil, err
	}
	user.EmailIsVerified = true
	s.LogInfo(ctx, "Email verified", slog.String("user_id", user.UserID))
	return user, nil
}
