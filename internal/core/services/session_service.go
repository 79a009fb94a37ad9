package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/citizen_accounts/internal/apperrors"
	"github.com/SscSPs/citizen_accounts/internal/core/domain"
	portsrepo "github.com/SscSPs/citizen_accounts/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/citizen_accounts/internal/core/ports/services"
	"github.com/SscSPs/citizen_accounts/internal/platform/config"
	"github.com/SscSPs/citizen_accounts/internal/utils"
)

// sessionService maps users to session principals. The principal is the user id.
type sessionService struct {
	BaseService
	userRepo portsrepo.UserReader
}

// NewSessionService creates a new session principal mapper.
func NewSessionService(userRepo portsrepo.UserReader) portssvc.SessionSvc {
	return &sessionService{userRepo: userRepo}
}

func (s *sessionService) ToPrincipal(user *domain.User) string {
	return user.UserID
}

// FromPrincipal reloads the user a principal refers to. Users deleted after the
// token was issued yield NotFound.
func (s *sessionService) FromPrincipal(ctx context.Context, principalID string) (*domain.User, error) {
	if principalID == "" {
		return nil, apperrors.NewUnauthorizedError("Missing principal")
	}
	user, err := s.userRepo.FindUserByID(ctx, principalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("User not found")
		}
		s.LogError(ctx, err, "Failed to load session user")
		return nil, err
	}
	return user, nil
}

// tokenService issues the signed bearer tokens that carry the principal.
type tokenService struct {
	cfg     *config.Config
	session portssvc.SessionSvc
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, session portssvc.SessionSvc) portssvc.TokenSvcFacade {
	return &tokenService{
		cfg:     cfg,
		session: session,
	}
}

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)

	accessToken, err := utils.GenerateJWT(s.session.ToPrincipal(user), s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return accessToken, expiryTime, nil
}
