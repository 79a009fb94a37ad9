package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/citizen_accounts/internal/apperrors"
	"github.com/SscSPs/citizen_accounts/internal/core/domain"
	portsrepo "github.com/SscSPs/citizen_accounts/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/citizen_accounts/internal/core/ports/services"
	"github.com/SscSPs/citizen_accounts/internal/platform/metrics"
	"github.com/SscSPs/citizen_accounts/internal/utils"
	"github.com/google/uuid"
)

const defaultLanguage = "en"

// identityService resolves provider identities to local users.
type identityService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	userRepo    portsrepo.UserRepositoryFacade
	connections portsrepo.ConnectionRepository
}

// NewIdentityService creates a new identity resolver.
func NewIdentityService(txManager portsrepo.TransactionManager, userRepo portsrepo.UserRepositoryFacade, connections portsrepo.ConnectionRepository) portssvc.IdentityResolverSvc {
	return &identityService{
		txManager:   txManager,
		userRepo:    userRepo,
		connections: connections,
	}
}

// Resolve returns the user linked to in.Provider/in.SubjectID. When there is none
// it finds or creates the user owning in.Email and links the identity to it, all
// in one transaction. A returned ErrConflict means a concurrent request linked the
// same identity first; the call can be retried and will take the fast path.
func (s *identityService) Resolve(ctx context.Context, in domain.ResolverInput) (*domain.Resolution, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return nil, apperrors.NewProviderDataError("Email is required to sign in with " + string(in.Provider))
	}
	if !in.Provider.Valid() || in.SubjectID == "" {
		return nil, apperrors.NewProviderDataError("Provider identity is incomplete")
	}

	logger := s.GetLogger(ctx).With(
		slog.String("provider", string(in.Provider)),
		slog.String("connection_user_id", in.SubjectID),
	)

	_, existing, err := s.connections.FindConnectionWithUser(ctx, in.Provider, in.SubjectID)
	if err == nil {
		metrics.IdentityResolved(string(in.Provider), domain.ResolutionExisting.String())
		return &domain.Resolution{User: *existing, Kind: domain.ResolutionExisting}, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to look up user connection", slog.String("error", err.Error()))
		return nil, err
	}

	var resolution *domain.Resolution
	err = s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		now := time.Now().UTC()
		user, created, err := s.userRepo.FindOrCreateUserByEmail(txCtx, newSocialUser(in, email, now))
		if err != nil {
			return err
		}

		conn := domain.UserConnection{
			UserID:           user.UserID,
			ConnectionID:     in.Provider,
			ConnectionUserID: in.SubjectID,
			ConnectionData:   in.Profile,
			AuditFields:      domain.AuditFields{CreatedAt: now, UpdatedAt: now},
		}
		if err := s.connections.CreateConnection(txCtx, conn); err != nil {
			return err
		}

		if !user.HasImage() && in.ImageURL != nil && *in.ImageURL != "" {
			if err := s.userRepo.UpdateUserImage(txCtx, user.UserID, *in.ImageURL); err != nil {
				return err
			}
			img := *in.ImageURL
			user.ImageURL = &img
		}

		kind := domain.ResolutionLinked
		if created {
			kind = domain.ResolutionCreated
		}
		resolution = &domain.Resolution{User: *user, Kind: kind}
		return nil
	})
	if err != nil {
		if apperrors.IsRetryable(err) {
			logger.Warn("Concurrent link of provider identity", slog.String("error", err.Error()))
		} else {
			logger.Error("Failed to resolve provider identity", slog.String("error", err.Error()))
		}
		return nil, err
	}

	metrics.IdentityResolved(string(in.Provider), resolution.Kind.String())
	logger.Info("Provider identity resolved",
		slog.String("user_id", resolution.User.UserID),
		slog.String("kind", resolution.Kind.String()))
	return resolution, nil
}

// newSocialUser is the row inserted when no user owns email yet.
func newSocialUser(in domain.ResolverInput, email string, now time.Time) domain.User {
	name := strings.TrimSpace(in.DisplayName)
	if name == "" {
		name = utils.EmailToDisplayName(email)
	}
	subject := in.SubjectID
	return domain.User{
		UserID:                uuid.NewString(),
		Email:                 email,
		Name:                  name,
		Language:              defaultLanguage,
		EmailIsVerified:       true,
		ImageURL:              in.ImageURL,
		Source:                in.Provider.Source(),
		SourceID:              &subject,
		EmailVerificationCode: uuid.NewString(),
		AuditFields:           domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
}
