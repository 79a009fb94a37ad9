package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/citizen_accounts/internal/apperrors"
	"github.com/SscSPs/citizen_accounts/internal/core/domain"
	portsrepo "github.com/SscSPs/citizen_accounts/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/citizen_accounts/internal/core/ports/services"
	"github.com/SscSPs/citizen_accounts/internal/middleware"
	"github.com/SscSPs/citizen_accounts/internal/platform/metrics"
	"github.com/google/uuid"
)

const (
	actorTypeUser         = "User"
	objectTypeUserConsent = "UserConsent"
)

type consentService struct {
	BaseService
	txManager  portsrepo.TransactionManager
	consents   portsrepo.ConsentRepository
	activities portsrepo.ActivityRepository
}

// NewConsentService creates a new consent ledger.
func NewConsentService(txManager portsrepo.TransactionManager, consents portsrepo.ConsentRepository, activities portsrepo.ActivityRepository) portssvc.ConsentLedgerSvc {
	return &consentService{
		txManager:  txManager,
		consents:   consents,
		activities: activities,
	}
}

// Grant records consent of userID to partnerID. Granting an active consent again is a
// no-op that writes no activity.
func (s *consentService) Grant(ctx context.Context, userID, partnerID string) (domain.GrantResult, error) {
	if userID == "" || partnerID == "" {
		return 0, apperrors.NewBadRequestError("userId and partnerId are required")
	}

	result := domain.ConsentAlreadyGranted
	err := s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		now := time.Now().UTC()
		inserted, err := s.consents.InsertConsentIfAbsent(txCtx, domain.UserConsent{
			UserID:      userID,
			PartnerID:   partnerID,
			AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now},
		})
		if err != nil {
			return err
		}
		if !inserted {
			return nil
		}
		result = domain.ConsentGranted
		return s.activities.SaveActivity(txCtx, s.consentActivity(ctx, domain.ActivityCreate, userID, partnerID, now))
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to grant consent", slog.String("partner_id", partnerID))
		return 0, err
	}

	metrics.ConsentChanged("grant", result.String())
	s.LogInfo(ctx, "Consent granted", slog.String("partner_id", partnerID), slog.String("result", result.String()))
	return result, nil
}

// Revoke hard deletes the consent and always records a Delete activity, even when
// there was nothing to delete.
func (s *consentService) Revoke(ctx context.Context, userID, partnerID string) error {
	if userID == "" || partnerID == "" {
		return apperrors.NewBadRequestError("userId and partnerId are required")
	}

	var removed int64
	err := s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		removed, err = s.consents.DeleteConsent(txCtx, userID, partnerID)
		if err != nil {
			return err
		}
		return s.activities.SaveActivity(txCtx, s.consentActivity(ctx, domain.ActivityDelete, userID, partnerID, time.Now().UTC()))
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to revoke consent", slog.String("partner_id", partnerID))
		return err
	}

	metrics.ConsentChanged("revoke", "ok")
	s.LogInfo(ctx, "Consent revoked", slog.String("partner_id", partnerID), slog.Int64("removed", removed))
	return nil
}

func (s *consentService) List(ctx context.Context, userID string) ([]domain.ConsentListItem, error) {
	items, err := s.consents.ListConsents(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list consents")
		return nil, err
	}
	return items, nil
}

func (s *consentService) consentActivity(ctx context.Context, typ domain.ActivityType, userID, partnerID string, at time.Time) domain.Activity {
	return domain.Activity{
		ActivityID: uuid.NewString(),
		Type:       typ,
		Actor:      domain.ActivityActor{Type: actorTypeUser, ID: userID},
		Object: domain.ActivityObject{
			Type:      objectTypeUserConsent,
			UserID:    userID,
			PartnerID: partnerID,
		},
		Context:   middleware.RequestLineFromCtx(ctx),
		CreatedAt: at,
	}
}
