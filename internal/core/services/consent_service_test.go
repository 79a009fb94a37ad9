package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/citizen_accounts/internal/apperrors"
	"github.com/SscSPs/citizen_accounts/internal/core/domain"
	portssvc "github.com/SscSPs/citizen_accounts/internal/core/ports/services"
	"github.com/SscSPs/citizen_accounts/internal/core/services"
	"github.com/SscSPs/citizen_accounts/internal/middleware"
	"github.com/stretchr/testify/suite"
)

type ConsentServiceTestSuite struct {
	suite.Suite
	store   *memStore
	service portssvc.ConsentLedgerSvc
	ctx     context.Context
}

func (suite *ConsentServiceTestSuite) SetupTest() {
	suite.store = newMemStore()
	suite.store.seedUser(domain.User{UserID: "user-1", Email: "jane@example.com"})
	suite.store.addPartner("partner-a", "https://a.example.com")
	suite.store.addPartner("partner-b", "https://b.example.com")

	repos := suite.store.provider()
	suite.service = services.NewConsentService(repos.TxManager, repos.ConsentRepo, repos.ActivityRepo)
	suite.ctx = middleware.WithRequestLine(context.Background(), "POST /api/v1/users/user-1/consents")
}

func TestConsentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ConsentServiceTestSuite))
}

func (suite *ConsentServiceTestSuite) TestGrant_ThenAlreadyGranted() {
	result, err := suite.service.Grant(suite.ctx, "user-1", "partner-a")
	suite.Require().NoError(err)
	suite.Equal(domain.ConsentGranted, result)

	result, err = suite.service.Grant(suite.ctx, "user-1", "partner-a")
	suite.Require().NoError(err)
	suite.Equal(domain.ConsentAlreadyGranted, result)

	activities := suite.store.activityList()
	suite.Require().Len(activities, 1)
	a := activities[0]
	suite.NotEmpty(a.ActivityID)
	suite.Equal(domain.ActivityCreate, a.Type)
	suite.Equal(domain.ActivityActor{Type: "User", ID: "user-1"}, a.Actor)
	suite.Equal(domain.ActivityObject{Type: "UserConsent", UserID: "user-1", PartnerID: "partner-a"}, a.Object)
	suite.Equal("POST /api/v1/users/user-1/consents", a.Context)
	suite.False(a.CreatedAt.IsZero())
}

func (suite *ConsentServiceTestSuite) TestGrant_RevivesSoftDeletedConsent() {
	_, err := suite.service.Grant(suite.ctx, "user-1", "partner-a")
	suite.Require().NoError(err)
	suite.store.softDeleteConsent("user-1", "partner-a")

	items, err := suite.service.List(suite.ctx, "user-1")
	suite.Require().NoError(err)
	suite.Empty(items)

	result, err := suite.service.Grant(suite.ctx, "user-1", "partner-a")
	suite.Require().NoError(err)
	suite.Equal(domain.ConsentGranted, result)
	suite.Len(suite.store.activityList(), 2)

	items, err = suite.service.List(suite.ctx, "user-1")
	suite.Require().NoError(err)
	suite.Require().Len(items, 1)
	suite.Equal("partner-a", items[0].PartnerID)
}

func (suite *ConsentServiceTestSuite) TestGrant_UnknownPartner() {
	_, err := suite.service.Grant(suite.ctx, "user-1", "nobody")

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Empty(suite.store.activityList())
}

func (suite *ConsentServiceTestSuite) TestGrant_ActivityFailureRollsBack() {
	suite.store.failSaveActivity = errors.New("audit table unavailable")

	_, err := suite.service.Grant(suite.ctx, "user-1", "partner-a")
	suite.Require().Error(err)

	suite.store.failSaveActivity = nil
	items, err := suite.service.List(suite.ctx, "user-1")
	suite.Require().NoError(err)
	suite.Empty(items)
}

func (suite *ConsentServiceTestSuite) TestGrant_RequiresIDs() {
	_, err := suite.service.Grant(suite.ctx, "user-1", "")
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.Grant(suite.ctx, "", "partner-a")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ConsentServiceTestSuite) TestRevoke_RemovesConsentAndAudits() {
	_, err := suite.service.Grant(suite.ctx, "user-1", "partner-a")
	suite.Require().NoError(err)

	ctx := middleware.WithRequestLine(context.Background(), "DELETE /api/v1/users/user-1/consents/partner-a")
	suite.Require().NoError(suite.service.Revoke(ctx, "user-1", "partner-a"))

	items, err := suite.service.List(suite.ctx, "user-1")
	suite.Require().NoError(err)
	suite.Empty(items)

	activities := suite.store.activityList()
	suite.Require().Len(activities, 2)
	suite.Equal(domain.ActivityDelete, activities[1].Type)
	suite.Equal("DELETE /api/v1/users/user-1/consents/partner-a", activities[1].Context)
}

func (suite *ConsentServiceTestSuite) TestRevoke_MissingConsentStillAudits() {
	suite.Require().NoError(suite.service.Revoke(suite.ctx, "user-1", "partner-b"))

	activities := suite.store.activityList()
	suite.Require().Len(activities, 1)
	suite.Equal(domain.ActivityDelete, activities[0].Type)
	suite.Equal("partner-b", activities[0].Object.PartnerID)
}

func (suite *ConsentServiceTestSuite) TestRevoke_MalformedPartnerIDStillAudits() {
	suite.Require().NoError(suite.service.Revoke(suite.ctx, "user-1", "not-a-uuid"))

	activities := suite.store.activityList()
	suite.Require().Len(activities, 1)
	suite.Equal(domain.ActivityDelete, activities[0].Type)
	suite.Equal("not-a-uuid", activities[0].Object.PartnerID)
	suite.Equal("POST /api/v1/users/user-1/consents", activities[0].Context)
}

func (suite *ConsentServiceTestSuite) TestGrant_MalformedPartnerIDIsNotFound() {
	_, err := suite.service.Grant(suite.ctx, "user-1", "not-a-uuid")

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Empty(suite.store.activityList())
}

func (suite *ConsentServiceTestSuite) TestRevoke_ActivityFailureKeepsConsent() {
	_, err := suite.service.Grant(suite.ctx, "user-1", "partner-a")
	suite.Require().NoError(err)
	suite.store.failSaveActivity = errors.New("audit table unavailable")

	suite.Error(suite.service.Revoke(suite.ctx, "user-1", "partner-a"))

	items, err := suite.service.List(suite.ctx, "user-1")
	suite.Require().NoError(err)
	suite.Len(items, 1)
}

func (suite *ConsentServiceTestSuite) TestList_InGrantOrderAndScopedToUser() {
	suite.store.seedUser(domain.User{UserID: "user-2", Email: "john@example.com"})
	_, err := suite.service.Grant(suite.ctx, "user-1", "partner-b")
	suite.Require().NoError(err)
	_, err = suite.service.Grant(suite.ctx, "user-1", "partner-a")
	suite.Require().NoError(err)
	_, err = suite.service.Grant(suite.ctx, "user-2", "partner-a")
	suite.Require().NoError(err)

	items, err := suite.service.List(suite.ctx, "user-1")

	suite.Require().NoError(err)
	suite.Require().Len(items, 2)
	suite.Equal("partner-b", items[0].PartnerID)
	suite.Equal("partner-a", items[1].PartnerID)
	suite.Require().NotNil(items[1].Website)
	suite.Equal("https://a.example.com", *items[1].Website)
}
