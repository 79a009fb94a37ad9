package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/citizen_accounts/internal/apperrors"
	"github.com/SscSPs/citizen_accounts/internal/core/domain"
	portssvc "github.com/SscSPs/citizen_accounts/internal/core/ports/services"
	"github.com/SscSPs/citizen_accounts/internal/core/services"
	"github.com/stretchr/testify/suite"
)

type IdentityServiceTestSuite struct {
	suite.Suite
	store   *memStore
	service portssvc.IdentityResolverSvc
	ctx     context.Context
}

func (suite *IdentityServiceTestSuite) SetupTest() {
	suite.store = newMemStore()
	repos := suite.store.provider()
	suite.service = services.NewIdentityService(repos.TxManager, repos.UserRepo, repos.ConnectionRepo)
	suite.ctx = context.Background()
}

func TestIdentityServiceTestSuite(t *testing.T) {
	suite.Run(t, new(IdentityServiceTestSuite))
}

func strPtr(s string) *string { return &s }

func googleInput(subject, email, name string) domain.ResolverInput {
	return domain.ResolverInput{
		Provider:    domain.ConnectionGoogle,
		SubjectID:   subject,
		Email:       email,
		DisplayName: name,
		ImageURL:    strPtr("https://lh3.example.com/photo.jpg"),
		Profile:     json.RawMessage(`{"id":"` + subject + `","email":"` + email + `"}`),
	}
}

func (suite *IdentityServiceTestSuite) TestResolve_EmptyEmail() {
	in := googleInput("g-1", "", "Jane")

	res, err := suite.service.Resolve(suite.ctx, in)

	suite.Nil(res)
	suite.ErrorIs(err, apperrors.ErrProviderData)
	suite.Zero(suite.store.writeCount())
	suite.Zero(suite.store.userCount())
}

func (suite *IdentityServiceTestSuite) TestResolve_CreatesUserAndConnection() {
	in := googleInput("g-1", "jane.doe@example.com", "Jane Doe")

	res, err := suite.service.Resolve(suite.ctx, in)

	suite.Require().NoError(err)
	suite.Equal(domain.ResolutionCreated, res.Kind)
	suite.True(res.WasCreated())

	u := res.User
	suite.NotEmpty(u.UserID)
	suite.Equal("jane.doe@example.com", u.Email)
	suite.Equal("Jane Doe", u.Name)
	suite.True(u.EmailIsVerified)
	suite.Nil(u.PasswordHash)
	suite.Equal(domain.SourceGoogle, u.Source)
	suite.Require().NotNil(u.SourceID)
	suite.Equal("g-1", *u.SourceID)
	suite.Require().NotNil(u.ImageURL)
	suite.Equal("https://lh3.example.com/photo.jpg", *u.ImageURL)
	suite.NotEmpty(u.EmailVerificationCode)

	conn, ok := suite.store.connection(domain.ConnectionGoogle, "g-1")
	suite.Require().True(ok)
	suite.Equal(u.UserID, conn.UserID)
	suite.JSONEq(string(in.Profile), string(conn.ConnectionData))
}

func (suite *IdentityServiceTestSuite) TestResolve_DerivesNameFromEmail() {
	in := googleInput("g-2", "john_smith+news@example.com", "  ")

	res, err := suite.service.Resolve(suite.ctx, in)

	suite.Require().NoError(err)
	suite.Equal("John Smith", res.User.Name)
}

func (suite *IdentityServiceTestSuite) TestResolve_ExistingConnectionWritesNothing() {
	first, err := suite.service.Resolve(suite.ctx, googleInput("g-1", "jane@example.com", "Jane"))
	suite.Require().NoError(err)
	writes := suite.store.writeCount()

	again, err := suite.service.Resolve(suite.ctx, googleInput("g-1", "other-address@example.com", "Renamed"))

	suite.Require().NoError(err)
	suite.Equal(domain.ResolutionExisting, again.Kind)
	suite.False(again.WasCreated())
	suite.Equal(first.User.UserID, again.User.UserID)
	suite.Equal(writes, suite.store.writeCount())
	suite.Equal(1, suite.store.userCount())
}

func (suite *IdentityServiceTestSuite) TestResolve_LinksExistingUserByEmailCaseInsensitive() {
	now := time.Now().UTC()
	suite.store.seedUser(domain.User{
		UserID:          "local-1",
		Email:           "Jane@Example.com",
		Name:            "Jane Local",
		PasswordHash:    strPtr("digest"),
		EmailIsVerified: false,
		Source:          domain.SourceLocal,
		AuditFields:     domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	})

	res, err := suite.service.Resolve(suite.ctx, googleInput("g-9", "jane@example.com", "Jane Google"))

	suite.Require().NoError(err)
	suite.Equal(domain.ResolutionLinked, res.Kind)
	suite.Equal("local-1", res.User.UserID)
	suite.Equal("Jane Local", res.User.Name)
	suite.Equal(domain.SourceLocal, res.User.Source)
	suite.Equal(1, suite.store.userCount())

	// the missing avatar is filled in
	suite.Require().NotNil(res.User.ImageURL)
	stored, err := suite.store.FindUserByID(suite.ctx, "local-1")
	suite.Require().NoError(err)
	suite.Equal("https://lh3.example.com/photo.jpg", *stored.ImageURL)
}

func (suite *IdentityServiceTestSuite) TestResolve_KeepsExistingImage() {
	suite.store.seedUser(domain.User{
		UserID:   "local-1",
		Email:    "jane@example.com",
		ImageURL: strPtr("https://cdn.example.com/mine.png"),
		Source:   domain.SourceLocal,
	})

	res, err := suite.service.Resolve(suite.ctx, googleInput("g-9", "jane@example.com", "Jane"))

	suite.Require().NoError(err)
	suite.Equal("https://cdn.example.com/mine.png", *res.User.ImageURL)
}

func (suite *IdentityServiceTestSuite) TestResolve_SecondProviderLinksSameUser() {
	g, err := suite.service.Resolve(suite.ctx, googleInput("g-1", "jane@example.com", "Jane"))
	suite.Require().NoError(err)

	fb := domain.ResolverInput{
		Provider:  domain.ConnectionFacebook,
		SubjectID: "fb-1",
		Email:     "JANE@example.com",
		Profile:   json.RawMessage(`{"id":"fb-1"}`),
	}
	res, err := suite.service.Resolve(suite.ctx, fb)

	suite.Require().NoError(err)
	suite.Equal(domain.ResolutionLinked, res.Kind)
	suite.Equal(g.User.UserID, res.User.UserID)
	suite.Equal(2, suite.store.connectionCount())
}

func (suite *IdentityServiceTestSuite) TestResolve_FailureRollsBackCreatedUser() {
	suite.store.failCreateConnection = errors.New("disk full")

	res, err := suite.service.Resolve(suite.ctx, googleInput("g-1", "jane@example.com", "Jane"))

	suite.Nil(res)
	suite.Error(err)
	suite.Zero(suite.store.userCount())
	suite.Zero(suite.store.connectionCount())
}

func (suite *IdentityServiceTestSuite) TestResolve_ImageFailureRollsBackLink() {
	suite.store.seedUser(domain.User{UserID: "local-1", Email: "jane@example.com", Source: domain.SourceLocal})
	suite.store.failUpdateImage = apperrors.NewStoreError("update failed", errors.New("boom"))

	_, err := suite.service.Resolve(suite.ctx, googleInput("g-1", "jane@example.com", "Jane"))

	suite.ErrorIs(err, apperrors.ErrStore)
	suite.Zero(suite.store.connectionCount())
	suite.Equal(1, suite.store.userCount())
}

func (suite *IdentityServiceTestSuite) TestResolve_ConcurrentLinkIsRetryable() {
	in := googleInput("g-1", "jane@example.com", "Jane")
	suite.store.beforeCreateConn = func() {
		suite.store.beforeCreateConn = nil
		suite.store.commitConcurrently(
			domain.User{UserID: "winner", Email: "someone-else@example.com"},
			domain.UserConnection{UserID: "winner", ConnectionID: domain.ConnectionGoogle, ConnectionUserID: "g-1"},
		)
	}

	_, err := suite.service.Resolve(suite.ctx, in)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.True(apperrors.IsRetryable(err))

	// the user row created inside the failed transaction is gone
	_, lookupErr := suite.store.FindUserByEmail(suite.ctx, "jane@example.com")
	suite.ErrorIs(lookupErr, apperrors.ErrNotFound)

	retry, err := suite.service.Resolve(suite.ctx, in)
	suite.Require().NoError(err)
	suite.Equal(domain.ResolutionExisting, retry.Kind)
	suite.Equal("winner", retry.User.UserID)
}

func (suite *IdentityServiceTestSuite) TestResolve_ConcurrentRequestsYieldOneUser() {
	const workers = 8
	in := googleInput("g-1", "jane@example.com", "Jane")

	ids := make([]string, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for attempt := 0; attempt < 3; attempt++ {
				res, err := suite.service.Resolve(suite.ctx, in)
				errs[i] = err
				if err == nil {
					ids[i] = res.User.UserID
					return
				}
				if !apperrors.IsRetryable(err) {
					return
				}
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		suite.Require().NoError(errs[i])
		suite.Equal(ids[0], ids[i])
	}
	suite.Equal(1, suite.store.userCount())
	suite.Equal(1, suite.store.connectionCount())
}

func (suite *IdentityServiceTestSuite) TestResolve_RejectsUnknownProvider() {
	in := googleInput("x-1", "jane@example.com", "Jane")
	in.Provider = "twitter"

	_, err := suite.service.Resolve(suite.ctx, in)

	suite.ErrorIs(err, apperrors.ErrProviderData)
}
