package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/zkgames/zkgames-go/internal/dependencies/mocks"
	"github.com/zkgames/zkgames-go/internal/model"
	"github.com/zkgames/zkgames-go/internal/storage/memory"
)

const testSignerKey = "sk_test_signer_key"

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))

	cfg := DefaultConfig()
	cfg.AdminToken = "admin-token"
	s.service = New(s.storage, s.clock, cfg)
	s.ctx = context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte(testSignerKey), bcrypt.MinCost)
	s.Require().NoError(err)
	s.Require().NoError(s.storage.SaveClient(s.ctx, &model.GameClient{
		ID:         model.ClientID("gc_test"),
		Name:       "arcade",
		SignerHash: hash,
		FeeAccount: model.ClientFeeAccount("gc_test"),
		CreatedAt:  s.clock.Now(),
	}))
}

// Login tests

func (s *ServiceSuite) TestLoginSucceeds() {
	session, err := s.service.Login(s.ctx, "gc_test", testSignerKey)
	s.Require().NoError(err)

	s.NotEmpty(session.Token)
	s.Equal(model.ClientID("gc_test"), session.ClientID)
	s.Equal("arcade", session.Client.Name)
}

func (s *ServiceSuite) TestLoginFailsWithWrongKey() {
	_, err := s.service.Login(s.ctx, "gc_test", "wrong-key")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginFailsWithUnknownClient() {
	_, err := s.service.Login(s.ctx, "gc_nobody", testSignerKey)
	s.ErrorIs(err, ErrInvalidCredentials)
}

// ValidateSession tests

func (s *ServiceSuite) TestValidateSessionSucceeds() {
	session, err := s.service.Login(s.ctx, "gc_test", testSignerKey)
	s.Require().NoError(err)

	validated, err := s.service.ValidateSession(session.Token)
	s.Require().NoError(err)
	s.Equal(session.ClientID, validated.ClientID)
}

func (s *ServiceSuite) TestValidateSessionFailsWithInvalidToken() {
	_, err := s.service.ValidateSession("invalid_token")
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestValidateSessionFailsWhenExpired() {
	session, err := s.service.Login(s.ctx, "gc_test", testSignerKey)
	s.Require().NoError(err)

	s.clock.Advance(25 * time.Hour)

	_, err = s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

// InvalidateSession tests

func (s *ServiceSuite) TestInvalidateSessionRemovesSession() {
	session, err := s.service.Login(s.ctx, "gc_test", testSignerKey)
	s.Require().NoError(err)

	s.service.InvalidateSession(session.Token)

	_, err = s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestInvalidateSessionNoopForUnknownToken() {
	// Should not panic
	s.service.InvalidateSession("unknown_token")
}

// Admin token tests

func (s *ServiceSuite) TestValidateAdminToken() {
	s.True(s.service.ValidateAdminToken("admin-token"))
	s.False(s.service.ValidateAdminToken("wrong-token"))
	s.False(s.service.ValidateAdminToken(""))
}

func (s *ServiceSuite) TestAdminDisabledWithoutToken() {
	service := New(s.storage, s.clock, DefaultConfig())
	s.False(service.ValidateAdminToken(""))
	s.False(service.ValidateAdminToken("anything"))
}

// CleanExpiredSessions tests

func (s *ServiceSuite) TestCleanExpiredSessionsRemovesExpired() {
	session1, err := s.service.Login(s.ctx, "gc_test", testSignerKey)
	s.Require().NoError(err)

	s.clock.Advance(25 * time.Hour)

	session2, err := s.service.Login(s.ctx, "gc_test", testSignerKey)
	s.Require().NoError(err)

	s.service.CleanExpiredSessions()

	_, err = s.service.ValidateSession(session1.Token)
	s.ErrorIs(err, ErrInvalidSession)

	_, err = s.service.ValidateSession(session2.Token)
	s.NoError(err)
}
