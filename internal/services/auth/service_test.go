package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/okradley/veilarena/internal/dependencies/mocks"
	"github.com/okradley/veilarena/internal/storage/memory"
)

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
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	s.service = New(s.storage, s.clock, DefaultConfig(), logger)
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestCreateGuestPlayer() {
	session, err := s.service.CreateGuestPlayer(s.ctx, "Alice")
	s.Require().NoError(err)

	s.NotEmpty(session.Token)
	s.Equal("Alice", session.Player.DisplayName)
	s.True(session.Player.IsGuest)

	// Player should be persisted
	player, err := s.storage.GetPlayer(s.ctx, session.PlayerID)
	s.Require().NoError(err)
	s.Equal("Alice", player.DisplayName)
}

func (s *ServiceSuite) TestRegisterPlayer() {
	session, err := s.service.RegisterPlayer(s.ctx, "alice", "hunter2hunter2", "Alice")
	s.Require().NoError(err)
	s.False(session.Player.IsGuest)

	rp, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.NotEqual("hunter2hunter2", rp.PasswordHash, "password must be hashed")
}

func (s *ServiceSuite) TestRegisterDuplicateUsername() {
	_, err := s.service.RegisterPlayer(s.ctx, "alice", "password1", "Alice")
	s.Require().NoError(err)

	_, err = s.service.RegisterPlayer(s.ctx, "alice", "password2", "Other Alice")
	s.ErrorIs(err, ErrUsernameExists)
}

func (s *ServiceSuite) TestRegisterNormalizesUsername() {
	_, err := s.service.RegisterPlayer(s.ctx, "  Alice ", "password1", "Alice")
	s.Require().NoError(err)

	// Lookup is by the normalized form
	_, err = s.storage.GetRegisteredPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)

	// A differently-cased duplicate collides
	_, err = s.service.RegisterPlayer(s.ctx, "ALICE", "password2", "Other Alice")
	s.ErrorIs(err, ErrUsernameExists)
}

func (s *ServiceSuite) TestRegisterRejectsBadUsername() {
	_, err := s.service.RegisterPlayer(s.ctx, "x", "password1", "X")
	s.ErrorIs(err, ErrInvalidUsername)

	_, err = s.service.RegisterPlayer(s.ctx, "has spaces", "password1", "X")
	s.ErrorIs(err, ErrInvalidUsername)
}

func (s *ServiceSuite) TestRegisterRejectsWeakPassword() {
	_, err := s.service.RegisterPlayer(s.ctx, "alice", "short", "Alice")
	s.ErrorIs(err, ErrWeakPassword)
}

func (s *ServiceSuite) TestGuestGetsChallengerTag() {
	session, err := s.service.CreateGuestPlayer(s.ctx, "  ")
	s.Require().NoError(err)
	s.Regexp(`^Challenger-[0-9a-f]{4}$`, session.Player.DisplayName)
}

func (s *ServiceSuite) TestLoginSucceeds() {
	_, err := s.service.RegisterPlayer(s.ctx, "alice", "hunter2hunter2", "Alice")
	s.Require().NoError(err)

	session, err := s.service.Login(s.ctx, "alice", "hunter2hunter2")
	s.Require().NoError(err)
	s.Equal("Alice", session.Player.DisplayName)
}

func (s *ServiceSuite) TestLoginWrongPassword() {
	_, err := s.service.RegisterPlayer(s.ctx, "alice", "hunter2hunter2", "Alice")
	s.Require().NoError(err)

	_, err = s.service.Login(s.ctx, "alice", "wrong")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginUnknownUsername() {
	_, err := s.service.Login(s.ctx, "ghost", "whatever")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestValidateSession() {
	session, err := s.service.CreateGuestPlayer(s.ctx, "Alice")
	s.Require().NoError(err)

	validated, err := s.service.ValidateSession(session.Token)
	s.Require().NoError(err)
	s.Equal(session.PlayerID, validated.PlayerID)
}

func (s *ServiceSuite) TestValidateSessionUnknownToken() {
	_, err := s.service.ValidateSession("sess_bogus")
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestSessionExpires() {
	session, err := s.service.CreateGuestPlayer(s.ctx, "Alice")
	s.Require().NoError(err)

	s.clock.Advance(25 * time.Hour)

	_, err = s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestInvalidateSession() {
	session, err := s.service.CreateGuestPlayer(s.ctx, "Alice")
	s.Require().NoError(err)

	s.service.InvalidateSession(session.Token)

	_, err = s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestCleanExpiredSessions() {
	old, err := s.service.CreateGuestPlayer(s.ctx, "Old")
	s.Require().NoError(err)

	s.clock.Advance(25 * time.Hour)

	fresh, err := s.service.CreateGuestPlayer(s.ctx, "Fresh")
	s.Require().NoError(err)

	removed := s.service.CleanExpiredSessions()
	s.Equal(1, removed)

	_, err = s.service.ValidateSession(old.Token)
	s.ErrorIs(err, ErrInvalidSession)

	_, err = s.service.ValidateSession(fresh.Token)
	s.NoError(err)
}
