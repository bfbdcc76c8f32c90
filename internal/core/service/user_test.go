package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"ziluri/internal/adapter/database/sqlite/repository"
	"ziluri/internal/core/dates"
	"ziluri/internal/core/domain"
	"ziluri/internal/core/port"
	"ziluri/internal/core/service"
	"ziluri/pkg/auth"
	. "ziluri/pkg/test"
)

type UserServiceTestSuite struct {
	suite.Suite
	setup *TestSetup[port.UserService]
	svc   *service.UserService
	auth  *service.AuthService
	repo  port.UserRepository
	clock *dates.FixedClock
}

func (s *UserServiceTestSuite) SetupTest() {
	db := InitTestDB()

	bucket := dates.NewBucket(time.UTC)
	s.clock = &dates.FixedClock{
		Time:   time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC),
		Bucket: bucket,
	}

	s.repo = repository.NewUserRepository(db, nil)
	s.svc = service.NewUserService(s.repo, bucket, s.clock)
	s.auth = service.NewAuthService(s.svc, auth.NewJWT("test-jwt-secret"))

	var svc port.UserService = s.svc
	s.setup = SetupTest(s.T(), db, &svc)
}

func (s *UserServiceTestSuite) TearDownTest() {
	TeardownTest(s.T(), s.setup)
}

func TestUserServiceTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) TestService_EnsureGuest_CreatesOnce() {
	ctx := context.Background()

	first, err := s.svc.EnsureGuest(ctx)
	assert.NoError(s.T(), err)

	second, err := s.svc.EnsureGuest(ctx)
	assert.NoError(s.T(), err)

	Expect(second.ID).To(Equal(first.ID))
	Expect(first.LoginType).To(Equal(domain.LoginGuest))
	Expect(first.Level).To(Equal(1))
}

func (s *UserServiceTestSuite) TestService_Profile_NoUserYet() {
	_, err := s.svc.Profile(context.Background())

	assert.ErrorIs(s.T(), err, domain.ErrNotFound)
}

func (s *UserServiceTestSuite) TestService_Profile_DerivedFields() {
	ctx := context.Background()

	user, _ := s.svc.EnsureGuest(ctx)
	user.Level = 2
	user.Exp = 150
	_, err := s.repo.Update(ctx, user)
	assert.NoError(s.T(), err)

	profile, err := s.svc.Profile(ctx)

	assert.NoError(s.T(), err)
	Expect(profile.LevelTitle).To(Equal("novice"))
	Expect(profile.LevelProgress).To(BeNumerically("~", 0.5, 0.001))
	Expect(profile.ExpToNextLevel).To(Equal(50))
	Expect(profile.ExpForLevel).To(Equal(200))
}

func (s *UserServiceTestSuite) TestService_OnItemCompleted_StreakAcrossDays() {
	ctx := context.Background()

	user, _, err := s.svc.OnItemCompleted(ctx, domain.PriorityLow)
	assert.NoError(s.T(), err)
	Expect(user.ContinuousDays).To(Equal(1))

	s.clock.Time = s.clock.Time.AddDate(0, 0, 1)

	user, _, err = s.svc.OnItemCompleted(ctx, domain.PriorityLow)
	assert.NoError(s.T(), err)
	Expect(user.ContinuousDays).To(Equal(2))

	s.clock.Time = s.clock.Time.AddDate(0, 0, 3)

	user, _, err = s.svc.OnItemCompleted(ctx, domain.PriorityLow)
	assert.NoError(s.T(), err)
	Expect(user.ContinuousDays).To(Equal(1))
}

// wrappedNotFoundRepo reports the missing user through a wrapped error,
// the way Update and Delete already do.
type wrappedNotFoundRepo struct {
	port.UserRepository
}

func (r wrappedNotFoundRepo) Current(ctx context.Context) (domain.User, error) {
	user, err := r.UserRepository.Current(ctx)
	if err != nil {
		return domain.User{}, fmt.Errorf("current user: %w", err)
	}

	return user, nil
}

func (s *UserServiceTestSuite) TestService_EnsureGuest_WrappedNotFound() {
	ctx := context.Background()

	bucket := dates.NewBucket(time.UTC)
	svc := service.NewUserService(wrappedNotFoundRepo{s.repo}, bucket, s.clock)

	user, err := svc.EnsureGuest(ctx)

	assert.NoError(s.T(), err)
	Expect(user.LoginType).To(Equal(domain.LoginGuest))
	Expect(user.Level).To(Equal(1))
}

func (s *UserServiceTestSuite) TestService_Logout_RemovesUser() {
	ctx := context.Background()

	s.svc.EnsureGuest(ctx)

	assert.NoError(s.T(), s.svc.Logout(ctx))

	_, err := s.svc.CurrentUser(ctx)
	assert.ErrorIs(s.T(), err, domain.ErrNotFound)
}

func (s *UserServiceTestSuite) TestService_StartGuestSession_TokenRoundTrip() {
	ctx := context.Background()

	user, token, err := s.auth.StartGuestSession(ctx)

	assert.NoError(s.T(), err)
	assert.NotEmpty(s.T(), token)

	subject, err := s.auth.VerifyToken(token)

	assert.NoError(s.T(), err)
	Expect(subject).To(Equal(user.ID))
}

func (s *UserServiceTestSuite) TestService_VerifyToken_Garbage() {
	_, err := s.auth.VerifyToken("not-a-token")

	assert.Error(s.T(), err)
}
