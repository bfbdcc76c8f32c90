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
	. "ziluri/pkg/test"
)

type MemoServiceTestSuite struct {
	suite.Suite
	setup *TestSetup[port.MemoService]
	svc   *service.MemoService
	clock *dates.FixedClock
}

func (s *MemoServiceTestSuite) SetupTest() {
	s.T().Setenv("CURSOR_SECRET_KEY", "test-secret")

	db := InitTestDB()

	bucket := dates.NewBucket(time.UTC)
	s.clock = &dates.FixedClock{
		Time:   time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC),
		Bucket: bucket,
	}

	repo := repository.NewMemoRepository(db, nil)
	s.svc = service.NewMemoService(repo, s.clock)

	var svc port.MemoService = s.svc
	s.setup = SetupTest(s.T(), db, &svc)
}

func (s *MemoServiceTestSuite) TearDownTest() {
	TeardownTest(s.T(), s.setup)
}

func TestMemoServiceTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(MemoServiceTestSuite))
}

func (s *MemoServiceTestSuite) TestService_Create_DefaultsColor() {
	memo, err := s.svc.Create(context.Background(), domain.Memo{Title: "plain"})

	assert.NoError(s.T(), err)
	Expect(memo.Color).To(Equal("#FFFFFF"))
	Expect(memo.CreatedAt.UnixMilli()).To(Equal(s.clock.Now().UnixMilli()))
}

func (s *MemoServiceTestSuite) TestService_Create_KeepsExplicitColor() {
	memo, err := s.svc.Create(context.Background(), domain.Memo{Title: "colored", Color: "#112233"})

	assert.NoError(s.T(), err)
	Expect(memo.Color).To(Equal("#112233"))
}

func (s *MemoServiceTestSuite) TestService_Update_PreservesColorWhenBlank() {
	ctx := context.Background()

	memo, _ := s.svc.Create(ctx, domain.Memo{Title: "note", Color: "#112233"})

	memo.Color = ""
	memo.Content = "edited"

	updated, err := s.svc.Update(ctx, memo)

	assert.NoError(s.T(), err)
	Expect(updated.Color).To(Equal("#112233"))
	Expect(updated.Content).To(Equal("edited"))
}

func (s *MemoServiceTestSuite) TestService_Search_BlankQueryListsAll() {
	ctx := context.Background()

	s.svc.Create(ctx, domain.Memo{Title: "alpha"})
	s.svc.Create(ctx, domain.Memo{Title: "beta"})

	memos, err := s.svc.Search(ctx, "   ")

	assert.NoError(s.T(), err)
	assert.Len(s.T(), memos, 2)
}

func (s *MemoServiceTestSuite) TestService_ListPage_EncodesNextCursor() {
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		s.clock.Time = s.clock.Time.Add(time.Minute)
		_, err := s.svc.Create(ctx, domain.Memo{Title: fmt.Sprintf("memo %d", i)})
		assert.NoError(s.T(), err)
	}

	page, next, hasNext, err := s.svc.ListPage(ctx, 3, "")

	assert.NoError(s.T(), err)
	assert.True(s.T(), hasNext)
	assert.Len(s.T(), page, 3)
	assert.NotEmpty(s.T(), next)

	rest, next, hasNext, err := s.svc.ListPage(ctx, 3, next)

	assert.NoError(s.T(), err)
	assert.False(s.T(), hasNext)
	assert.Len(s.T(), rest, 2)
	assert.Empty(s.T(), next)
}

func (s *MemoServiceTestSuite) TestService_ListPage_DefaultsLimit() {
	ctx := context.Background()

	s.svc.Create(ctx, domain.Memo{Title: "only"})

	page, _, hasNext, err := s.svc.ListPage(ctx, 0, "")

	assert.NoError(s.T(), err)
	assert.False(s.T(), hasNext)
	assert.Len(s.T(), page, 1)
}

func (s *MemoServiceTestSuite) TestService_Delete_NotFound() {
	err := s.svc.Delete(context.Background(), 999)

	assert.ErrorIs(s.T(), err, domain.ErrNotFound)
}
