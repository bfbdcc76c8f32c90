package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	database "ziluri/internal/adapter/database/sqlite"
	"ziluri/internal/adapter/database/sqlite/repository"
	"ziluri/internal/core/domain"
	"ziluri/internal/core/port"
	"ziluri/pkg/db/cursor"
	. "ziluri/pkg/test"
	"ziluri/pkg/test/factory"
)

type MemoRepositoryTestSuite struct {
	suite.Suite
	setup *TestSetup[port.MemoRepository]
}

func (s *MemoRepositoryTestSuite) SetupTest() {
	s.T().Setenv("CURSOR_SECRET_KEY", "test-secret")

	db := InitTestDB()
	repo := repository.NewMemoRepository(db, nil)
	s.setup = SetupTest(s.T(), db, &repo)
}

func (s *MemoRepositoryTestSuite) TearDownTest() {
	TeardownTest(s.T(), s.setup)
}

func TestMemoRepositoryTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(MemoRepositoryTestSuite))
}

func (s *MemoRepositoryTestSuite) repo() port.MemoRepository {
	return *s.setup.Repo
}

func (s *MemoRepositoryTestSuite) createMemo(custom func(*domain.Memo)) domain.Memo {
	memo := factory.NewMemo[domain.Memo]()
	memo.Images = nil
	memo.CheckItems = nil

	now := time.Now()
	memo.CreatedAt = now
	memo.UpdatedAt = now

	if custom != nil {
		custom(&memo)
	}

	saved, err := s.repo().Create(context.Background(), memo)
	assert.NoError(s.T(), err)

	return saved
}

func (s *MemoRepositoryTestSuite) TestRepository_Create_RoundTripJSONColumns() {
	memo := s.createMemo(func(m *domain.Memo) {
		m.Title = "shopping"
		m.Content = "weekly groceries"
		m.Color = "#FFAA00"
		m.Pinned = true
		m.Images = []string{"a.png", "b.png"}
		m.CheckItems = []domain.MemoCheckItem{
			{ID: "1", Content: "milk", Checked: true},
			{ID: "2", Content: "bread"},
		}
	})

	loaded, err := s.repo().GetByID(context.Background(), memo.ID)

	assert.NoError(s.T(), err)
	Expect(loaded.Title).To(Equal("shopping"))
	Expect(loaded.Color).To(Equal("#FFAA00"))
	Expect(loaded.Pinned).To(BeTrue())
	Expect(loaded.Images).To(Equal([]string{"a.png", "b.png"}))
	Expect(loaded.CheckItems).To(HaveLen(2))
	Expect(loaded.CheckItems[0].Checked).To(BeTrue())
	Expect(loaded.CheckItems[1].Content).To(Equal("bread"))
}

func (s *MemoRepositoryTestSuite) TestRepository_Create_DollarPlaceholders() {
	dollar := database.FromSQLWithPlaceholder(s.setup.DB.DB, sq.Dollar)
	repo := repository.NewMemoRepository(dollar, nil)

	now := time.Now()
	memo, err := repo.Create(context.Background(), domain.Memo{
		Title:     "portable",
		Color:     "#FFFFFF",
		CreatedAt: now,
		UpdatedAt: now,
	})

	assert.NoError(s.T(), err)
	assert.NotZero(s.T(), memo.ID)
	assert.Equal(s.T(), "portable", memo.Title)
}

func (s *MemoRepositoryTestSuite) TestRepository_GetByID_NotFound() {
	_, err := s.repo().GetByID(context.Background(), 404)

	assert.ErrorIs(s.T(), err, domain.ErrNotFound)
}

func (s *MemoRepositoryTestSuite) TestRepository_List_PinnedFirstThenRecency() {
	base := time.Now().Add(-time.Hour)

	s.createMemo(func(m *domain.Memo) {
		m.Title = "old"
		m.CreatedAt = base
		m.UpdatedAt = base
	})
	s.createMemo(func(m *domain.Memo) {
		m.Title = "recent"
		m.CreatedAt = base.Add(30 * time.Minute)
		m.UpdatedAt = base.Add(30 * time.Minute)
	})
	s.createMemo(func(m *domain.Memo) {
		m.Title = "pinned"
		m.Pinned = true
		m.CreatedAt = base
		m.UpdatedAt = base
	})

	memos, err := s.repo().List(context.Background())

	assert.NoError(s.T(), err)
	assert.Len(s.T(), memos, 3)
	Expect(memos[0].Title).To(Equal("pinned"))
	Expect(memos[1].Title).To(Equal("recent"))
	Expect(memos[2].Title).To(Equal("old"))
}

func (s *MemoRepositoryTestSuite) TestRepository_ListPage_WalksAllPages() {
	base := time.Now().Add(-time.Hour)

	for i := 0; i < 5; i++ {
		at := base.Add(time.Duration(i) * time.Minute)
		title := fmt.Sprintf("memo %d", i)
		s.createMemo(func(m *domain.Memo) {
			m.Title = title
			m.CreatedAt = at
			m.UpdatedAt = at
		})
	}

	page1, hasNext, err := s.repo().ListPage(context.Background(), 2, "")
	assert.NoError(s.T(), err)
	assert.True(s.T(), hasNext)
	assert.Len(s.T(), page1, 2)
	Expect(page1[0].Title).To(Equal("memo 4"))

	last := page1[len(page1)-1]
	token := cursor.EncodeCursor(last.UpdatedAt.UnixMilli(), last.ID)

	page2, hasNext, err := s.repo().ListPage(context.Background(), 2, token)
	assert.NoError(s.T(), err)
	assert.True(s.T(), hasNext)
	Expect(page2[0].Title).To(Equal("memo 2"))

	last = page2[len(page2)-1]
	token = cursor.EncodeCursor(last.UpdatedAt.UnixMilli(), last.ID)

	page3, hasNext, err := s.repo().ListPage(context.Background(), 2, token)
	assert.NoError(s.T(), err)
	assert.False(s.T(), hasNext)
	assert.Len(s.T(), page3, 1)
	Expect(page3[0].Title).To(Equal("memo 0"))
}

func (s *MemoRepositoryTestSuite) TestRepository_ListPage_RejectsTamperedCursor() {
	_, _, err := s.repo().ListPage(context.Background(), 2, "bogus.cursor")

	assert.Error(s.T(), err)
}

func (s *MemoRepositoryTestSuite) TestRepository_Update() {
	memo := s.createMemo(func(m *domain.Memo) {
		m.Title = "draft"
		m.Content = "v1"
	})

	memo.Content = "v2"
	memo.Pinned = true
	memo.CheckItems = []domain.MemoCheckItem{{ID: "1", Content: "done", Checked: true}}

	updated, err := s.repo().Update(context.Background(), memo)

	assert.NoError(s.T(), err)
	Expect(updated.Content).To(Equal("v2"))
	Expect(updated.Pinned).To(BeTrue())
	Expect(updated.CheckItems).To(HaveLen(1))
}

func (s *MemoRepositoryTestSuite) TestRepository_Update_NotFound() {
	_, err := s.repo().Update(context.Background(), domain.Memo{ID: 999, Title: "ghost"})

	assert.ErrorIs(s.T(), err, domain.ErrNotFound)
}

func (s *MemoRepositoryTestSuite) TestRepository_Delete() {
	memo := s.createMemo(func(m *domain.Memo) {
		m.Title = "temp"
	})

	assert.NoError(s.T(), s.repo().Delete(context.Background(), memo.ID))

	_, err := s.repo().GetByID(context.Background(), memo.ID)
	assert.ErrorIs(s.T(), err, domain.ErrNotFound)
}

func (s *MemoRepositoryTestSuite) TestRepository_Search_TitleAndContent() {
	s.createMemo(func(m *domain.Memo) {
		m.Title = "meeting notes"
		m.Content = "quarterly planning"
	})
	s.createMemo(func(m *domain.Memo) {
		m.Title = "recipes"
		m.Content = "pasta with meetballs"
	})
	s.createMemo(func(m *domain.Memo) {
		m.Title = "unrelated"
		m.Content = "nothing here"
	})

	memos, err := s.repo().Search(context.Background(), "meet")

	assert.NoError(s.T(), err)
	assert.Len(s.T(), memos, 2)
}
