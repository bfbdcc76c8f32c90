package service

import (
	"context"
	"strings"

	"ziluri/internal/core/domain"
	"ziluri/internal/core/port"
	"ziluri/pkg/db/cursor"
)

type MemoService struct {
	repo  port.MemoRepository
	clock port.Clock
}

func NewMemoService(repo port.MemoRepository, clock port.Clock) *MemoService {
	return &MemoService{
		repo:  repo,
		clock: clock,
	}
}

func (ms *MemoService) List(ctx context.Context) ([]domain.Memo, error) {
	return ms.repo.List(ctx)
}

// ListPage returns one page plus the cursor for the next one, empty when
// the page is the last.
func (ms *MemoService) ListPage(ctx context.Context, limit int, cursorToken string) ([]domain.Memo, string, bool, error) {
	if limit <= 0 {
		limit = 20
	}

	memos, hasNext, err := ms.repo.ListPage(ctx, limit, cursorToken)
	if err != nil {
		return nil, "", false, err
	}

	nextCursor := ""
	if hasNext && len(memos) > 0 {
		last := memos[len(memos)-1]
		nextCursor = cursor.EncodeCursor(last.UpdatedAt.UnixMilli(), last.ID)
	}

	return memos, nextCursor, hasNext, nil
}

func (ms *MemoService) Get(ctx context.Context, id int64) (domain.Memo, error) {
	return ms.repo.GetByID(ctx, id)
}

func (ms *MemoService) Create(ctx context.Context, memo domain.Memo) (domain.Memo, error) {
	now := ms.clock.Now()

	if memo.Color == "" {
		memo.Color = "#FFFFFF"
	}
	memo.CreatedAt = now
	memo.UpdatedAt = now

	return ms.repo.Create(ctx, memo)
}

func (ms *MemoService) Update(ctx context.Context, memo domain.Memo) (domain.Memo, error) {
	current, err := ms.repo.GetByID(ctx, memo.ID)
	if err != nil {
		return domain.Memo{}, err
	}

	current.Title = memo.Title
	current.Content = memo.Content
	if memo.Color != "" {
		current.Color = memo.Color
	}
	current.Pinned = memo.Pinned
	current.Images = memo.Images
	current.CheckItems = memo.CheckItems
	current.UpdatedAt = ms.clock.Now()

	return ms.repo.Update(ctx, current)
}

func (ms *MemoService) Delete(ctx context.Context, id int64) error {
	return ms.repo.Delete(ctx, id)
}

func (ms *MemoService) Search(ctx context.Context, query string) ([]domain.Memo, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return ms.repo.List(ctx)
	}

	return ms.repo.Search(ctx, query)
}
