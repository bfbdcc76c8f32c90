package port

import (
	"context"

	"ziluri/internal/core/domain"
)

type MemoRepository interface {
	// List returns memos pinned-first, most recently updated first.
	List(ctx context.Context) ([]domain.Memo, error)
	// ListPage returns up to limit memos ordered by recency, plus a
	// has-next flag for keyset pagination.
	ListPage(ctx context.Context, limit int, cursor string) ([]domain.Memo, bool, error)
	GetByID(ctx context.Context, id int64) (domain.Memo, error)
	Create(ctx context.Context, memo domain.Memo) (domain.Memo, error)
	Update(ctx context.Context, memo domain.Memo) (domain.Memo, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string) ([]domain.Memo, error)
}

type MemoService interface {
	List(ctx context.Context) ([]domain.Memo, error)
	ListPage(ctx context.Context, limit int, cursor string) ([]domain.Memo, string, bool, error)
	Get(ctx context.Context, id int64) (domain.Memo, error)
	Create(ctx context.Context, memo domain.Memo) (domain.Memo, error)
	Update(ctx context.Context, memo domain.Memo) (domain.Memo, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string) ([]domain.Memo, error)
}
