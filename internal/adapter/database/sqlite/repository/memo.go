package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"go.opentelemetry.io/otel/attribute"

	"ziluri/internal/adapter/database/sqlite"
	"ziluri/internal/core/domain"
	"ziluri/internal/core/port"
	tel "ziluri/internal/core/telemetry"
	"ziluri/pkg/db/cursor"
)

// MemoRepository scans rows by hand: the images and check_items columns
// hold JSON and need decoding the reflection scanner cannot do.
type MemoRepository struct {
	db        *sqlite.DB
	telemetry port.Telemetry
}

func NewMemoRepository(db *sqlite.DB, telemetry port.Telemetry) port.MemoRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &MemoRepository{
		db:        db,
		telemetry: telemetry,
	}
}

const memoColumns = "id, title, content, color, pinned, images, check_items, created_at, updated_at"

func (mr *MemoRepository) List(ctx context.Context) ([]domain.Memo, error) {
	query := mr.db.QueryBuilder.Select(memoColumns).
		From("memos").
		OrderBy("pinned DESC, updated_at DESC, id DESC")

	return mr.queryMemos(ctx, "List", query)
}

// ListPage paginates by recency with a signed keyset cursor. Pinned-first
// ordering only applies to the unpaginated List.
func (mr *MemoRepository) ListPage(ctx context.Context, limit int, cursorToken string) ([]domain.Memo, bool, error) {
	actualLimit := limit + 1

	query := mr.db.QueryBuilder.Select(memoColumns).
		From("memos").
		OrderBy("updated_at DESC, id DESC").
		Limit(uint64(actualLimit))

	if cursorToken != "" {
		millis, id, err := cursor.DecodeCursor(cursorToken)
		if err != nil {
			return nil, false, err
		}

		query = query.Where(sq.Or{
			sq.Lt{"updated_at": millis},
			sq.And{
				sq.Eq{"updated_at": millis},
				sq.Lt{"id": id},
			},
		})
	}

	memos, err := mr.queryMemos(ctx, "ListPage", query)
	if err != nil {
		return nil, false, err
	}

	hasNext := len(memos) == actualLimit
	if hasNext {
		memos = memos[:limit]
	}

	return memos, hasNext, nil
}

func (mr *MemoRepository) GetByID(ctx context.Context, id int64) (domain.Memo, error) {
	query := mr.db.QueryBuilder.Select(memoColumns).
		From("memos").
		Where(sq.Eq{"id": id}).
		Limit(1)

	memos, err := mr.queryMemos(ctx, "GetByID", query)
	if err != nil {
		return domain.Memo{}, err
	}

	if len(memos) == 0 {
		return domain.Memo{}, domain.ErrNotFound
	}

	return memos[0], nil
}

func (mr *MemoRepository) Create(ctx context.Context, memo domain.Memo) (domain.Memo, error) {
	ctx, span := mr.telemetry.StartRepositorySpan(ctx, "Create", "memo", []attribute.KeyValue{
		attribute.String("db.system", "sqlite"),
		attribute.String("db.table", "memos"),
	})
	defer span.End()

	startTime := time.Now()

	images, err := sqlite.EncodeImages(memo.Images)
	if err != nil {
		mr.telemetry.RecordRepositoryOperation(ctx, "Create", "memo", time.Since(startTime), err)
		return domain.Memo{}, err
	}

	checkItems, err := sqlite.EncodeCheckItems(memo.CheckItems)
	if err != nil {
		mr.telemetry.RecordRepositoryOperation(ctx, "Create", "memo", time.Since(startTime), err)
		return domain.Memo{}, err
	}

	query, args, err := mr.db.QueryBuilder.Insert("memos").
		Columns("title", "content", "color", "pinned", "images", "check_items", "created_at", "updated_at").
		Values(memo.Title, memo.Content, memo.Color, memo.Pinned, images, checkItems,
			memo.CreatedAt.UnixMilli(), memo.UpdatedAt.UnixMilli()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		mr.telemetry.RecordRepositoryOperation(ctx, "Create", "memo", time.Since(startTime), err)
		return domain.Memo{}, err
	}

	mr.telemetry.RecordRepositoryQuery(ctx, "Create", "memo", query, args)

	var id int64
	if err := mr.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		mr.telemetry.RecordRepositoryOperation(ctx, "Create", "memo", time.Since(startTime), err)
		slog.Error("Memo insert failed", "error", err)
		return domain.Memo{}, err
	}

	saved, err := mr.GetByID(ctx, id)
	if err != nil {
		mr.telemetry.RecordRepositoryOperation(ctx, "Create", "memo", time.Since(startTime), err)
		return domain.Memo{}, err
	}

	mr.telemetry.RecordRepositoryOperation(ctx, "Create", "memo", time.Since(startTime), nil)

	return saved, nil
}

func (mr *MemoRepository) Update(ctx context.Context, memo domain.Memo) (domain.Memo, error) {
	ctx, span := mr.telemetry.StartRepositorySpan(ctx, "Update", "memo", []attribute.KeyValue{
		attribute.String("db.system", "sqlite"),
		attribute.String("db.table", "memos"),
		attribute.Int64("memo.id", memo.ID),
	})
	defer span.End()

	startTime := time.Now()

	images, err := sqlite.EncodeImages(memo.Images)
	if err != nil {
		mr.telemetry.RecordRepositoryOperation(ctx, "Update", "memo", time.Since(startTime), err)
		return domain.Memo{}, err
	}

	checkItems, err := sqlite.EncodeCheckItems(memo.CheckItems)
	if err != nil {
		mr.telemetry.RecordRepositoryOperation(ctx, "Update", "memo", time.Since(startTime), err)
		return domain.Memo{}, err
	}

	query, args, err := mr.db.QueryBuilder.Update("memos").
		SetMap(map[string]interface{}{
			"title":       memo.Title,
			"content":     memo.Content,
			"color":       memo.Color,
			"pinned":      memo.Pinned,
			"images":      images,
			"check_items": checkItems,
			"updated_at":  memo.UpdatedAt.UnixMilli(),
		}).
		Where(sq.Eq{"id": memo.ID}).
		ToSql()
	if err != nil {
		mr.telemetry.RecordRepositoryOperation(ctx, "Update", "memo", time.Since(startTime), err)
		return domain.Memo{}, err
	}

	mr.telemetry.RecordRepositoryQuery(ctx, "Update", "memo", query, args)

	result, err := mr.db.ExecContext(ctx, query, args...)
	if err != nil {
		mr.telemetry.RecordRepositoryOperation(ctx, "Update", "memo", time.Since(startTime), err)
		return domain.Memo{}, err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		err := fmt.Errorf("memo %d: %w", memo.ID, domain.ErrNotFound)
		mr.telemetry.RecordRepositoryOperation(ctx, "Update", "memo", time.Since(startTime), err)
		return domain.Memo{}, err
	}

	saved, err := mr.GetByID(ctx, memo.ID)
	if err != nil {
		mr.telemetry.RecordRepositoryOperation(ctx, "Update", "memo", time.Since(startTime), err)
		return domain.Memo{}, err
	}

	mr.telemetry.RecordRepositoryOperation(ctx, "Update", "memo", time.Since(startTime), nil)

	return saved, nil
}

func (mr *MemoRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := mr.db.QueryBuilder.Delete("memos").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	result, err := mr.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("memo %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (mr *MemoRepository) Search(ctx context.Context, q string) ([]domain.Memo, error) {
	pattern := "%" + q + "%"

	query := mr.db.QueryBuilder.Select(memoColumns).
		From("memos").
		Where(sq.Or{
			sq.Like{"title": pattern},
			sq.Like{"content": pattern},
		}).
		OrderBy("pinned DESC, updated_at DESC, id DESC")

	return mr.queryMemos(ctx, "Search", query)
}

func (mr *MemoRepository) queryMemos(ctx context.Context, operation string, query sq.SelectBuilder) ([]domain.Memo, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	mr.telemetry.RecordRepositoryQuery(ctx, operation, "memo", sqlStr, args)

	rows, err := mr.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	memos := []domain.Memo{}
	for rows.Next() {
		memo, err := scanMemo(rows)
		if err != nil {
			return nil, err
		}
		memos = append(memos, memo)
	}

	return memos, rows.Err()
}

func scanMemo(rows *sql.Rows) (domain.Memo, error) {
	var (
		memo       domain.Memo
		images     string
		checkItems string
		createdAt  int64
		updatedAt  int64
	)

	err := rows.Scan(&memo.ID, &memo.Title, &memo.Content, &memo.Color, &memo.Pinned,
		&images, &checkItems, &createdAt, &updatedAt)
	if err != nil {
		return domain.Memo{}, err
	}

	memo.Images, err = sqlite.DecodeImages(images)
	if err != nil {
		return domain.Memo{}, err
	}

	memo.CheckItems, err = sqlite.DecodeCheckItems(checkItems)
	if err != nil {
		return domain.Memo{}, err
	}

	memo.CreatedAt = time.UnixMilli(createdAt)
	memo.UpdatedAt = time.UnixMilli(updatedAt)

	return memo, nil
}
