package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"go.opentelemetry.io/otel/attribute"

	"ziluri/internal/adapter/database/sqlite"
	"ziluri/internal/core/domain"
	"ziluri/internal/core/port"
	tel "ziluri/internal/core/telemetry"
)

type ItemRepository struct {
	db        *sqlite.DB
	scanner   *sqlite.Scanner
	telemetry port.Telemetry
}

func NewItemRepository(db *sqlite.DB, telemetry port.Telemetry) port.ItemRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &ItemRepository{
		db:        db,
		scanner:   sqlite.NewScanner(nil),
		telemetry: telemetry,
	}
}

func (ir *ItemRepository) GetByID(ctx context.Context, id int64) (domain.TodoItem, error) {
	query := ir.db.QueryBuilder.Select("*").
		From("todo_items").
		Where(sq.Eq{"id": id}).
		Limit(1)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return domain.TodoItem{}, err
	}

	rows, err := ir.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return domain.TodoItem{}, err
	}
	defer rows.Close()

	var item domain.TodoItem
	if err := ir.scanner.ScanRowToStruct(rows, &item); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.TodoItem{}, domain.ErrNotFound
		}
		return domain.TodoItem{}, err
	}

	return item, nil
}

func (ir *ItemRepository) ListByGroup(ctx context.Context, groupID int64) ([]domain.TodoItem, error) {
	query := ir.db.QueryBuilder.Select("*").
		From("todo_items").
		Where(sq.Eq{"group_id": groupID}).
		OrderBy("ord ASC, id ASC")

	return ir.queryItems(ctx, "ListByGroup", query)
}

// ListActiveOn matches items dated on the day plus multi-day items whose
// span contains it. Dates are persisted as day-start epoch milliseconds.
func (ir *ItemRepository) ListActiveOn(ctx context.Context, day time.Time) ([]domain.TodoItem, error) {
	dayMillis := dayStartMillis(day)

	query := ir.db.QueryBuilder.Select("*").
		From("todo_items").
		Where(sq.Or{
			sq.Eq{"date": dayMillis},
			sq.And{
				sq.LtOrEq{"start_date": dayMillis},
				sq.GtOrEq{"end_date": dayMillis},
			},
		}).
		OrderBy("group_id ASC, ord ASC, id ASC")

	return ir.queryItems(ctx, "ListActiveOn", query)
}

func (ir *ItemRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.TodoItem, error) {
	query := ir.db.QueryBuilder.Select("*").
		From("todo_items").
		Where(sq.GtOrEq{"date": dayStartMillis(start)}).
		Where(sq.LtOrEq{"date": dayStartMillis(end)}).
		OrderBy("date ASC, group_id ASC, ord ASC")

	return ir.queryItems(ctx, "ListByDateRange", query)
}

func (ir *ItemRepository) Create(ctx context.Context, item domain.TodoItem) (domain.TodoItem, error) {
	ctx, span := ir.telemetry.StartRepositorySpan(ctx, "Create", "item", []attribute.KeyValue{
		attribute.String("db.system", "sqlite"),
		attribute.String("db.table", "todo_items"),
		attribute.Int64("group.id", item.GroupID),
	})
	defer span.End()

	startTime := time.Now()

	values := item.ToMap()
	delete(values, "id")

	query, args, err := ir.db.QueryBuilder.Insert("todo_items").
		SetMap(values).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		ir.telemetry.RecordRepositoryOperation(ctx, "Create", "item", time.Since(startTime), err)
		return domain.TodoItem{}, err
	}

	ir.telemetry.RecordRepositoryQuery(ctx, "Create", "item", query, args)

	var id int64
	if err := ir.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		ir.telemetry.RecordRepositoryOperation(ctx, "Create", "item", time.Since(startTime), err)
		slog.Error("Item insert failed", "error", err, "group_id", item.GroupID)
		return domain.TodoItem{}, err
	}

	saved, err := ir.GetByID(ctx, id)
	if err != nil {
		ir.telemetry.RecordRepositoryOperation(ctx, "Create", "item", time.Since(startTime), err)
		return domain.TodoItem{}, err
	}

	ir.telemetry.RecordRepositoryOperation(ctx, "Create", "item", time.Since(startTime), nil)

	return saved, nil
}

func (ir *ItemRepository) Update(ctx context.Context, item domain.TodoItem) (domain.TodoItem, error) {
	ctx, span := ir.telemetry.StartRepositorySpan(ctx, "Update", "item", []attribute.KeyValue{
		attribute.String("db.system", "sqlite"),
		attribute.String("db.table", "todo_items"),
		attribute.Int64("item.id", item.ID),
	})
	defer span.End()

	startTime := time.Now()

	values := item.ToMap()
	delete(values, "id")
	delete(values, "created_at")

	query, args, err := ir.db.QueryBuilder.Update("todo_items").
		SetMap(values).
		Where(sq.Eq{"id": item.ID}).
		ToSql()
	if err != nil {
		ir.telemetry.RecordRepositoryOperation(ctx, "Update", "item", time.Since(startTime), err)
		return domain.TodoItem{}, err
	}

	ir.telemetry.RecordRepositoryQuery(ctx, "Update", "item", query, args)

	result, err := ir.db.ExecContext(ctx, query, args...)
	if err != nil {
		ir.telemetry.RecordRepositoryOperation(ctx, "Update", "item", time.Since(startTime), err)
		return domain.TodoItem{}, err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		err := fmt.Errorf("item %d: %w", item.ID, domain.ErrNotFound)
		ir.telemetry.RecordRepositoryOperation(ctx, "Update", "item", time.Since(startTime), err)
		return domain.TodoItem{}, err
	}

	saved, err := ir.GetByID(ctx, item.ID)
	if err != nil {
		ir.telemetry.RecordRepositoryOperation(ctx, "Update", "item", time.Since(startTime), err)
		return domain.TodoItem{}, err
	}

	ir.telemetry.RecordRepositoryOperation(ctx, "Update", "item", time.Since(startTime), nil)

	return saved, nil
}

func (ir *ItemRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := ir.db.QueryBuilder.Delete("todo_items").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	result, err := ir.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (ir *ItemRepository) MaxOrder(ctx context.Context, groupID int64) (int, error) {
	sqlStr, args, err := ir.db.QueryBuilder.Select("COALESCE(MAX(ord), -1)").
		From("todo_items").
		Where(sq.Eq{"group_id": groupID}).
		ToSql()
	if err != nil {
		return 0, err
	}

	var max int
	if err := ir.db.QueryRowContext(ctx, sqlStr, args...).Scan(&max); err != nil {
		return 0, err
	}

	return max, nil
}

func (ir *ItemRepository) TotalCompletedCount(ctx context.Context) (int, error) {
	sqlStr, args, err := ir.db.QueryBuilder.Select("COUNT(*)").
		From("todo_items").
		Where(sq.Eq{"completed": true}).
		ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := ir.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (ir *ItemRepository) queryItems(ctx context.Context, operation string, query sq.SelectBuilder) ([]domain.TodoItem, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	ir.telemetry.RecordRepositoryQuery(ctx, operation, "item", sqlStr, args)

	rows, err := ir.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.TodoItem{}
	if err := ir.scanner.ScanRowsToSlice(rows, &items); err != nil {
		return nil, err
	}

	return items, nil
}

func dayStartMillis(t time.Time) int64 {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location()).UnixMilli()
}
