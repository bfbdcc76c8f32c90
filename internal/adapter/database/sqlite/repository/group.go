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

type GroupRepository struct {
	db        *sqlite.DB
	scanner   *sqlite.Scanner
	telemetry port.Telemetry
}

func NewGroupRepository(db *sqlite.DB, telemetry port.Telemetry) port.GroupRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &GroupRepository{
		db:        db,
		scanner:   sqlite.NewScanner(nil),
		telemetry: telemetry,
	}
}

func (gr *GroupRepository) List(ctx context.Context) ([]domain.TodoGroup, error) {
	query := gr.db.QueryBuilder.Select("*").
		From("todo_groups").
		OrderBy("ord ASC, id ASC")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	gr.telemetry.RecordRepositoryQuery(ctx, "List", "group", sqlStr, args)

	rows, err := gr.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := []domain.TodoGroup{}
	if err := gr.scanner.ScanRowsToSlice(rows, &groups); err != nil {
		return nil, err
	}

	return groups, nil
}

func (gr *GroupRepository) GetByID(ctx context.Context, id int64) (domain.TodoGroup, error) {
	query := gr.db.QueryBuilder.Select("*").
		From("todo_groups").
		Where(sq.Eq{"id": id}).
		Limit(1)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return domain.TodoGroup{}, err
	}

	rows, err := gr.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return domain.TodoGroup{}, err
	}
	defer rows.Close()

	var group domain.TodoGroup
	if err := gr.scanner.ScanRowToStruct(rows, &group); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.TodoGroup{}, domain.ErrNotFound
		}
		return domain.TodoGroup{}, err
	}

	return group, nil
}

func (gr *GroupRepository) Create(ctx context.Context, group domain.TodoGroup) (domain.TodoGroup, error) {
	ctx, span := gr.telemetry.StartRepositorySpan(ctx, "Create", "group", []attribute.KeyValue{
		attribute.String("db.system", "sqlite"),
		attribute.String("db.table", "todo_groups"),
		attribute.String("group.name", group.Name),
	})
	defer span.End()

	startTime := time.Now()

	query, args, err := gr.db.QueryBuilder.Insert("todo_groups").
		Columns("name", "ord", "created_at", "updated_at").
		Values(group.Name, group.Order, group.CreatedAt.UnixMilli(), group.UpdatedAt.UnixMilli()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		gr.telemetry.RecordRepositoryOperation(ctx, "Create", "group", time.Since(startTime), err)
		return domain.TodoGroup{}, err
	}

	gr.telemetry.RecordRepositoryQuery(ctx, "Create", "group", query, args)

	var id int64
	if err := gr.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		gr.telemetry.RecordRepositoryOperation(ctx, "Create", "group", time.Since(startTime), err)
		slog.Error("Group insert failed", "error", err, "name", group.Name)
		return domain.TodoGroup{}, err
	}

	saved, err := gr.GetByID(ctx, id)
	if err != nil {
		gr.telemetry.RecordRepositoryOperation(ctx, "Create", "group", time.Since(startTime), err)
		return domain.TodoGroup{}, err
	}

	gr.telemetry.RecordRepositoryOperation(ctx, "Create", "group", time.Since(startTime), nil)

	return saved, nil
}

func (gr *GroupRepository) Update(ctx context.Context, group domain.TodoGroup) (domain.TodoGroup, error) {
	ctx, span := gr.telemetry.StartRepositorySpan(ctx, "Update", "group", []attribute.KeyValue{
		attribute.String("db.system", "sqlite"),
		attribute.String("db.table", "todo_groups"),
		attribute.Int64("group.id", group.ID),
	})
	defer span.End()

	startTime := time.Now()

	values := group.ToMap()
	delete(values, "id")
	delete(values, "created_at")

	query, args, err := gr.db.QueryBuilder.Update("todo_groups").
		SetMap(values).
		Where(sq.Eq{"id": group.ID}).
		ToSql()
	if err != nil {
		gr.telemetry.RecordRepositoryOperation(ctx, "Update", "group", time.Since(startTime), err)
		return domain.TodoGroup{}, err
	}

	gr.telemetry.RecordRepositoryQuery(ctx, "Update", "group", query, args)

	result, err := gr.db.ExecContext(ctx, query, args...)
	if err != nil {
		gr.telemetry.RecordRepositoryOperation(ctx, "Update", "group", time.Since(startTime), err)
		return domain.TodoGroup{}, err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		err := fmt.Errorf("group %d: %w", group.ID, domain.ErrNotFound)
		gr.telemetry.RecordRepositoryOperation(ctx, "Update", "group", time.Since(startTime), err)
		return domain.TodoGroup{}, err
	}

	saved, err := gr.GetByID(ctx, group.ID)
	if err != nil {
		gr.telemetry.RecordRepositoryOperation(ctx, "Update", "group", time.Since(startTime), err)
		return domain.TodoGroup{}, err
	}

	gr.telemetry.RecordRepositoryOperation(ctx, "Update", "group", time.Since(startTime), nil)

	return saved, nil
}

// Delete removes the group; its items go with it through the foreign key
// cascade.
func (gr *GroupRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := gr.db.QueryBuilder.Delete("todo_groups").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	result, err := gr.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("group %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (gr *GroupRepository) MaxOrder(ctx context.Context) (int, error) {
	row := gr.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(ord), -1) FROM todo_groups")

	var max int
	if err := row.Scan(&max); err != nil {
		return 0, err
	}

	return max, nil
}
