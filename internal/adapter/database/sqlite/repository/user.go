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

type UserRepository struct {
	db        *sqlite.DB
	scanner   *sqlite.Scanner
	telemetry port.Telemetry
}

func NewUserRepository(db *sqlite.DB, telemetry port.Telemetry) port.UserRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &UserRepository{
		db:        db,
		scanner:   sqlite.NewScanner(nil),
		telemetry: telemetry,
	}
}

func (ur *UserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	query := ur.db.QueryBuilder.Select("*").
		From("users").
		Where(sq.Eq{"id": id}).
		Limit(1)

	return ur.queryOne(ctx, query)
}

// Current returns the installation's single user. Kept deterministic by
// taking the oldest row should more than one ever exist.
func (ur *UserRepository) Current(ctx context.Context) (domain.User, error) {
	query := ur.db.QueryBuilder.Select("*").
		From("users").
		OrderBy("created_at ASC, id ASC").
		Limit(1)

	return ur.queryOne(ctx, query)
}

func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	ctx, span := ur.telemetry.StartRepositorySpan(ctx, "Create", "user", []attribute.KeyValue{
		attribute.String("db.system", "sqlite"),
		attribute.String("db.table", "users"),
		attribute.String("user.id", user.ID),
	})
	defer span.End()

	startTime := time.Now()

	query, args, err := ur.db.QueryBuilder.Insert("users").
		SetMap(user.ToMap()).
		ToSql()
	if err != nil {
		ur.telemetry.RecordRepositoryOperation(ctx, "Create", "user", time.Since(startTime), err)
		return domain.User{}, err
	}

	ur.telemetry.RecordRepositoryQuery(ctx, "Create", "user", query, args)

	if _, err := ur.db.ExecContext(ctx, query, args...); err != nil {
		ur.telemetry.RecordRepositoryOperation(ctx, "Create", "user", time.Since(startTime), err)
		slog.Error("User insert failed", "error", err, "user_id", user.ID)
		return domain.User{}, err
	}

	saved, err := ur.GetByID(ctx, user.ID)
	if err != nil {
		ur.telemetry.RecordRepositoryOperation(ctx, "Create", "user", time.Since(startTime), err)
		return domain.User{}, err
	}

	ur.telemetry.RecordBusinessEvent(ctx, "created", "user", saved.ID, saved.ID, map[string]interface{}{
		"login_type": string(saved.LoginType),
	})
	ur.telemetry.RecordRepositoryOperation(ctx, "Create", "user", time.Since(startTime), nil)

	return saved, nil
}

func (ur *UserRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	ctx, span := ur.telemetry.StartRepositorySpan(ctx, "Update", "user", []attribute.KeyValue{
		attribute.String("db.system", "sqlite"),
		attribute.String("db.table", "users"),
		attribute.String("user.id", user.ID),
	})
	defer span.End()

	startTime := time.Now()

	values := user.ToMap()
	delete(values, "id")
	delete(values, "created_at")

	query, args, err := ur.db.QueryBuilder.Update("users").
		SetMap(values).
		Where(sq.Eq{"id": user.ID}).
		ToSql()
	if err != nil {
		ur.telemetry.RecordRepositoryOperation(ctx, "Update", "user", time.Since(startTime), err)
		return domain.User{}, err
	}

	ur.telemetry.RecordRepositoryQuery(ctx, "Update", "user", query, args)

	result, err := ur.db.ExecContext(ctx, query, args...)
	if err != nil {
		ur.telemetry.RecordRepositoryOperation(ctx, "Update", "user", time.Since(startTime), err)
		return domain.User{}, err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		err := fmt.Errorf("user %s: %w", user.ID, domain.ErrNotFound)
		ur.telemetry.RecordRepositoryOperation(ctx, "Update", "user", time.Since(startTime), err)
		return domain.User{}, err
	}

	saved, err := ur.GetByID(ctx, user.ID)
	if err != nil {
		ur.telemetry.RecordRepositoryOperation(ctx, "Update", "user", time.Since(startTime), err)
		return domain.User{}, err
	}

	ur.telemetry.RecordRepositoryOperation(ctx, "Update", "user", time.Since(startTime), nil)

	return saved, nil
}

func (ur *UserRepository) Delete(ctx context.Context, id string) error {
	query, args, err := ur.db.QueryBuilder.Delete("users").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	result, err := ur.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (ur *UserRepository) DeleteAll(ctx context.Context) error {
	_, err := ur.db.ExecContext(ctx, "DELETE FROM users")
	return err
}

func (ur *UserRepository) queryOne(ctx context.Context, query sq.SelectBuilder) (domain.User, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return domain.User{}, err
	}

	rows, err := ur.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return domain.User{}, err
	}
	defer rows.Close()

	var user domain.User
	if err := ur.scanner.ScanRowToStruct(rows, &user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}

	return user, nil
}
