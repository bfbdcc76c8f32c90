package postgres

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"

	"github.com/Masterminds/squirrel"
	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"go.opentelemetry.io/otel"

	database "ziluri/internal/adapter/database/sqlite"
)

// NewDB opens Postgres through the pgx stdlib driver and returns the
// shared DB wrapper with dollar placeholders. The repositories build every
// statement through the wrapper's QueryBuilder and read insert ids via
// RETURNING, so they work against either driver.
func NewDB(ctx context.Context, url, migrationsPath string) (*database.DB, error) {
	if url == "" {
		return nil, errors.New("database url is not set")
	}

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	pool.Close()

	if err := RunMigrations(url, migrationsPath); err != nil {
		return nil, err
	}

	sqlDB, err := otelsql.Open("pgx", url,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName("ziluri"),
		otelsql.WithTracerProvider(otel.GetTracerProvider()),
	)
	if err != nil {
		return nil, err
	}

	return database.FromSQLWithPlaceholder(sqlDB, squirrel.Dollar), nil
}

func RunMigrations(url, migrationsPath string) error {
	if migrationsPath == "" {
		migrationsPath = "db/migrations"
	}
	migrationsPath = filepath.Join(migrationsPath, "postgres")

	sqlDB, err := sql.Open("pgx", url)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://"+migrationsPath,
		"postgres",
		driver,
	)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}

	return nil
}
