package sqlite

import (
	"database/sql"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/Masterminds/squirrel"

	_ "github.com/mattn/go-sqlite3"
	sqldblogger "github.com/simukti/sqldb-logger"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"go.opentelemetry.io/otel"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/rs/zerolog"
	"github.com/simukti/sqldb-logger/logadapter/zerologadapter"
)

type DB struct {
	*sql.DB
	QueryBuilder *squirrel.StatementBuilderType
}

func New(dbPath, migrationsPath string) *sql.DB {
	if dbPath == "" {
		dbPath = "ziluri.db"
	}

	if migrationsPath == "" {
		migrationsPath = "db/migrations"
	}

	dsn := dbPath + "?_foreign_keys=on"

	// migrationsPath is the base dir holding one DDL dialect per driver.
	migrationsPath = filepath.Join(migrationsPath, "sqlite")

	migrationDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.Fatal(err)
	}

	RunMigrations(migrationDB, migrationsPath)
	migrationDB.Close()

	sqlDB, err := otelsql.Open("sqlite3", dsn,
		otelsql.WithDBSystem("sqlite"),
		otelsql.WithDBName("ziluri"),
		otelsql.WithTracerProvider(otel.GetTracerProvider()),
	)
	if err != nil {
		log.Fatal(err)
	}

	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	logger := zerolog.New(os.Stdout)

	return sqldblogger.OpenDriver(dsn, sqlDB.Driver(), zerologadapter.New(logger))
}

func NewDB(dbPath, migrationsPath string) (*DB, error) {
	sqlDB := New(dbPath, migrationsPath)
	queryBuilder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

	return &DB{
		DB:           sqlDB,
		QueryBuilder: &queryBuilder,
	}, nil
}

// FromSQL wraps an already opened connection; tests use it with in-memory
// databases.
func FromSQL(sqlDB *sql.DB) *DB {
	return FromSQLWithPlaceholder(sqlDB, squirrel.Question)
}

// FromSQLWithPlaceholder lets other drivers reuse the wrapper with their
// placeholder style.
func FromSQLWithPlaceholder(sqlDB *sql.DB, format squirrel.PlaceholderFormat) *DB {
	queryBuilder := squirrel.StatementBuilder.PlaceholderFormat(format)

	return &DB{
		DB:           sqlDB,
		QueryBuilder: &queryBuilder,
	}
}

func RunMigrations(db *sql.DB, migrationsPath string) {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		log.Fatal("Failed to create migration driver:", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://"+migrationsPath,
		"sqlite3",
		driver,
	)
	if err != nil {
		log.Fatal("Failed to create migration instance:", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal("Failed to run migrations:", err)
	}
}
