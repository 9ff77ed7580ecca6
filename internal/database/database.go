// FilePath: internal/database/database.go
package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/itsatony/fieldhub/internal/config"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	nuts "github.com/vaudience/go-nuts"
	_ "modernc.org/sqlite"
)

// DB is an interface that every supported relational store must implement
type DB interface {
	Close() error
	Ping(ctx context.Context) error
	GetDB() *sqlx.DB
	Driver() string
}

// SQLDB wraps an sqlx connection together with the driver it was opened with.
type SQLDB struct {
	db     *sqlx.DB
	driver string
}

// Transaction represents a database transaction
type Transaction interface {
	Commit() error
	Rollback() error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	Rebind(query string) string
}

// Repository represents common repository operations
type Repository interface {
	BeginTx(ctx context.Context) (Transaction, error)
}

// Open connects to the store selected by cfg.Driver.
func Open(ctx context.Context, cfg config.DatabaseConfig) (DB, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return NewSQLiteDB(ctx, cfg.SQLite)
	case config.DriverPostgres:
		return NewPostgresDB(ctx, cfg.Postgres)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func init() {
	// sqlx only knows the mattn driver name for "?" placeholders
	sqlx.BindDriver(config.DriverSQLite, sqlx.QUESTION)
}

// NewSQLiteDB opens a file-backed (or ":memory:") SQLite database.
func NewSQLiteDB(ctx context.Context, cfg config.SQLiteConfig) (DB, error) {
	db, err := sqlx.Open(config.DriverSQLite, sqliteDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("error opening SQLite: %w", err)
	}

	// One connection: writers are serialized and ":memory:" stays a single database
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to SQLite: %w", err)
	}

	nuts.L.Infof("[SQLiteDB] Opened %s", cfg.Path)
	return &SQLDB{db: db, driver: config.DriverSQLite}, nil
}

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(ctx context.Context, cfg config.PostgresConfig) (DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sqlx.ConnectContext(ctx, config.DriverPostgres, dsn)
	if err != nil {
		return nil, fmt.Errorf("error connecting to PostgreSQL: %w", err)
	}

	nuts.L.Infof("[PostgresDB] Connected to %s:%d/%s", cfg.Host, cfg.Port, cfg.DBName)
	return &SQLDB{db: db, driver: config.DriverPostgres}, nil
}

func sqliteDSN(cfg config.SQLiteConfig) string {
	if cfg.Path == ":memory:" {
		return cfg.Path
	}
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)",
		cfg.Path, cfg.BusyTimeout.Milliseconds())
}

func (d *SQLDB) Close() error {
	return d.db.Close()
}

func (d *SQLDB) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func (d *SQLDB) GetDB() *sqlx.DB {
	return d.db
}

func (d *SQLDB) Driver() string {
	return d.driver
}
