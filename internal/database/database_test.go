package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/itsatony/fieldhub/internal/config"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMemorySQLite(t *testing.T) {
	db, err := Open(context.Background(), config.DatabaseConfig{
		Driver: config.DriverSQLite,
		SQLite: config.SQLiteConfig{Path: ":memory:"},
	})
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, config.DriverSQLite, db.Driver())
	assert.NoError(t, db.Ping(context.Background()))
	assert.Equal(t, "SELECT ?", db.GetDB().Rebind("SELECT ?"))
}

func TestOpenFileSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dados.db")
	db, err := NewSQLiteDB(context.Background(), config.SQLiteConfig{Path: path, BusyTimeout: time.Second})
	require.NoError(t, err)
	defer db.Close()

	_, err = db.GetDB().Exec("CREATE TABLE t (id INTEGER PRIMARY KEY)")
	assert.NoError(t, err)
	assert.FileExists(t, path)
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, ":memory:", sqliteDSN(config.SQLiteConfig{Path: ":memory:"}))
	assert.Equal(t,
		"file:dados.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)",
		sqliteDSN(config.SQLiteConfig{Path: "dados.db", BusyTimeout: 5 * time.Second}),
	)
}

func TestPostgresBindType(t *testing.T) {
	assert.Equal(t, sqlx.DOLLAR, sqlx.BindType(config.DriverPostgres))
	assert.Equal(t, sqlx.QUESTION, sqlx.BindType(config.DriverSQLite))
}
