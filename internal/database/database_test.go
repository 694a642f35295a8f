package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube/internal/config"
)

func TestDSN(t *testing.T) {
	t.Run("postgres", func(t *testing.T) {
		dsn := DSN(config.DB{
			Driver:     config.DriverPostgres,
			DbHOST:     "db",
			DbPORT:     "5432",
			DbUSER:     "u",
			DbPASSWORD: "p",
			DbNAME:     "yatube",
			DbSSLMODE:  "disable",
		})
		assert.Equal(t, "host=db port=5432 user=u password=p dbname=yatube sslmode=disable", dsn)
	})

	t.Run("pgx использует тот же формат", func(t *testing.T) {
		dsn := DSN(config.DB{Driver: config.DriverPgx, DbHOST: "db", DbPORT: "5432", DbUSER: "u", DbPASSWORD: "p", DbNAME: "yatube", DbSSLMODE: "require"})
		assert.Equal(t, "host=db port=5432 user=u password=p dbname=yatube sslmode=require", dsn)
	})

	t.Run("sqlite", func(t *testing.T) {
		dsn := DSN(config.DB{Driver: config.DriverSQLite, DbPATH: "data.sqlite3"})
		assert.Equal(t, "file:data.sqlite3?_foreign_keys=on&_busy_timeout=5000", dsn)
	})
}

func TestOpenMemory(t *testing.T) {
	db, err := OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.CloseDB() })

	assert.NoError(t, db.HealthCheck())

	var tables []string
	require.NoError(t, db.Select(&tables,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('users', 'groups', 'posts') ORDER BY name`))
	assert.Equal(t, []string{"groups", "posts", "users"}, tables)

	var fk int
	require.NoError(t, db.Get(&fk, `PRAGMA foreign_keys`))
	assert.Equal(t, 1, fk)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db, err := OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.CloseDB() })

	assert.NoError(t, db.RunMigrations())
}

func TestHealthCheck_Nil(t *testing.T) {
	var db *DB
	assert.Error(t, db.HealthCheck())
}
