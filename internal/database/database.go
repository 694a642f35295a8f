package database

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"yatube/internal/config"
	"yatube/internal/logging"
)

//go:embed migrations
var migrations embed.FS

type MethodsDB interface {
	CloseDB() error
	RunMigrations() error
	HealthCheck() error
	GetDB() *DB
}

type DB struct {
	*sqlx.DB
}

// DSN builds the driver-specific connection string.
func DSN(cfg config.DB) string {
	if cfg.Driver == config.DriverSQLite {
		return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", cfg.DbPATH)
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DbHOST,
		cfg.DbPORT,
		cfg.DbUSER,
		cfg.DbPASSWORD,
		cfg.DbNAME,
		cfg.DbSSLMODE,
	)
}

func ConnectDB(cfg *config.Config) (*DB, error) {
	logging.Info().
		Str("driver", cfg.DB.Driver).
		Str("host", cfg.DB.DbHOST).
		Str("dbname", cfg.DB.DbNAME).
		Msg("подключаемся к БД")

	db, err := Open(cfg.DB.Driver, DSN(cfg.DB))
	if err != nil {
		return nil, err
	}

	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, err
	}

	if err := db.HealthCheck(); err != nil {
		db.Close()
		return nil, fmt.Errorf("проверка БД не пройдена: %w", err)
	}

	logging.Info().Str("driver", cfg.DB.Driver).Msg("успешное подключение к БД")
	return db, nil
}

// Open connects without running migrations.
func Open(driver, dsn string) (*DB, error) {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к БД: %w", err)
	}

	if driver == config.DriverSQLite {
		// a single writer avoids SQLITE_BUSY and keeps :memory: databases shared
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	return &DB{db}, nil
}

// OpenMemory returns a migrated in-memory sqlite database.
func OpenMemory() (*DB, error) {
	db, err := Open(config.DriverSQLite, "file::memory:?_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func (db *DB) CloseDB() error {
	return db.DB.Close()
}

func migrationDir(driver string) string {
	if driver == config.DriverSQLite {
		return "migrations/sqlite"
	}
	return "migrations/postgres"
}

// RunMigrations applies the embedded scripts for the connected driver in name order.
// Scripts are idempotent (IF NOT EXISTS).
func (db *DB) RunMigrations() error {
	dir := migrationDir(db.DriverName())

	entries, err := fs.ReadDir(migrations, dir)
	if err != nil {
		return fmt.Errorf("каталог миграций не найден: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		migrationSQL, err := migrations.ReadFile(dir + "/" + name)
		if err != nil {
			return fmt.Errorf("ошибка при чтении файла миграций %s: %w", name, err)
		}

		if _, err := db.Exec(string(migrationSQL)); err != nil {
			return fmt.Errorf("ошибка при выполнении миграции %s: %w", name, err)
		}
		logging.Info().Str("migration", name).Msg("миграция применена")
	}

	return nil
}

func (db *DB) HealthCheck() error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("подключение к БД не инициализировано")
	}

	return db.Ping()
}

func (db *DB) GetDB() *DB {
	return db
}
