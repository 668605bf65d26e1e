package database

import (
	"database/sql"
	"errors"
	"time"

	"github.com/mattn/go-sqlite3"
)

// SQLiteDialect implements Dialect for SQLite
type SQLiteDialect struct{}

// NewSQLiteDialect creates a new SQLite dialect
func NewSQLiteDialect() *SQLiteDialect {
	return &SQLiteDialect{}
}

func (d *SQLiteDialect) DriverName() string {
	return "sqlite3"
}

func (d *SQLiteDialect) DSN(config DialectConfig) string {
	// busy_timeout makes concurrent writers queue instead of failing
	// immediately; txlock=immediate takes the write lock at BEGIN so a
	// transaction never fails upgrading a stale read snapshot
	return config.Path + "?_busy_timeout=5000&_txlock=immediate"
}

func (d *SQLiteDialect) RewriteQuery(query string) string {
	// SQLite uses ? placeholders, no rewrite needed
	return query
}

func (d *SQLiteDialect) SupportsLastInsertId() bool {
	return true
}

func (d *SQLiteDialect) ConfigureConnection(db *sql.DB) error {
	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return err
	}

	// Enable foreign key constraints
	if _, err := db.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		return err
	}

	return nil
}

func (d *SQLiteDialect) MigrationsSubdir() string {
	return "sqlite"
}

func (d *SQLiteDialect) CreateMigrationsTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS migrations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			filename TEXT UNIQUE NOT NULL,
			executed_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`
}

func (d *SQLiteDialect) UpsertXPEntryQuery() string {
	return `
		INSERT INTO xp_entries (user_id, day, reason, xp_gained)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, day, reason)
		DO UPDATE SET xp_gained = xp_entries.xp_gained + excluded.xp_gained
	`
}

func (d *SQLiteDialect) InsertSummaryIgnoreQuery() string {
	return `
		INSERT INTO progress_summaries (user_id)
		VALUES (?)
		ON CONFLICT (user_id) DO NOTHING
	`
}

func (d *SQLiteDialect) IsRetryableError(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked {
			return true
		}
		// Losing a guard-row insert race resolves as a duplicate on rerun
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
