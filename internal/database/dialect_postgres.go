package database

import (
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
)

// PostgresDialect implements Dialect for PostgreSQL
type PostgresDialect struct{}

// NewPostgresDialect creates a new PostgreSQL dialect
func NewPostgresDialect() *PostgresDialect {
	return &PostgresDialect{}
}

func (d *PostgresDialect) DriverName() string {
	return "postgres"
}

func (d *PostgresDialect) DSN(config DialectConfig) string {
	return config.URL
}

func (d *PostgresDialect) RewriteQuery(query string) string {
	// PostgreSQL uses $1, $2, etc. instead of ?
	return rewritePlaceholdersToNumbered(query)
}

func (d *PostgresDialect) SupportsLastInsertId() bool {
	// PostgreSQL doesn't support LastInsertId(), needs RETURNING clause
	return false
}

func (d *PostgresDialect) ConfigureConnection(db *sql.DB) error {
	// Configure connection pool for PostgreSQL
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	// PostgreSQL has foreign keys enabled by default, no pragma needed
	return nil
}

func (d *PostgresDialect) MigrationsSubdir() string {
	return "postgres"
}

func (d *PostgresDialect) CreateMigrationsTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS migrations (
			id BIGSERIAL PRIMARY KEY,
			filename TEXT UNIQUE NOT NULL,
			executed_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		);
	`
}

func (d *PostgresDialect) UpsertXPEntryQuery() string {
	return `
		INSERT INTO xp_entries (user_id, day, reason, xp_gained)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, day, reason)
		DO UPDATE SET xp_gained = xp_entries.xp_gained + EXCLUDED.xp_gained
	`
}

func (d *PostgresDialect) InsertSummaryIgnoreQuery() string {
	return `
		INSERT INTO progress_summaries (user_id)
		VALUES (?)
		ON CONFLICT (user_id) DO NOTHING
	`
}

func (d *PostgresDialect) IsRetryableError(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// 40001 serialization_failure, 40P01 deadlock_detected,
		// 23505 unique_violation from a lost guard-row insert race: the
		// restarted transaction re-reads the row and treats the event as
		// a duplicate
		return pqErr.Code == "40001" || pqErr.Code == "40P01" || pqErr.Code == "23505"
	}
	return false
}
