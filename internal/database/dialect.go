package database

import (
	"database/sql"
	"regexp"
	"strconv"
)

// Dialect defines the interface for database-specific operations
type Dialect interface {
	// DriverName returns the driver name for sql.Open
	DriverName() string

	// DSN returns the data source name for the connection
	DSN(config DialectConfig) string

	// RewriteQuery converts placeholder syntax if needed (e.g., ? to $1 for postgres)
	RewriteQuery(query string) string

	// SupportsLastInsertId returns true if the driver supports LastInsertId()
	SupportsLastInsertId() bool

	// ConfigureConnection applies any database-specific connection settings
	ConfigureConnection(db *sql.DB) error

	// MigrationsSubdir returns the subdirectory name for migrations (e.g., "sqlite", "postgres")
	MigrationsSubdir() string

	// CreateMigrationsTableQuery returns the SQL to create the migrations tracking table
	CreateMigrationsTableQuery() string

	// UpsertXPEntryQuery returns the SQL that inserts an XP ledger row for
	// (user_id, day, reason, xp_gained) or atomically adds the amount to the
	// existing row. The increment happens inside the statement itself, so two
	// concurrent awards never overwrite each other.
	UpsertXPEntryQuery() string

	// InsertSummaryIgnoreQuery returns the SQL that inserts a zeroed
	// progress summary row for (user_id) and does nothing when the row
	// already exists. Losing a create race must not raise an error, because
	// on PostgreSQL a failed INSERT aborts the whole transaction.
	InsertSummaryIgnoreQuery() string

	// IsRetryableError reports whether the enclosing transaction should be
	// restarted: transient serialization and lock failures, plus unique
	// violations on guard rows, where the rerun re-reads the winner's row
	// and resolves the event as a duplicate
	IsRetryableError(err error) bool
}

// DialectConfig holds configuration for database connection
type DialectConfig struct {
	// For SQLite
	Path string

	// For PostgreSQL/MySQL
	URL string
}

// placeholderRegexp matches ? placeholders not inside quotes
var placeholderRegexp = regexp.MustCompile(`\?`)

// rewritePlaceholdersToNumbered converts ? placeholders to $1, $2, etc.
func rewritePlaceholdersToNumbered(query string) string {
	counter := 0
	return placeholderRegexp.ReplaceAllStringFunc(query, func(match string) string {
		counter++
		return "$" + strconv.Itoa(counter)
	})
}
