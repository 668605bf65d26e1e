package database

import (
	"strings"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

func TestDialectSQLite(t *testing.T) {
	dialect := NewSQLiteDialect()

	t.Run("DriverName", func(t *testing.T) {
		if got := dialect.DriverName(); got != "sqlite3" {
			t.Errorf("DriverName() = %v, want sqlite3", got)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		if !dialect.SupportsLastInsertId() {
			t.Error("SupportsLastInsertId() should return true for SQLite")
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		if got := dialect.MigrationsSubdir(); got != "sqlite" {
			t.Errorf("MigrationsSubdir() = %v, want sqlite", got)
		}
	})

	t.Run("DSN enables busy timeout", func(t *testing.T) {
		dsn := dialect.DSN(DialectConfig{Path: "test.db"})
		if !strings.Contains(dsn, "_busy_timeout=5000") {
			t.Errorf("DSN %q missing busy timeout", dsn)
		}
	})
}

func TestDialectPostgreSQL(t *testing.T) {
	dialect := NewPostgresDialect()

	t.Run("DriverName", func(t *testing.T) {
		if got := dialect.DriverName(); got != "postgres" {
			t.Errorf("DriverName() = %v, want postgres", got)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		if dialect.SupportsLastInsertId() {
			t.Error("SupportsLastInsertId() should return false for PostgreSQL")
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		if got := dialect.MigrationsSubdir(); got != "postgres" {
			t.Errorf("MigrationsSubdir() = %v, want postgres", got)
		}
	})
}

func TestDialectMySQL(t *testing.T) {
	dialect := NewMySQLDialect()

	t.Run("DriverName", func(t *testing.T) {
		if got := dialect.DriverName(); got != "mysql" {
			t.Errorf("DriverName() = %v, want mysql", got)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		if !dialect.SupportsLastInsertId() {
			t.Error("SupportsLastInsertId() should return true for MySQL")
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		if got := dialect.MigrationsSubdir(); got != "mysql" {
			t.Errorf("MigrationsSubdir() = %v, want mysql", got)
		}
	})
}

func TestRewriteQuery(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		query    string
		expected string
	}{
		{
			name:     "SQLite no change",
			dialect:  NewSQLiteDialect(),
			query:    "SELECT * FROM progress_summaries WHERE user_id = ?",
			expected: "SELECT * FROM progress_summaries WHERE user_id = ?",
		},
		{
			name:     "PostgreSQL single placeholder",
			dialect:  NewPostgresDialect(),
			query:    "SELECT * FROM progress_summaries WHERE user_id = ?",
			expected: "SELECT * FROM progress_summaries WHERE user_id = $1",
		},
		{
			name:     "PostgreSQL multiple placeholders",
			dialect:  NewPostgresDialect(),
			query:    "INSERT INTO xp_entries (user_id, day, reason, xp_gained) VALUES (?, ?, ?, ?)",
			expected: "INSERT INTO xp_entries (user_id, day, reason, xp_gained) VALUES ($1, $2, $3, $4)",
		},
		{
			name:     "MySQL no change",
			dialect:  NewMySQLDialect(),
			query:    "UPDATE progress_summaries SET streak_days = ? WHERE user_id = ?",
			expected: "UPDATE progress_summaries SET streak_days = ? WHERE user_id = ?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.dialect.RewriteQuery(tt.query)
			if result != tt.expected {
				t.Errorf("RewriteQuery() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestUpsertXPEntryQuery(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		contains string
	}{
		{
			name:     "SQLite uses ON CONFLICT",
			dialect:  NewSQLiteDialect(),
			contains: "ON CONFLICT",
		},
		{
			name:     "PostgreSQL uses ON CONFLICT",
			dialect:  NewPostgresDialect(),
			contains: "ON CONFLICT",
		},
		{
			name:     "MySQL uses ON DUPLICATE KEY",
			dialect:  NewMySQLDialect(),
			contains: "ON DUPLICATE KEY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := tt.dialect.UpsertXPEntryQuery()
			if !strings.Contains(query, tt.contains) {
				t.Errorf("UpsertXPEntryQuery() missing %q:\n%s", tt.contains, query)
			}
			if !strings.Contains(query, "xp_entries") {
				t.Errorf("UpsertXPEntryQuery() does not target xp_entries:\n%s", query)
			}
		})
	}
}

func TestInsertSummaryIgnoreQuery(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		contains string
	}{
		{
			name:     "SQLite uses ON CONFLICT DO NOTHING",
			dialect:  NewSQLiteDialect(),
			contains: "DO NOTHING",
		},
		{
			name:     "PostgreSQL uses ON CONFLICT DO NOTHING",
			dialect:  NewPostgresDialect(),
			contains: "DO NOTHING",
		},
		{
			name:     "MySQL uses INSERT IGNORE",
			dialect:  NewMySQLDialect(),
			contains: "INSERT IGNORE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := tt.dialect.InsertSummaryIgnoreQuery()
			if !strings.Contains(query, tt.contains) {
				t.Errorf("InsertSummaryIgnoreQuery() missing %q:\n%s", tt.contains, query)
			}
			if !strings.Contains(query, "progress_summaries") {
				t.Errorf("InsertSummaryIgnoreQuery() does not target progress_summaries:\n%s", query)
			}
		})
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		err     error
		want    bool
	}{
		{name: "sqlite nil", dialect: NewSQLiteDialect(), err: nil, want: false},
		{name: "sqlite busy", dialect: NewSQLiteDialect(), err: sqlite3.Error{Code: sqlite3.ErrBusy}, want: true},
		{name: "sqlite locked", dialect: NewSQLiteDialect(), err: sqlite3.Error{Code: sqlite3.ErrLocked}, want: true},
		{
			name:    "sqlite unique violation",
			dialect: NewSQLiteDialect(),
			err:     sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique},
			want:    true,
		},
		{
			name:    "sqlite other constraint",
			dialect: NewSQLiteDialect(),
			err:     sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintCheck},
			want:    false,
		},
		{name: "postgres nil", dialect: NewPostgresDialect(), err: nil, want: false},
		{name: "postgres serialization failure", dialect: NewPostgresDialect(), err: &pq.Error{Code: "40001"}, want: true},
		{name: "postgres deadlock", dialect: NewPostgresDialect(), err: &pq.Error{Code: "40P01"}, want: true},
		{name: "postgres unique violation", dialect: NewPostgresDialect(), err: &pq.Error{Code: "23505"}, want: true},
		{name: "postgres syntax error", dialect: NewPostgresDialect(), err: &pq.Error{Code: "42601"}, want: false},
		{name: "mysql nil", dialect: NewMySQLDialect(), err: nil, want: false},
		{name: "mysql deadlock", dialect: NewMySQLDialect(), err: &mysql.MySQLError{Number: 1213}, want: true},
		{name: "mysql lock wait timeout", dialect: NewMySQLDialect(), err: &mysql.MySQLError{Number: 1205}, want: true},
		{name: "mysql duplicate entry", dialect: NewMySQLDialect(), err: &mysql.MySQLError{Number: 1062}, want: true},
		{name: "mysql syntax error", dialect: NewMySQLDialect(), err: &mysql.MySQLError{Number: 1064}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dialect.IsRetryableError(tt.err); got != tt.want {
				t.Errorf("IsRetryableError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
