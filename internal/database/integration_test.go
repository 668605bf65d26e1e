package database

import (
	"path/filepath"
	"testing"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}

// TestMigrationsCreateSchema verifies that the migration files build the full
// schema on a fresh database
func TestMigrationsCreateSchema(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := newTestDB(t)

	tables := []string{
		"users",
		"sessions",
		"email_verifications",
		"progress_summaries",
		"xp_entries",
		"vocabulary_words",
		"word_progress",
		"lesson_words",
		"quiz_questions",
		"lesson_completions",
	}

	for _, table := range tables {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("Table %s not found: %v", table, err)
		}
	}
}

// TestMigrationsIdempotent verifies that running migrations twice is safe
func TestMigrationsIdempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := newTestDB(t)

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Second migration run failed: %v", err)
	}
}

func TestWithinTxCommitAndRollback(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := newTestDB(t)

	insertUser := func(tx *Tx, email string) error {
		_, err := tx.Exec(
			"INSERT INTO users (email, password_hash, first_name, last_name, is_admin) VALUES (?, ?, ?, ?, ?)",
			email, "hash", "Test", "User", false)
		return err
	}
	countUsers := func(email string) int {
		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM users WHERE email = ?", email).Scan(&count); err != nil {
			t.Fatalf("Failed to count users: %v", err)
		}
		return count
	}

	// Successful transaction commits
	err := db.WithinTx(func(tx *Tx) error {
		return insertUser(tx, "commit@example.com")
	})
	if err != nil {
		t.Fatalf("WithinTx() failed: %v", err)
	}
	if count := countUsers("commit@example.com"); count != 1 {
		t.Errorf("Expected 1 committed user, got %d", count)
	}

	// Failing transaction rolls back everything
	sentinel := "rollback@example.com"
	err = db.WithinTx(func(tx *Tx) error {
		if err := insertUser(tx, sentinel); err != nil {
			return err
		}
		_, err := tx.Exec("INSERT INTO no_such_table (x) VALUES (?)", 1)
		return err
	})
	if err == nil {
		t.Fatal("Expected WithinTx() to fail")
	}
	if count := countUsers(sentinel); count != 0 {
		t.Errorf("Expected 0 users after rollback, got %d", count)
	}
}

// TestSummaryInsertIgnore verifies that losing a summary create race raises
// no error and leaves exactly one row
func TestSummaryInsertIgnore(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := newTestDB(t)

	userID, err := db.ExecReturningID(
		"INSERT INTO users (email, password_hash, first_name, last_name, is_admin) VALUES (?, ?, ?, ?, ?)",
		"ignore@example.com", "hash", "Test", "User", false)
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	insert := db.GetDialect().InsertSummaryIgnoreQuery()
	for i := 0; i < 2; i++ {
		if _, err := db.Exec(insert, userID); err != nil {
			t.Fatalf("Insert %d failed: %v", i+1, err)
		}
	}

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM progress_summaries WHERE user_id = ?", userID).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count summaries: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 summary row, got %d", count)
	}
}

// TestXPEntryUpsert verifies that repeated awards on the same ledger key
// accumulate into one row
func TestXPEntryUpsert(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := newTestDB(t)

	userID, err := db.ExecReturningID(
		"INSERT INTO users (email, password_hash, first_name, last_name, is_admin) VALUES (?, ?, ?, ?, ?)",
		"upsert@example.com", "hash", "Test", "User", false)
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	upsert := db.GetDialect().UpsertXPEntryQuery()
	for _, amount := range []int{5, 5, 5} {
		if _, err := db.Exec(upsert, userID, "2026-08-28", "vocab", amount); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
	}

	var rows, total int
	err = db.QueryRow(
		"SELECT COUNT(*), COALESCE(SUM(xp_gained), 0) FROM xp_entries WHERE user_id = ? AND day = ? AND reason = ?",
		userID, "2026-08-28", "vocab").Scan(&rows, &total)
	if err != nil {
		t.Fatalf("Failed to query ledger: %v", err)
	}
	if rows != 1 {
		t.Errorf("Expected 1 ledger row, got %d", rows)
	}
	if total != 15 {
		t.Errorf("Expected accumulated total 15, got %d", total)
	}
}
