package repository

import (
	"database/sql"
	"fmt"
	"time"

	"lingualearn/internal/database"
	"lingualearn/internal/models"
)

// ProgressRepository handles the progress summary and the daily XP ledger.
// Methods take a database.Querier so the aggregator can run them inside a
// single transaction together with the event flags.
type ProgressRepository struct{}

// NewProgressRepository creates a new progress repository
func NewProgressRepository() *ProgressRepository {
	return &ProgressRepository{}
}

const summaryColumns = `
	user_id, lessons_completed, quizzes_completed, words_learned,
	easy_words_learned, medium_words_learned, hard_words_learned,
	streak_days, today_progress, updated_at
`

func scanSummary(row *sql.Row) (*models.ProgressSummary, error) {
	summary := &models.ProgressSummary{}
	err := row.Scan(
		&summary.UserID,
		&summary.LessonsCompleted,
		&summary.QuizzesCompleted,
		&summary.WordsLearned,
		&summary.EasyWordsLearned,
		&summary.MediumWordsLearned,
		&summary.HardWordsLearned,
		&summary.StreakDays,
		&summary.TodayProgress,
		&summary.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress summary: %w", err)
	}
	return summary, nil
}

// GetSummary retrieves the progress summary for a user, or nil if none exists
func (r *ProgressRepository) GetSummary(q database.Querier, userID int64) (*models.ProgressSummary, error) {
	query := "SELECT " + summaryColumns + " FROM progress_summaries WHERE user_id = ?"
	return scanSummary(q.QueryRow(query, userID))
}

// EnsureSummary returns the user's progress summary, creating the zeroed row
// on first use. The insert is a dialect-level insert-or-ignore, so losing a
// create race to a concurrent request raises no error and the re-read picks
// up the winner's row.
func (r *ProgressRepository) EnsureSummary(q database.Querier, userID int64) (*models.ProgressSummary, error) {
	summary, err := r.GetSummary(q, userID)
	if err != nil {
		return nil, err
	}
	if summary != nil {
		return summary, nil
	}

	if _, err := q.Exec(q.GetDialect().InsertSummaryIgnoreQuery(), userID); err != nil {
		return nil, fmt.Errorf("failed to create progress summary: %w", err)
	}

	summary, err = r.GetSummary(q, userID)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, fmt.Errorf("progress summary missing after create for user %d", userID)
	}
	return summary, nil
}

// IncrementWordCounters adds one learned word to the summary, bumping both
// the total and the matching difficulty counter in a single statement
func (r *ProgressRepository) IncrementWordCounters(q database.Querier, userID int64, difficulty string) error {
	var column string
	switch difficulty {
	case models.DifficultyEasy:
		column = "easy_words_learned"
	case models.DifficultyMedium:
		column = "medium_words_learned"
	case models.DifficultyHard:
		column = "hard_words_learned"
	default:
		return fmt.Errorf("unknown difficulty: %s", difficulty)
	}

	query := fmt.Sprintf(`
		UPDATE progress_summaries
		SET words_learned = words_learned + 1, %s = %s + 1, updated_at = ?
		WHERE user_id = ?
	`, column, column)
	_, err := q.Exec(query, time.Now(), userID)
	return err
}

// IncrementLessonsCompleted adds one completed lesson and advances today's
// progress by 10 percentage points, clamped to 100. The clamp runs inside the
// statement so concurrent updates cannot overshoot.
func (r *ProgressRepository) IncrementLessonsCompleted(q database.Querier, userID int64) error {
	query := `
		UPDATE progress_summaries
		SET lessons_completed = lessons_completed + 1,
		    today_progress = CASE WHEN today_progress + 10 > 100 THEN 100 ELSE today_progress + 10 END,
		    updated_at = ?
		WHERE user_id = ?
	`
	_, err := q.Exec(query, time.Now(), userID)
	return err
}

// IncrementQuizzesCompleted adds one completed quiz to the summary
func (r *ProgressRepository) IncrementQuizzesCompleted(q database.Querier, userID int64) error {
	query := `
		UPDATE progress_summaries
		SET quizzes_completed = quizzes_completed + 1, updated_at = ?
		WHERE user_id = ?
	`
	_, err := q.Exec(query, time.Now(), userID)
	return err
}

// SetStreakDays writes the streak counter
func (r *ProgressRepository) SetStreakDays(q database.Querier, userID int64, days int) error {
	query := "UPDATE progress_summaries SET streak_days = ?, updated_at = ? WHERE user_id = ?"
	_, err := q.Exec(query, days, time.Now(), userID)
	return err
}

// AddXP adds amount to the (user, day, reason) ledger row, creating it if
// absent. The addition happens inside one upsert statement, never as a
// separate read followed by a write.
func (r *ProgressRepository) AddXP(q database.Querier, userID int64, day, reason string, amount int) error {
	_, err := q.Exec(q.GetDialect().UpsertXPEntryQuery(), userID, day, reason, amount)
	if err != nil {
		return fmt.Errorf("failed to award xp: %w", err)
	}
	return nil
}

// TotalXP sums a user's XP across all days and reasons
func (r *ProgressRepository) TotalXP(q database.Querier, userID int64) (int, error) {
	var total int
	query := "SELECT COALESCE(SUM(xp_gained), 0) FROM xp_entries WHERE user_id = ?"
	err := q.QueryRow(query, userID).Scan(&total)
	return total, err
}

// DailyTotals returns per-day XP sums (all reasons) for days on or after
// fromDay. Days without XP are simply absent from the map.
func (r *ProgressRepository) DailyTotals(q database.Querier, userID int64, fromDay string) (map[string]int, error) {
	query := `
		SELECT day, COALESCE(SUM(xp_gained), 0)
		FROM xp_entries
		WHERE user_id = ? AND day >= ?
		GROUP BY day
	`
	rows, err := q.Query(query, userID, fromDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[string]int)
	for rows.Next() {
		var day string
		var xp int
		if err := rows.Scan(&day, &xp); err != nil {
			return nil, err
		}
		totals[day] = xp
	}
	return totals, rows.Err()
}

// HasXPOnDay reports whether the user earned any XP on the given day
func (r *ProgressRepository) HasXPOnDay(q database.Querier, userID int64, day string) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM xp_entries WHERE user_id = ? AND day = ?"
	if err := q.QueryRow(query, userID, day).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
