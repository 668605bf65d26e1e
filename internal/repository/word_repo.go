package repository

import (
	"database/sql"
	"fmt"
	"time"

	"lingualearn/internal/database"
	"lingualearn/internal/models"
)

// WordRepository handles vocabulary words and per-user learned flags
type WordRepository struct{}

// NewWordRepository creates a new word repository
func NewWordRepository() *WordRepository {
	return &WordRepository{}
}

// GetWordByID retrieves a vocabulary word, or nil if it does not exist
func (r *WordRepository) GetWordByID(q database.Querier, id int64) (*models.VocabularyWord, error) {
	query := `
		SELECT id, english, hindi, difficulty, COALESCE(description, '')
		FROM vocabulary_words
		WHERE id = ?
	`
	word := &models.VocabularyWord{}
	err := q.QueryRow(query, id).Scan(
		&word.ID,
		&word.English,
		&word.Hindi,
		&word.Difficulty,
		&word.Description,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word: %w", err)
	}
	return word, nil
}

// ListWords retrieves all vocabulary words ordered by English spelling
func (r *WordRepository) ListWords(q database.Querier) ([]models.VocabularyWord, error) {
	query := `
		SELECT id, english, hindi, difficulty, COALESCE(description, '')
		FROM vocabulary_words
		ORDER BY english ASC
	`
	rows, err := q.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var words []models.VocabularyWord
	for rows.Next() {
		var word models.VocabularyWord
		err := rows.Scan(&word.ID, &word.English, &word.Hindi, &word.Difficulty, &word.Description)
		if err != nil {
			return nil, err
		}
		words = append(words, word)
	}
	return words, rows.Err()
}

// CreateWord inserts a vocabulary word (used by seeding and import)
func (r *WordRepository) CreateWord(q database.Querier, english, hindi, difficulty, description string) (int64, error) {
	query := `
		INSERT INTO vocabulary_words (english, hindi, difficulty, description)
		VALUES (?, ?, ?, ?)
	`
	return q.ExecReturningID(query, english, hindi, difficulty, description)
}

// CountWords returns the number of vocabulary words
func (r *WordRepository) CountWords(q database.Querier) (int, error) {
	var count int
	err := q.QueryRow("SELECT COUNT(*) FROM vocabulary_words").Scan(&count)
	return count, err
}

// GetWordProgress retrieves the learned flag for (user, word), or nil if the
// user has never touched the word
func (r *WordRepository) GetWordProgress(q database.Querier, userID, wordID int64) (*models.WordProgress, error) {
	query := `
		SELECT id, user_id, word_id, learned, last_practiced_at
		FROM word_progress
		WHERE user_id = ? AND word_id = ?
	`
	progress := &models.WordProgress{}
	err := q.QueryRow(query, userID, wordID).Scan(
		&progress.ID,
		&progress.UserID,
		&progress.WordID,
		&progress.Learned,
		&progress.LastPracticedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word progress: %w", err)
	}
	return progress, nil
}

// CreateWordProgress inserts a learned flag row for (user, word)
func (r *WordRepository) CreateWordProgress(q database.Querier, userID, wordID int64, learned bool) error {
	query := `
		INSERT INTO word_progress (user_id, word_id, learned, last_practiced_at)
		VALUES (?, ?, ?, ?)
	`
	_, err := q.Exec(query, userID, wordID, learned, time.Now())
	return err
}

// MarkWordLearned flips the learned flag and refreshes the practice timestamp
func (r *WordRepository) MarkWordLearned(q database.Querier, userID, wordID int64) error {
	query := `
		UPDATE word_progress
		SET learned = ?, last_practiced_at = ?
		WHERE user_id = ? AND word_id = ?
	`
	_, err := q.Exec(query, true, time.Now(), userID, wordID)
	return err
}

// TouchWordProgress refreshes last_practiced_at without changing the flag
func (r *WordRepository) TouchWordProgress(q database.Querier, userID, wordID int64) error {
	query := "UPDATE word_progress SET last_practiced_at = ? WHERE user_id = ? AND word_id = ?"
	_, err := q.Exec(query, time.Now(), userID, wordID)
	return err
}

// LearnedWordIDs returns the ids of all words the user has learned
func (r *WordRepository) LearnedWordIDs(q database.Querier, userID int64) ([]int64, error) {
	query := "SELECT word_id FROM word_progress WHERE user_id = ? AND learned = ?"
	rows, err := q.Query(query, userID, true)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
