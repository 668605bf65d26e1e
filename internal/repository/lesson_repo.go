package repository

import (
	"database/sql"
	"fmt"
	"time"

	"lingualearn/internal/database"
	"lingualearn/internal/models"
)

// LessonRepository handles lesson content and per-user completion flags
type LessonRepository struct{}

// NewLessonRepository creates a new lesson repository
func NewLessonRepository() *LessonRepository {
	return &LessonRepository{}
}

// GetCompletion retrieves the completion flag for (user, lesson), or nil if
// the user has never finished the lesson
func (r *LessonRepository) GetCompletion(q database.Querier, userID int64, lessonName string) (*models.LessonCompletion, error) {
	query := `
		SELECT id, user_id, lesson_name, is_completed, completed_at, score
		FROM lesson_completions
		WHERE user_id = ? AND lesson_name = ?
	`
	completion := &models.LessonCompletion{}
	var completedAt sql.NullTime
	var score sql.NullInt64

	err := q.QueryRow(query, userID, lessonName).Scan(
		&completion.ID,
		&completion.UserID,
		&completion.LessonName,
		&completion.IsCompleted,
		&completedAt,
		&score,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson completion: %w", err)
	}

	if completedAt.Valid {
		completion.CompletedAt = &completedAt.Time
	}
	if score.Valid {
		s := int(score.Int64)
		completion.Score = &s
	}
	return completion, nil
}

// CreateCompletion inserts a completed flag row for (user, lesson).
// score may be nil for basic lessons.
func (r *LessonRepository) CreateCompletion(q database.Querier, userID int64, lessonName string, score *int) error {
	query := `
		INSERT INTO lesson_completions (user_id, lesson_name, is_completed, completed_at, score)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := q.Exec(query, userID, lessonName, true, time.Now(), scoreArg(score))
	return err
}

// MarkCompleted flips an existing flag to completed
func (r *LessonRepository) MarkCompleted(q database.Querier, id int64, score *int) error {
	query := `
		UPDATE lesson_completions
		SET is_completed = ?, completed_at = ?, score = ?
		WHERE id = ?
	`
	_, err := q.Exec(query, true, time.Now(), scoreArg(score), id)
	return err
}

// UpdateScore records the score of a repeat quiz attempt without touching
// the completion state
func (r *LessonRepository) UpdateScore(q database.Querier, id int64, score int) error {
	_, err := q.Exec("UPDATE lesson_completions SET score = ? WHERE id = ?", score, id)
	return err
}

func scoreArg(score *int) interface{} {
	if score == nil {
		return nil
	}
	return *score
}

// ListLessonWords retrieves the word slides of a basic lesson in order
func (r *LessonRepository) ListLessonWords(q database.Querier, lessonName string) ([]models.LessonWord, error) {
	query := `
		SELECT id, lesson_name, english_word, hindi_word, position
		FROM lesson_words
		WHERE lesson_name = ?
		ORDER BY position ASC
	`
	rows, err := q.Query(query, lessonName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var words []models.LessonWord
	for rows.Next() {
		var word models.LessonWord
		err := rows.Scan(&word.ID, &word.LessonName, &word.EnglishWord, &word.HindiWord, &word.Position)
		if err != nil {
			return nil, err
		}
		words = append(words, word)
	}
	return words, rows.Err()
}

// ListQuizQuestions retrieves the questions of a quiz lesson in order
func (r *LessonRepository) ListQuizQuestions(q database.Querier, lessonName string) ([]models.QuizQuestion, error) {
	query := `
		SELECT id, lesson_name, question_text, option_a, option_b, option_c, option_d,
		       correct_option, position
		FROM quiz_questions
		WHERE lesson_name = ?
		ORDER BY position ASC
	`
	rows, err := q.Query(query, lessonName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []models.QuizQuestion
	for rows.Next() {
		var question models.QuizQuestion
		err := rows.Scan(
			&question.ID,
			&question.LessonName,
			&question.QuestionText,
			&question.OptionA,
			&question.OptionB,
			&question.OptionC,
			&question.OptionD,
			&question.CorrectOption,
			&question.Position,
		)
		if err != nil {
			return nil, err
		}
		questions = append(questions, question)
	}
	return questions, rows.Err()
}

// CreateLessonWord inserts a basic-lesson word slide (used by seeding)
func (r *LessonRepository) CreateLessonWord(q database.Querier, lessonName, english, hindi string, position int) error {
	query := `
		INSERT INTO lesson_words (lesson_name, english_word, hindi_word, position)
		VALUES (?, ?, ?, ?)
	`
	_, err := q.Exec(query, lessonName, english, hindi, position)
	return err
}

// CreateQuizQuestion inserts a quiz question (used by seeding)
func (r *LessonRepository) CreateQuizQuestion(q database.Querier, question models.QuizQuestion) error {
	query := `
		INSERT INTO quiz_questions (lesson_name, question_text, option_a, option_b, option_c, option_d, correct_option, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := q.Exec(query,
		question.LessonName,
		question.QuestionText,
		question.OptionA,
		question.OptionB,
		question.OptionC,
		question.OptionD,
		question.CorrectOption,
		question.Position,
	)
	return err
}

// CountLessonWords returns the number of slides in a lesson
func (r *LessonRepository) CountLessonWords(q database.Querier, lessonName string) (int, error) {
	var count int
	err := q.QueryRow("SELECT COUNT(*) FROM lesson_words WHERE lesson_name = ?", lessonName).Scan(&count)
	return count, err
}

// CountQuizQuestions returns the number of questions in a quiz lesson
func (r *LessonRepository) CountQuizQuestions(q database.Querier, lessonName string) (int, error) {
	var count int
	err := q.QueryRow("SELECT COUNT(*) FROM quiz_questions WHERE lesson_name = ?", lessonName).Scan(&count)
	return count, err
}
