package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"lingualearn/internal/database"
)

// BackupData represents the complete database backup structure
type BackupData struct {
	Version      string               `json:"version"`
	ExportedAt   time.Time            `json:"exported_at"`
	Users        []UserBackup         `json:"users"`
	Summaries    []SummaryBackup      `json:"progress_summaries"`
	XPEntries    []XPEntryBackup      `json:"xp_entries"`
	WordProgress []WordProgressBackup `json:"word_progress"`
	Completions  []CompletionBackup   `json:"lesson_completions"`
	Vocabulary   []VocabularyBackup   `json:"vocabulary_words"`
}

// UserBackup represents a user record for backup
type UserBackup struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"password_hash"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Phone         string    `json:"phone"`
	OAuthProvider string    `json:"oauth_provider"`
	OAuthSubject  string    `json:"oauth_subject"`
	IsAdmin       bool      `json:"is_admin"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SummaryBackup represents a progress summary record for backup
type SummaryBackup struct {
	UserID             int64     `json:"user_id"`
	LessonsCompleted   int       `json:"lessons_completed"`
	QuizzesCompleted   int       `json:"quizzes_completed"`
	WordsLearned       int       `json:"words_learned"`
	EasyWordsLearned   int       `json:"easy_words_learned"`
	MediumWordsLearned int       `json:"medium_words_learned"`
	HardWordsLearned   int       `json:"hard_words_learned"`
	StreakDays         int       `json:"streak_days"`
	TodayProgress      float64   `json:"today_progress"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// XPEntryBackup represents one XP ledger row for backup
type XPEntryBackup struct {
	UserID   int64  `json:"user_id"`
	Day      string `json:"day"`
	Reason   string `json:"reason"`
	XPGained int    `json:"xp_gained"`
}

// WordProgressBackup represents a word progress flag for backup
type WordProgressBackup struct {
	UserID          int64     `json:"user_id"`
	WordID          int64     `json:"word_id"`
	Learned         bool      `json:"learned"`
	LastPracticedAt time.Time `json:"last_practiced_at"`
}

// CompletionBackup represents a lesson completion flag for backup
type CompletionBackup struct {
	UserID      int64      `json:"user_id"`
	LessonName  string     `json:"lesson_name"`
	IsCompleted bool       `json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at"`
	Score       *int       `json:"score"`
}

// VocabularyBackup represents a vocabulary word for backup
type VocabularyBackup struct {
	ID          int64  `json:"id"`
	English     string `json:"english"`
	Hindi       string `json:"hindi"`
	Difficulty  string `json:"difficulty"`
	Description string `json:"description"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export creates a complete backup of the learning data to a file
func (s *BackupService) Export(outputPath string) error {
	log.Println("Starting database export...")

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(file); err != nil {
		return err
	}

	log.Printf("Database exported successfully to %s", outputPath)
	return nil
}

// ExportToWriter exports the learning data to an io.Writer
func (s *BackupService) ExportToWriter(w io.Writer) error {
	backup := &BackupData{
		Version:    "1.0",
		ExportedAt: time.Now(),
	}

	if err := s.exportUsers(backup); err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}
	if err := s.exportSummaries(backup); err != nil {
		return fmt.Errorf("failed to export progress summaries: %w", err)
	}
	if err := s.exportXPEntries(backup); err != nil {
		return fmt.Errorf("failed to export xp entries: %w", err)
	}
	if err := s.exportWordProgress(backup); err != nil {
		return fmt.Errorf("failed to export word progress: %w", err)
	}
	if err := s.exportCompletions(backup); err != nil {
		return fmt.Errorf("failed to export lesson completions: %w", err)
	}
	if err := s.exportVocabulary(backup); err != nil {
		return fmt.Errorf("failed to export vocabulary: %w", err)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Exported: %d users, %d summaries, %d xp entries, %d word flags, %d completions, %d words",
		len(backup.Users), len(backup.Summaries), len(backup.XPEntries),
		len(backup.WordProgress), len(backup.Completions), len(backup.Vocabulary))
	return nil
}

// Import restores learning data from a backup file
func (s *BackupService) Import(inputPath string) error {
	log.Printf("Starting database import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores learning data from a backup reader
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	// Import in order of dependencies
	if err := s.importUsers(backup.Users); err != nil {
		return fmt.Errorf("failed to import users: %w", err)
	}
	if err := s.importVocabulary(backup.Vocabulary); err != nil {
		return fmt.Errorf("failed to import vocabulary: %w", err)
	}
	if err := s.importSummaries(backup.Summaries); err != nil {
		return fmt.Errorf("failed to import progress summaries: %w", err)
	}
	if err := s.importXPEntries(backup.XPEntries); err != nil {
		return fmt.Errorf("failed to import xp entries: %w", err)
	}
	if err := s.importWordProgress(backup.WordProgress); err != nil {
		return fmt.Errorf("failed to import word progress: %w", err)
	}
	if err := s.importCompletions(backup.Completions); err != nil {
		return fmt.Errorf("failed to import lesson completions: %w", err)
	}

	log.Println("Database import completed successfully")
	return nil
}

func (s *BackupService) exportUsers(backup *BackupData) error {
	query := `
		SELECT id, email, password_hash, COALESCE(first_name, ''), COALESCE(last_name, ''),
		       COALESCE(phone, ''), COALESCE(oauth_provider, ''), COALESCE(oauth_subject, ''),
		       is_admin, created_at, updated_at
		FROM users ORDER BY id
	`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u UserBackup
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
			&u.Phone, &u.OAuthProvider, &u.OAuthSubject, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return err
		}
		backup.Users = append(backup.Users, u)
	}
	return rows.Err()
}

func (s *BackupService) exportSummaries(backup *BackupData) error {
	query := `
		SELECT user_id, lessons_completed, quizzes_completed, words_learned,
		       easy_words_learned, medium_words_learned, hard_words_learned,
		       streak_days, today_progress, updated_at
		FROM progress_summaries ORDER BY user_id
	`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p SummaryBackup
		if err := rows.Scan(&p.UserID, &p.LessonsCompleted, &p.QuizzesCompleted, &p.WordsLearned,
			&p.EasyWordsLearned, &p.MediumWordsLearned, &p.HardWordsLearned,
			&p.StreakDays, &p.TodayProgress, &p.UpdatedAt); err != nil {
			return err
		}
		backup.Summaries = append(backup.Summaries, p)
	}
	return rows.Err()
}

func (s *BackupService) exportXPEntries(backup *BackupData) error {
	query := "SELECT user_id, day, reason, xp_gained FROM xp_entries ORDER BY user_id, day, reason"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var e XPEntryBackup
		if err := rows.Scan(&e.UserID, &e.Day, &e.Reason, &e.XPGained); err != nil {
			return err
		}
		backup.XPEntries = append(backup.XPEntries, e)
	}
	return rows.Err()
}

func (s *BackupService) exportWordProgress(backup *BackupData) error {
	query := "SELECT user_id, word_id, learned, last_practiced_at FROM word_progress ORDER BY user_id, word_id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var wp WordProgressBackup
		if err := rows.Scan(&wp.UserID, &wp.WordID, &wp.Learned, &wp.LastPracticedAt); err != nil {
			return err
		}
		backup.WordProgress = append(backup.WordProgress, wp)
	}
	return rows.Err()
}

func (s *BackupService) exportCompletions(backup *BackupData) error {
	query := "SELECT user_id, lesson_name, is_completed, completed_at, score FROM lesson_completions ORDER BY user_id, lesson_name"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var c CompletionBackup
		var completedAt sql.NullTime
		var score sql.NullInt64
		if err := rows.Scan(&c.UserID, &c.LessonName, &c.IsCompleted, &completedAt, &score); err != nil {
			return err
		}
		if completedAt.Valid {
			c.CompletedAt = &completedAt.Time
		}
		if score.Valid {
			v := int(score.Int64)
			c.Score = &v
		}
		backup.Completions = append(backup.Completions, c)
	}
	return rows.Err()
}

func (s *BackupService) exportVocabulary(backup *BackupData) error {
	query := "SELECT id, english, hindi, difficulty, COALESCE(description, '') FROM vocabulary_words ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var v VocabularyBackup
		if err := rows.Scan(&v.ID, &v.English, &v.Hindi, &v.Difficulty, &v.Description); err != nil {
			return err
		}
		backup.Vocabulary = append(backup.Vocabulary, v)
	}
	return rows.Err()
}

func (s *BackupService) importUsers(users []UserBackup) error {
	log.Printf("Importing %d users...", len(users))
	for _, u := range users {
		query := `
			INSERT INTO users (id, email, password_hash, first_name, last_name, phone,
			                   oauth_provider, oauth_subject, is_admin, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		_, err := s.db.Exec(query, u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Phone,
			nullIfEmpty(u.OAuthProvider), nullIfEmpty(u.OAuthSubject), u.IsAdmin, u.CreatedAt, u.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to import user %d: %w", u.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importVocabulary(words []VocabularyBackup) error {
	log.Printf("Importing %d vocabulary words...", len(words))
	for _, v := range words {
		query := "INSERT INTO vocabulary_words (id, english, hindi, difficulty, description) VALUES (?, ?, ?, ?, ?)"
		if _, err := s.db.Exec(query, v.ID, v.English, v.Hindi, v.Difficulty, nullIfEmpty(v.Description)); err != nil {
			return fmt.Errorf("failed to import word %d: %w", v.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importSummaries(summaries []SummaryBackup) error {
	log.Printf("Importing %d progress summaries...", len(summaries))
	for _, p := range summaries {
		query := `
			INSERT INTO progress_summaries (user_id, lessons_completed, quizzes_completed, words_learned,
			                                easy_words_learned, medium_words_learned, hard_words_learned,
			                                streak_days, today_progress, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		_, err := s.db.Exec(query, p.UserID, p.LessonsCompleted, p.QuizzesCompleted, p.WordsLearned,
			p.EasyWordsLearned, p.MediumWordsLearned, p.HardWordsLearned,
			p.StreakDays, p.TodayProgress, p.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to import summary for user %d: %w", p.UserID, err)
		}
	}
	return nil
}

func (s *BackupService) importXPEntries(entries []XPEntryBackup) error {
	log.Printf("Importing %d xp entries...", len(entries))
	for _, e := range entries {
		query := "INSERT INTO xp_entries (user_id, day, reason, xp_gained) VALUES (?, ?, ?, ?)"
		if _, err := s.db.Exec(query, e.UserID, e.Day, e.Reason, e.XPGained); err != nil {
			return fmt.Errorf("failed to import xp entry for user %d on %s: %w", e.UserID, e.Day, err)
		}
	}
	return nil
}

func (s *BackupService) importWordProgress(progress []WordProgressBackup) error {
	log.Printf("Importing %d word progress flags...", len(progress))
	for _, wp := range progress {
		query := "INSERT INTO word_progress (user_id, word_id, learned, last_practiced_at) VALUES (?, ?, ?, ?)"
		if _, err := s.db.Exec(query, wp.UserID, wp.WordID, wp.Learned, wp.LastPracticedAt); err != nil {
			return fmt.Errorf("failed to import word progress for user %d, word %d: %w", wp.UserID, wp.WordID, err)
		}
	}
	return nil
}

func (s *BackupService) importCompletions(completions []CompletionBackup) error {
	log.Printf("Importing %d lesson completions...", len(completions))
	for _, c := range completions {
		var completedAt interface{}
		if c.CompletedAt != nil {
			completedAt = *c.CompletedAt
		}
		var score interface{}
		if c.Score != nil {
			score = *c.Score
		}
		query := "INSERT INTO lesson_completions (user_id, lesson_name, is_completed, completed_at, score) VALUES (?, ?, ?, ?, ?)"
		if _, err := s.db.Exec(query, c.UserID, c.LessonName, c.IsCompleted, completedAt, score); err != nil {
			return fmt.Errorf("failed to import completion for user %d, lesson %s: %w", c.UserID, c.LessonName, err)
		}
	}
	return nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
