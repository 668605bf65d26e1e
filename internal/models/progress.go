package models

import "time"

// XP award reasons. Each forms part of the (user, day, reason) ledger key.
const (
	XPReasonVocab       = "vocab"
	XPReasonLessonBasic = "lesson_basic"
	XPReasonQuiz        = "quiz"
)

// Word difficulty levels
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// ProgressSummary holds per-user cumulative counters. Exactly one row per
// user, created lazily on first access or event. The difficulty counters are
// informational: they can drift from WordsLearned if a word's difficulty is
// edited after it was learned.
type ProgressSummary struct {
	UserID             int64
	LessonsCompleted   int
	QuizzesCompleted   int
	WordsLearned       int
	EasyWordsLearned   int
	MediumWordsLearned int
	HardWordsLearned   int
	StreakDays         int
	TodayProgress      float64
	UpdatedAt          time.Time
}

// XPEntry is one row of the daily XP ledger, unique on (user, day, reason).
// Day is a YYYY-MM-DD string in the server's local calendar.
type XPEntry struct {
	ID       int64
	UserID   int64
	Day      string
	Reason   string
	XPGained int
}

// WordProgress flags a vocabulary word as learned for a user, unique on
// (user, word). Only the false-to-true transition triggers side effects.
type WordProgress struct {
	ID              int64
	UserID          int64
	WordID          int64
	Learned         bool
	LastPracticedAt time.Time
}

// LessonCompletion flags a lesson (basic or quiz) as completed for a user,
// unique on (user, lesson name). Only the first completion awards XP.
type LessonCompletion struct {
	ID          int64
	UserID      int64
	LessonName  string
	IsCompleted bool
	CompletedAt *time.Time
	Score       *int
}

// UserStats is the dashboard projection of a user's progress
type UserStats struct {
	LessonsCompleted int     `json:"lessons_completed"`
	QuizzesCompleted int     `json:"quizzes_completed"`
	WordsLearned     int     `json:"words_learned"`
	StreakDays       int     `json:"streak_days"`
	TodayProgress    float64 `json:"today_progress"`
	TotalXP          int     `json:"xp"`
}

// XPChartEntry is one day of the 7-day XP chart
type XPChartEntry struct {
	Day string `json:"day"`
	XP  int    `json:"xp"`
}

// DifficultyStats is the difficulty-breakdown projection with the 7-day
// XP chart, oldest entry first, ending on the current date.
type DifficultyStats struct {
	Easy       int            `json:"easy"`
	Medium     int            `json:"medium"`
	Hard       int            `json:"hard"`
	TotalWords int            `json:"total_words"`
	XPTotal    int            `json:"xp_total"`
	XPChart    []XPChartEntry `json:"xp_chart"`
	Streak     int            `json:"streak"`
}
