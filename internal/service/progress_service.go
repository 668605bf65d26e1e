package service

import (
	"errors"
	"fmt"
	"time"

	"lingualearn/internal/database"
	"lingualearn/internal/models"
	"lingualearn/internal/repository"
	"lingualearn/internal/validation"
)

// XP awarded per learning event
const (
	XPWordLearned   = 5
	XPBasicLesson   = 20
	XPQuizCompleted = 30

	dayFormat = "2006-01-02"
)

var ErrWordNotFound = errors.New("word not found")

// ProgressService records learning events and keeps the progress summary and
// XP ledger consistent. Every event runs inside one transaction: the
// idempotence flag, the counter increments and the XP award commit together
// or not at all.
type ProgressService struct {
	db           *database.DB
	progressRepo *repository.ProgressRepository
	wordRepo     *repository.WordRepository
	lessonRepo   *repository.LessonRepository
}

// NewProgressService creates a new progress service
func NewProgressService(db *database.DB, progressRepo *repository.ProgressRepository, wordRepo *repository.WordRepository, lessonRepo *repository.LessonRepository) *ProgressService {
	return &ProgressService{
		db:           db,
		progressRepo: progressRepo,
		wordRepo:     wordRepo,
		lessonRepo:   lessonRepo,
	}
}

// MarkWordLearned records that the user learned a vocabulary word. The first
// time a word is learned it awards counters and XP; repeats only refresh the
// practice timestamp and report isNew=false.
func (s *ProgressService) MarkWordLearned(userID, wordID int64) (bool, error) {
	var isNew bool

	err := s.db.WithinTx(func(tx *database.Tx) error {
		isNew = false

		word, err := s.wordRepo.GetWordByID(tx, wordID)
		if err != nil {
			return err
		}
		if word == nil {
			return ErrWordNotFound
		}

		if _, err := s.progressRepo.EnsureSummary(tx, userID); err != nil {
			return err
		}

		wp, err := s.wordRepo.GetWordProgress(tx, userID, wordID)
		if err != nil {
			return err
		}

		switch {
		case wp == nil:
			if err := s.wordRepo.CreateWordProgress(tx, userID, wordID, true); err != nil {
				return err
			}
			isNew = true
		case !wp.Learned:
			if err := s.wordRepo.MarkWordLearned(tx, userID, wordID); err != nil {
				return err
			}
			isNew = true
		default:
			// Already learned: refresh last practiced, award nothing
			return s.wordRepo.TouchWordProgress(tx, userID, wordID)
		}

		if err := s.progressRepo.IncrementWordCounters(tx, userID, word.Difficulty); err != nil {
			return err
		}
		return s.awardXP(tx, userID, models.XPReasonVocab, XPWordLearned)
	})
	if err != nil {
		return false, err
	}
	return isNew, nil
}

// CompleteBasicLesson records completion of a basic lesson. Only the first
// completion increments counters, advances today's progress and awards XP.
func (s *ProgressService) CompleteBasicLesson(userID int64, lessonName string) (bool, error) {
	if lessonName == "" {
		lessonName = models.DefaultBasicLessonName
	}
	if err := validation.ValidateLessonName(lessonName); err != nil {
		return false, err
	}

	var isNew bool

	err := s.db.WithinTx(func(tx *database.Tx) error {
		isNew = false

		if _, err := s.progressRepo.EnsureSummary(tx, userID); err != nil {
			return err
		}

		completion, err := s.lessonRepo.GetCompletion(tx, userID, lessonName)
		if err != nil {
			return err
		}
		if completion != nil && completion.IsCompleted {
			return nil
		}

		if completion == nil {
			if err := s.lessonRepo.CreateCompletion(tx, userID, lessonName, nil); err != nil {
				return err
			}
		} else {
			if err := s.lessonRepo.MarkCompleted(tx, completion.ID, nil); err != nil {
				return err
			}
		}
		isNew = true

		if err := s.progressRepo.IncrementLessonsCompleted(tx, userID); err != nil {
			return err
		}
		return s.awardXP(tx, userID, models.XPReasonLessonBasic, XPBasicLesson)
	})
	if err != nil {
		return false, err
	}
	return isNew, nil
}

// CompleteQuiz records completion of a quiz lesson with the achieved score.
// Counters and XP are awarded only on the first completion; repeat attempts
// still record their score.
func (s *ProgressService) CompleteQuiz(userID int64, lessonName string, score int) (bool, error) {
	if lessonName == "" {
		lessonName = models.DefaultQuizLessonName
	}
	if err := validation.ValidateLessonName(lessonName); err != nil {
		return false, err
	}
	if err := validation.ValidateQuizScore(score); err != nil {
		return false, err
	}

	var isNew bool

	err := s.db.WithinTx(func(tx *database.Tx) error {
		isNew = false

		if _, err := s.progressRepo.EnsureSummary(tx, userID); err != nil {
			return err
		}

		completion, err := s.lessonRepo.GetCompletion(tx, userID, lessonName)
		if err != nil {
			return err
		}
		if completion != nil && completion.IsCompleted {
			return s.lessonRepo.UpdateScore(tx, completion.ID, score)
		}

		if completion == nil {
			if err := s.lessonRepo.CreateCompletion(tx, userID, lessonName, &score); err != nil {
				return err
			}
		} else {
			if err := s.lessonRepo.MarkCompleted(tx, completion.ID, &score); err != nil {
				return err
			}
		}
		isNew = true

		if err := s.progressRepo.IncrementQuizzesCompleted(tx, userID); err != nil {
			return err
		}
		return s.awardXP(tx, userID, models.XPReasonQuiz, XPQuizCompleted)
	})
	if err != nil {
		return false, err
	}
	return isNew, nil
}

// awardXP adds amount to today's ledger row for the given reason and, when
// this is the user's first XP of the day, advances the streak: previous
// streak + 1 when yesterday had XP, otherwise back to 1.
func (s *ProgressService) awardXP(tx *database.Tx, userID int64, reason string, amount int) error {
	now := time.Now()
	today := now.Format(dayFormat)

	hadXPToday, err := s.progressRepo.HasXPOnDay(tx, userID, today)
	if err != nil {
		return err
	}

	if err := s.progressRepo.AddXP(tx, userID, today, reason, amount); err != nil {
		return err
	}

	if hadXPToday {
		return nil
	}

	yesterday := now.AddDate(0, 0, -1).Format(dayFormat)
	hadXPYesterday, err := s.progressRepo.HasXPOnDay(tx, userID, yesterday)
	if err != nil {
		return err
	}

	streak := 1
	if hadXPYesterday {
		summary, err := s.progressRepo.GetSummary(tx, userID)
		if err != nil {
			return err
		}
		if summary == nil {
			return fmt.Errorf("progress summary missing for user %d", userID)
		}
		streak = summary.StreakDays + 1
	}

	return s.progressRepo.SetStreakDays(tx, userID, streak)
}
