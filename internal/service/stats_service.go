package service

import (
	"time"

	"lingualearn/internal/database"
	"lingualearn/internal/models"
	"lingualearn/internal/repository"
)

// StatsService builds read-only dashboard projections from the progress
// summary and the XP ledger
type StatsService struct {
	db           *database.DB
	progressRepo *repository.ProgressRepository
}

// NewStatsService creates a new stats service
func NewStatsService(db *database.DB, progressRepo *repository.ProgressRepository) *StatsService {
	return &StatsService{
		db:           db,
		progressRepo: progressRepo,
	}
}

// GetUserStats returns the user's cumulative counters together with their
// all-time XP total
func (s *StatsService) GetUserStats(userID int64) (*models.UserStats, error) {
	summary, err := s.progressRepo.EnsureSummary(s.db, userID)
	if err != nil {
		return nil, err
	}

	totalXP, err := s.progressRepo.TotalXP(s.db, userID)
	if err != nil {
		return nil, err
	}

	return &models.UserStats{
		LessonsCompleted: summary.LessonsCompleted,
		QuizzesCompleted: summary.QuizzesCompleted,
		WordsLearned:     summary.WordsLearned,
		StreakDays:       summary.StreakDays,
		TodayProgress:    summary.TodayProgress,
		TotalXP:          totalXP,
	}, nil
}

// GetDifficultyStats returns the difficulty breakdown plus a 7-day XP chart.
// TotalWords is the user's learned count across all difficulties. The chart
// always has exactly seven entries, oldest first, ending today; days without
// XP appear with zero.
func (s *StatsService) GetDifficultyStats(userID int64) (*models.DifficultyStats, error) {
	summary, err := s.progressRepo.EnsureSummary(s.db, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	from := now.AddDate(0, 0, -6)

	totals, err := s.progressRepo.DailyTotals(s.db, userID, from.Format(dayFormat))
	if err != nil {
		return nil, err
	}

	chart := make([]models.XPChartEntry, 0, 7)
	xpTotal := 0
	for i := 0; i < 7; i++ {
		day := from.AddDate(0, 0, i)
		xp := totals[day.Format(dayFormat)]
		xpTotal += xp
		chart = append(chart, models.XPChartEntry{
			Day: day.Format("Mon"),
			XP:  xp,
		})
	}

	return &models.DifficultyStats{
		Easy:       summary.EasyWordsLearned,
		Medium:     summary.MediumWordsLearned,
		Hard:       summary.HardWordsLearned,
		TotalWords: summary.WordsLearned,
		XPTotal:    xpTotal,
		XPChart:    chart,
		Streak:     summary.StreakDays,
	}, nil
}
