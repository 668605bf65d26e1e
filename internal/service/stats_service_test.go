package service

import (
	"testing"
	"time"

	"lingualearn/internal/models"
	"lingualearn/internal/repository"
)

func TestGetUserStats(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := setupTestDB(t)
	userID := createTestUser(t, db, "stats@example.com")
	wordID := createTestWord(t, db, "Hello", "नमस्ते", models.DifficultyEasy)

	progressSvc := newTestProgressService(db)
	statsSvc := NewStatsService(db, repository.NewProgressRepository())

	// Stats for a user with no events show zeroes, not an error
	stats, err := statsSvc.GetUserStats(userID)
	if err != nil {
		t.Fatalf("GetUserStats() failed: %v", err)
	}
	if stats.WordsLearned != 0 || stats.TotalXP != 0 || stats.StreakDays != 0 {
		t.Errorf("Expected zeroed stats for fresh user, got %+v", stats)
	}

	if _, err := progressSvc.MarkWordLearned(userID, wordID); err != nil {
		t.Fatalf("MarkWordLearned() failed: %v", err)
	}
	if _, err := progressSvc.CompleteBasicLesson(userID, ""); err != nil {
		t.Fatalf("CompleteBasicLesson() failed: %v", err)
	}

	stats, err = statsSvc.GetUserStats(userID)
	if err != nil {
		t.Fatalf("GetUserStats() failed: %v", err)
	}
	if stats.WordsLearned != 1 {
		t.Errorf("WordsLearned = %d, want 1", stats.WordsLearned)
	}
	if stats.LessonsCompleted != 1 {
		t.Errorf("LessonsCompleted = %d, want 1", stats.LessonsCompleted)
	}
	if stats.TodayProgress != 10 {
		t.Errorf("TodayProgress = %v, want 10", stats.TodayProgress)
	}
	if want := XPWordLearned + XPBasicLesson; stats.TotalXP != want {
		t.Errorf("TotalXP = %d, want %d", stats.TotalXP, want)
	}
	if stats.StreakDays != 1 {
		t.Errorf("StreakDays = %d, want 1", stats.StreakDays)
	}
}

func TestGetDifficultyStats(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := setupTestDB(t)
	userID := createTestUser(t, db, "difficulty@example.com")
	easyID := createTestWord(t, db, "Yes", "हाँ", models.DifficultyEasy)
	hardID := createTestWord(t, db, "Beautiful", "सुंदर", models.DifficultyHard)
	createTestWord(t, db, "No", "नहीं", models.DifficultyMedium)

	progressSvc := newTestProgressService(db)
	statsSvc := NewStatsService(db, repository.NewProgressRepository())

	if _, err := progressSvc.MarkWordLearned(userID, easyID); err != nil {
		t.Fatalf("MarkWordLearned() failed: %v", err)
	}
	if _, err := progressSvc.MarkWordLearned(userID, hardID); err != nil {
		t.Fatalf("MarkWordLearned() failed: %v", err)
	}

	stats, err := statsSvc.GetDifficultyStats(userID)
	if err != nil {
		t.Fatalf("GetDifficultyStats() failed: %v", err)
	}

	if stats.Easy != 1 {
		t.Errorf("Easy = %d, want 1", stats.Easy)
	}
	if stats.Medium != 0 {
		t.Errorf("Medium = %d, want 0", stats.Medium)
	}
	if stats.Hard != 1 {
		t.Errorf("Hard = %d, want 1", stats.Hard)
	}
	// TotalWords counts words the user has learned, not the catalog size
	if stats.TotalWords != 2 {
		t.Errorf("TotalWords = %d, want 2", stats.TotalWords)
	}
	if stats.Streak != 1 {
		t.Errorf("Streak = %d, want 1", stats.Streak)
	}
}

func TestXPChartShape(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := setupTestDB(t)
	userID := createTestUser(t, db, "chart@example.com")
	progressRepo := repository.NewProgressRepository()
	statsSvc := NewStatsService(db, progressRepo)

	if _, err := progressRepo.EnsureSummary(db, userID); err != nil {
		t.Fatalf("EnsureSummary() failed: %v", err)
	}

	// XP today, three days ago and six days ago; eight days ago falls
	// outside the chart window
	now := time.Now()
	seed := []struct {
		daysAgo int
		amount  int
	}{
		{daysAgo: 0, amount: 25},
		{daysAgo: 3, amount: 30},
		{daysAgo: 6, amount: 5},
		{daysAgo: 8, amount: 100},
	}
	for _, s := range seed {
		day := now.AddDate(0, 0, -s.daysAgo).Format("2006-01-02")
		if err := progressRepo.AddXP(db, userID, day, models.XPReasonVocab, s.amount); err != nil {
			t.Fatalf("AddXP() failed: %v", err)
		}
	}

	stats, err := statsSvc.GetDifficultyStats(userID)
	if err != nil {
		t.Fatalf("GetDifficultyStats() failed: %v", err)
	}

	if len(stats.XPChart) != 7 {
		t.Fatalf("Chart length = %d, want 7", len(stats.XPChart))
	}

	// Oldest first, ending today, with weekday labels
	for i, entry := range stats.XPChart {
		day := now.AddDate(0, 0, i-6)
		if want := day.Format("Mon"); entry.Day != want {
			t.Errorf("Chart[%d].Day = %q, want %q", i, entry.Day, want)
		}
	}

	wantXP := []int{5, 0, 0, 30, 0, 0, 25}
	for i, want := range wantXP {
		if stats.XPChart[i].XP != want {
			t.Errorf("Chart[%d].XP = %d, want %d", i, stats.XPChart[i].XP, want)
		}
	}

	// XPTotal covers only the 7-day window
	if stats.XPTotal != 60 {
		t.Errorf("XPTotal = %d, want 60", stats.XPTotal)
	}
}
