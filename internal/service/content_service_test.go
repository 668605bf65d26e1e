package service

import (
	"testing"

	"lingualearn/internal/models"
	"lingualearn/internal/repository"
)

func TestParseVocabularyRow(t *testing.T) {
	tests := []struct {
		name    string
		row     []string
		want    *models.VocabularyWord
		wantErr bool
	}{
		{
			name: "complete row",
			row:  []string{"Water", "पानी", "easy", "Something to drink"},
			want: &models.VocabularyWord{English: "Water", Hindi: "पानी", Difficulty: "easy", Description: "Something to drink"},
		},
		{
			name: "missing difficulty defaults to easy",
			row:  []string{"Friend", "दोस्त"},
			want: &models.VocabularyWord{English: "Friend", Hindi: "दोस्त", Difficulty: "easy"},
		},
		{
			name: "difficulty is case insensitive",
			row:  []string{"Teacher", "शिक्षक", "Medium"},
			want: &models.VocabularyWord{English: "Teacher", Hindi: "शिक्षक", Difficulty: "medium"},
		},
		{
			name: "whitespace trimmed",
			row:  []string{"  Hello  ", " नमस्ते ", " hard "},
			want: &models.VocabularyWord{English: "Hello", Hindi: "नमस्ते", Difficulty: "hard"},
		},
		{
			name:    "missing english word",
			row:     []string{"", "पानी"},
			wantErr: true,
		},
		{
			name:    "missing hindi word",
			row:     []string{"Water", ""},
			wantErr: true,
		},
		{
			name:    "unknown difficulty",
			row:     []string{"Water", "पानी", "impossible"},
			wantErr: true,
		},
		{
			name:    "empty row",
			row:     []string{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseVocabularyRow(tt.row)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseVocabularyRow() failed: %v", err)
			}
			if got.English != tt.want.English || got.Hindi != tt.want.Hindi ||
				got.Difficulty != tt.want.Difficulty || got.Description != tt.want.Description {
				t.Errorf("parseVocabularyRow() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSeedDefaultContent(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := setupTestDB(t)
	wordRepo := repository.NewWordRepository()
	lessonRepo := repository.NewLessonRepository()
	svc := NewContentService(db, wordRepo, lessonRepo, nil)

	if err := svc.SeedDefaultContent(); err != nil {
		t.Fatalf("SeedDefaultContent() failed: %v", err)
	}

	wordCount, err := wordRepo.CountWords(db)
	if err != nil {
		t.Fatalf("CountWords() failed: %v", err)
	}
	if wordCount != len(defaultVocabulary) {
		t.Errorf("Word count = %d, want %d", wordCount, len(defaultVocabulary))
	}

	slideCount, err := lessonRepo.CountLessonWords(db, models.DefaultBasicLessonName)
	if err != nil {
		t.Fatalf("CountLessonWords() failed: %v", err)
	}
	if slideCount != len(defaultLessonWords) {
		t.Errorf("Lesson word count = %d, want %d", slideCount, len(defaultLessonWords))
	}

	questionCount, err := lessonRepo.CountQuizQuestions(db, models.DefaultQuizLessonName)
	if err != nil {
		t.Fatalf("CountQuizQuestions() failed: %v", err)
	}
	if questionCount != len(defaultQuizQuestions) {
		t.Errorf("Quiz question count = %d, want %d", questionCount, len(defaultQuizQuestions))
	}

	// Second run must not duplicate content
	if err := svc.SeedDefaultContent(); err != nil {
		t.Fatalf("SeedDefaultContent() second run failed: %v", err)
	}
	wordCount, err = wordRepo.CountWords(db)
	if err != nil {
		t.Fatalf("CountWords() failed: %v", err)
	}
	if wordCount != len(defaultVocabulary) {
		t.Errorf("Word count after reseed = %d, want %d", wordCount, len(defaultVocabulary))
	}
}

func TestListVocabularyLearnedFlags(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := setupTestDB(t)
	userID := createTestUser(t, db, "list@example.com")
	learnedID := createTestWord(t, db, "Hello", "नमस्ते", models.DifficultyEasy)
	createTestWord(t, db, "Water", "पानी", models.DifficultyEasy)

	progressSvc := newTestProgressService(db)
	if _, err := progressSvc.MarkWordLearned(userID, learnedID); err != nil {
		t.Fatalf("MarkWordLearned() failed: %v", err)
	}

	svc := NewContentService(db, repository.NewWordRepository(), repository.NewLessonRepository(), nil)
	entries, err := svc.ListVocabulary(userID)
	if err != nil {
		t.Fatalf("ListVocabulary() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}

	for _, entry := range entries {
		want := entry.Word.ID == learnedID
		if entry.Learned != want {
			t.Errorf("Word %q learned = %v, want %v", entry.Word.English, entry.Learned, want)
		}
	}
}
