package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"lingualearn/internal/service"
	"lingualearn/internal/validation"
)

// LearningHandler serves the vocabulary/lesson catalog and records learning
// events
type LearningHandler struct {
	contentService  *service.ContentService
	progressService *service.ProgressService
}

// NewLearningHandler creates a new learning handler
func NewLearningHandler(contentService *service.ContentService, progressService *service.ProgressService) *LearningHandler {
	return &LearningHandler{
		contentService:  contentService,
		progressService: progressService,
	}
}

// ListVocabulary returns all vocabulary words with the user's learned flags
func (h *LearningHandler) ListVocabulary(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	entries, err := h.contentService.ListVocabulary(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load vocabulary", "vocabulary list error", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"words":   entries,
	})
}

// LearnWord records a word-learned event for the current user
func (h *LearningHandler) LearnWord(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	wordID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || wordID <= 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid word id", "", nil)
		return
	}

	isNew, err := h.progressService.MarkWordLearned(user.ID, wordID)
	if err != nil {
		if errors.Is(err, service.ErrWordNotFound) {
			respondWithError(w, http.StatusNotFound, "Word not found", "", nil)
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to record word", "learn word error", err)
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"already_learned": !isNew,
	})
}

// GetLessonWords returns the word slides of the basic lesson
func (h *LearningHandler) GetLessonWords(w http.ResponseWriter, r *http.Request) {
	lessonName := r.URL.Query().Get("lesson")

	words, err := h.contentService.GetLessonWords(lessonName)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load lesson words", "lesson words error", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"words":   words,
	})
}

type completeLessonRequest struct {
	LessonName string `json:"lesson_name"`
}

// CompleteBasicLesson records a basic-lesson completion event
func (h *LearningHandler) CompleteBasicLesson(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req completeLessonRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
			return
		}
	}

	isNew, err := h.progressService.CompleteBasicLesson(user.ID, req.LessonName)
	if err != nil {
		var validationErr validation.ValidationError
		if errors.As(err, &validationErr) {
			respondWithError(w, http.StatusBadRequest, validationErr.Error(), "", nil)
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to record lesson", "complete lesson error", err)
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"already_complete": !isNew,
	})
}

// GetQuizQuestions returns the questions of the quiz lesson
func (h *LearningHandler) GetQuizQuestions(w http.ResponseWriter, r *http.Request) {
	lessonName := r.URL.Query().Get("lesson")

	questions, err := h.contentService.GetQuizQuestions(lessonName)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load quiz questions", "quiz questions error", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"questions": questions,
	})
}

type completeQuizRequest struct {
	LessonName string `json:"lesson_name"`
	Score      *int   `json:"score"`
}

// CompleteQuiz records a quiz completion event with the achieved score
func (h *LearningHandler) CompleteQuiz(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req completeQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}
	if req.Score == nil {
		respondWithError(w, http.StatusBadRequest, "Missing score", "", nil)
		return
	}

	isNew, err := h.progressService.CompleteQuiz(user.ID, req.LessonName, *req.Score)
	if err != nil {
		var validationErr validation.ValidationError
		if errors.As(err, &validationErr) {
			respondWithError(w, http.StatusBadRequest, validationErr.Error(), "", nil)
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to record quiz", "complete quiz error", err)
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"already_complete": !isNew,
	})
}
