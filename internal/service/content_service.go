package service

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/xuri/excelize/v2"

	"lingualearn/internal/audio"
	"lingualearn/internal/database"
	"lingualearn/internal/models"
	"lingualearn/internal/repository"
)

// VocabularyEntry is a vocabulary word together with the current user's
// learned flag
type VocabularyEntry struct {
	Word    models.VocabularyWord `json:"word"`
	Learned bool                  `json:"learned"`
}

// ImportResult summarizes a spreadsheet import run
type ImportResult struct {
	TotalProcessed int
	Imported       int
	Skipped        int
	Errors         []string
}

// ContentService serves the vocabulary and lesson catalog and handles
// content seeding and spreadsheet import
type ContentService struct {
	db         *database.DB
	wordRepo   *repository.WordRepository
	lessonRepo *repository.LessonRepository
	ttsService *audio.TTSService
}

// NewContentService creates a new content service. ttsService may be nil when
// pronunciation audio is disabled.
func NewContentService(db *database.DB, wordRepo *repository.WordRepository, lessonRepo *repository.LessonRepository, ttsService *audio.TTSService) *ContentService {
	return &ContentService{
		db:         db,
		wordRepo:   wordRepo,
		lessonRepo: lessonRepo,
		ttsService: ttsService,
	}
}

// ListVocabulary returns all vocabulary words with the user's learned flags,
// ordered by english word
func (s *ContentService) ListVocabulary(userID int64) ([]VocabularyEntry, error) {
	words, err := s.wordRepo.ListWords(s.db)
	if err != nil {
		return nil, err
	}

	learnedIDs, err := s.wordRepo.LearnedWordIDs(s.db, userID)
	if err != nil {
		return nil, err
	}
	learned := make(map[int64]bool, len(learnedIDs))
	for _, id := range learnedIDs {
		learned[id] = true
	}

	entries := make([]VocabularyEntry, 0, len(words))
	for _, word := range words {
		entries = append(entries, VocabularyEntry{
			Word:    word,
			Learned: learned[word.ID],
		})
	}
	return entries, nil
}

// GetLessonWords returns the word slides of a basic lesson in order
func (s *ContentService) GetLessonWords(lessonName string) ([]models.LessonWord, error) {
	if lessonName == "" {
		lessonName = models.DefaultBasicLessonName
	}
	return s.lessonRepo.ListLessonWords(s.db, lessonName)
}

// GetQuizQuestions returns the questions of a quiz lesson in order
func (s *ContentService) GetQuizQuestions(lessonName string) ([]models.QuizQuestion, error) {
	if lessonName == "" {
		lessonName = models.DefaultQuizLessonName
	}
	return s.lessonRepo.ListQuizQuestions(s.db, lessonName)
}

// SeedDefaultContent loads the built-in Unit 1 vocabulary, lesson slides and
// quiz questions. It is a no-op when content already exists so it is safe to
// run at every startup.
func (s *ContentService) SeedDefaultContent() error {
	count, err := s.wordRepo.CountWords(s.db)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return s.db.WithinTx(func(tx *database.Tx) error {
		for _, w := range defaultVocabulary {
			if _, err := s.wordRepo.CreateWord(tx, w.English, w.Hindi, w.Difficulty, w.Description); err != nil {
				return fmt.Errorf("failed to seed word %q: %w", w.English, err)
			}
		}
		for i, w := range defaultLessonWords {
			if err := s.lessonRepo.CreateLessonWord(tx, models.DefaultBasicLessonName, w.EnglishWord, w.HindiWord, i+1); err != nil {
				return fmt.Errorf("failed to seed lesson word %q: %w", w.EnglishWord, err)
			}
		}
		for i, q := range defaultQuizQuestions {
			q.LessonName = models.DefaultQuizLessonName
			q.Position = i + 1
			if err := s.lessonRepo.CreateQuizQuestion(tx, q); err != nil {
				return fmt.Errorf("failed to seed quiz question %d: %w", i+1, err)
			}
		}
		log.Printf("Seeded default content: %d words, %d lesson slides, %d quiz questions",
			len(defaultVocabulary), len(defaultLessonWords), len(defaultQuizQuestions))
		return nil
	})
}

// GenerateMissingAudio creates pronunciation clips for vocabulary words that
// don't have one yet. Files are named word_<id>.mp3 so existing clips are
// skipped cheaply. Returns the number of clips generated.
func (s *ContentService) GenerateMissingAudio() (int, error) {
	if s.ttsService == nil {
		return 0, nil
	}

	words, err := s.wordRepo.ListWords(s.db)
	if err != nil {
		return 0, err
	}

	existing, err := s.ttsService.GetAllAudioFiles()
	if err != nil {
		return 0, err
	}
	have := make(map[string]bool, len(existing))
	for _, f := range existing {
		have[f] = true
	}

	generated := 0
	for _, word := range words {
		filename := fmt.Sprintf("word_%d.mp3", word.ID)
		if have[filename] {
			continue
		}
		if _, err := s.ttsService.GenerateAudioFile(word.ID, word.Hindi); err != nil {
			log.Printf("Warning: failed to generate audio for %q: %v", word.English, err)
			continue
		}
		generated++
	}

	return generated, nil
}

// ImportVocabularyXLSX imports vocabulary words from a spreadsheet. Expected
// columns: english, hindi, difficulty, description; the first row is treated
// as a header. Rows with a known english word are skipped.
func (s *ContentService) ImportVocabularyXLSX(filePath, sheetName string) (*ImportResult, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}

	existing, err := s.wordRepo.ListWords(s.db)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(existing))
	for _, w := range existing {
		known[strings.ToLower(w.English)] = true
	}

	result := &ImportResult{Errors: make([]string, 0)}

	err = s.db.WithinTx(func(tx *database.Tx) error {
		for i, row := range rows {
			if i == 0 {
				continue // header
			}
			result.TotalProcessed++

			word, err := parseVocabularyRow(row)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
				continue
			}
			if known[strings.ToLower(word.English)] {
				result.Skipped++
				continue
			}

			if _, err := s.wordRepo.CreateWord(tx, word.English, word.Hindi, word.Difficulty, word.Description); err != nil {
				return fmt.Errorf("row %d: %w", i+1, err)
			}
			known[strings.ToLower(word.English)] = true
			result.Imported++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func parseVocabularyRow(row []string) (*models.VocabularyWord, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	word := &models.VocabularyWord{
		English:     cell(0),
		Hindi:       cell(1),
		Difficulty:  strings.ToLower(cell(2)),
		Description: cell(3),
	}

	if word.English == "" || word.Hindi == "" {
		return nil, errors.New("missing english or hindi word")
	}
	switch word.Difficulty {
	case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
	case "":
		word.Difficulty = models.DifficultyEasy
	default:
		return nil, fmt.Errorf("unknown difficulty %q", word.Difficulty)
	}
	return word, nil
}

var defaultVocabulary = []models.VocabularyWord{
	{English: "Hello", Hindi: "नमस्ते", Difficulty: models.DifficultyEasy, Description: "A common greeting"},
	{English: "Thank you", Hindi: "धन्यवाद", Difficulty: models.DifficultyEasy, Description: "Expression of gratitude"},
	{English: "Yes", Hindi: "हाँ", Difficulty: models.DifficultyEasy, Description: "Affirmative answer"},
	{English: "No", Hindi: "नहीं", Difficulty: models.DifficultyEasy, Description: "Negative answer"},
	{English: "Water", Hindi: "पानी", Difficulty: models.DifficultyEasy, Description: "Something to drink"},
	{English: "Friend", Hindi: "दोस्त", Difficulty: models.DifficultyMedium, Description: "A close companion"},
	{English: "Family", Hindi: "परिवार", Difficulty: models.DifficultyMedium, Description: "Parents, siblings and relatives"},
	{English: "Teacher", Hindi: "शिक्षक", Difficulty: models.DifficultyMedium, Description: "A person who teaches"},
	{English: "Beautiful", Hindi: "सुंदर", Difficulty: models.DifficultyHard, Description: "Pleasing to look at"},
	{English: "Knowledge", Hindi: "ज्ञान", Difficulty: models.DifficultyHard, Description: "Understanding gained through learning"},
}

var defaultLessonWords = []models.LessonWord{
	{EnglishWord: "Hello", HindiWord: "नमस्ते"},
	{EnglishWord: "My name is", HindiWord: "मेरा नाम है"},
	{EnglishWord: "I am from", HindiWord: "मैं से हूँ"},
	{EnglishWord: "How are you?", HindiWord: "आप कैसे हैं?"},
	{EnglishWord: "I am fine", HindiWord: "मैं ठीक हूँ"},
	{EnglishWord: "Nice to meet you", HindiWord: "आपसे मिलकर खुशी हुई"},
	{EnglishWord: "What is your name?", HindiWord: "आपका नाम क्या है?"},
	{EnglishWord: "Where are you from?", HindiWord: "आप कहाँ से हैं?"},
	{EnglishWord: "Goodbye", HindiWord: "अलविदा"},
	{EnglishWord: "See you later", HindiWord: "फिर मिलेंगे"},
}

var defaultQuizQuestions = []models.QuizQuestion{
	{
		QuestionText:  "How do you say 'Hello' in Hindi?",
		OptionA:       "अलविदा",
		OptionB:       "नमस्ते",
		OptionC:       "धन्यवाद",
		OptionD:       "पानी",
		CorrectOption: "B",
	},
	{
		QuestionText:  "What does 'धन्यवाद' mean?",
		OptionA:       "Thank you",
		OptionB:       "Goodbye",
		OptionC:       "Water",
		OptionD:       "Friend",
		CorrectOption: "A",
	},
	{
		QuestionText:  "How do you ask 'What is your name?' in Hindi?",
		OptionA:       "आप कैसे हैं?",
		OptionB:       "आप कहाँ से हैं?",
		OptionC:       "आपका नाम क्या है?",
		OptionD:       "फिर मिलेंगे",
		CorrectOption: "C",
	},
	{
		QuestionText:  "What does 'मैं ठीक हूँ' mean?",
		OptionA:       "I am from",
		OptionB:       "See you later",
		OptionC:       "Nice to meet you",
		OptionD:       "I am fine",
		CorrectOption: "D",
	},
	{
		QuestionText:  "How do you say 'Goodbye' in Hindi?",
		OptionA:       "अलविदा",
		OptionB:       "नमस्ते",
		OptionC:       "हाँ",
		OptionD:       "नहीं",
		CorrectOption: "A",
	},
}
