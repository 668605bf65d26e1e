package models

// Default lesson names for the first unit
const (
	DefaultBasicLessonName = "Unit 1 - Basic"
	DefaultQuizLessonName  = "Unit 1 - Quiz"
)

// VocabularyWord is a dictionary entry learners can mark as learned
type VocabularyWord struct {
	ID          int64  `json:"id"`
	English     string `json:"english"`
	Hindi       string `json:"hindi"`
	Difficulty  string `json:"difficulty"`
	Description string `json:"description"`
}

// LessonWord is one slide of a basic lesson, ordered by Position
type LessonWord struct {
	ID          int64  `json:"id"`
	LessonName  string `json:"lesson_name"`
	EnglishWord string `json:"english_word"`
	HindiWord   string `json:"hindi_word"`
	Position    int    `json:"position"`
}

// QuizQuestion is a multiple-choice question belonging to a quiz lesson
type QuizQuestion struct {
	ID            int64  `json:"id"`
	LessonName    string `json:"lesson_name"`
	QuestionText  string `json:"question_text"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectOption string `json:"correct_option"`
	Position      int    `json:"position"`
}
