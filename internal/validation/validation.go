package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) < 8 {
		return ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	return nil
}

// ValidateName checks if a name is valid
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if len(name) < 2 {
		return ValidationError{Field: "name", Message: "name must be at least 2 characters"}
	}
	return nil
}

// ValidateQuizScore checks that a quiz score is within the allowed range
func ValidateQuizScore(score int) error {
	if score < 0 || score > 100 {
		return ValidationError{Field: "score", Message: "score must be between 0 and 100"}
	}
	return nil
}

// ValidateLessonName checks that a lesson name is present and reasonably sized
func ValidateLessonName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "lesson", Message: "lesson name is required"}
	}
	if len(name) > 100 {
		return ValidationError{Field: "lesson", Message: "lesson name must be at most 100 characters"}
	}
	return nil
}
