package models

import "time"

// User represents a learner account
type User struct {
	ID            int64
	Email         string
	PasswordHash  string
	FirstName     string
	LastName      string
	Phone         string
	OAuthProvider string
	OAuthSubject  string
	IsAdmin       bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Session represents an authenticated session
type Session struct {
	ID        string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired checks if the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// EmailVerification tracks the verification state of a user's email address.
// One row per user; the token is a UUID embedded in the verification link.
type EmailVerification struct {
	UserID     int64
	Token      string
	IsVerified bool
	CreatedAt  time.Time
}
