package repository

import (
	"database/sql"
	"fmt"
	"time"

	"lingualearn/internal/database"
	"lingualearn/internal/models"
)

// UserRepository handles database operations for users, sessions and
// email verifications
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a new user into the database
func (r *UserRepository) CreateUser(email, passwordHash, firstName, lastName, phone string) (*models.User, error) {
	// First user becomes admin
	var userCount int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&userCount); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	isAdmin := userCount == 0

	query := `
		INSERT INTO users (email, password_hash, first_name, last_name, phone, is_admin)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, email, passwordHash, firstName, lastName, phone, isAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &models.User{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
		Phone:        phone,
		IsAdmin:      isAdmin,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}, nil
}

const userColumns = `
	id, email, password_hash, first_name, last_name, COALESCE(phone, ''),
	COALESCE(oauth_provider, ''), COALESCE(oauth_subject, ''), is_admin, created_at, updated_at
`

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.Phone,
		&user.OAuthProvider,
		&user.OAuthSubject,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email address
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE email = ?"
	return scanUser(r.db.QueryRow(query, email))
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(id int64) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id = ?"
	return scanUser(r.db.QueryRow(query, id))
}

// GetUserByOAuth retrieves a user by OAuth provider and subject
func (r *UserRepository) GetUserByOAuth(provider, subject string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE oauth_provider = ? AND oauth_subject = ?"
	return scanUser(r.db.QueryRow(query, provider, subject))
}

// LinkOAuthProvider associates an OAuth identity with an existing user
func (r *UserRepository) LinkOAuthProvider(userID int64, provider, subject string) error {
	query := "UPDATE users SET oauth_provider = ?, oauth_subject = ?, updated_at = ? WHERE id = ?"
	if _, err := r.db.Exec(query, provider, subject, time.Now(), userID); err != nil {
		return fmt.Errorf("failed to link oauth provider: %w", err)
	}
	return nil
}

// CreateSession creates a new session for a user
func (r *UserRepository) CreateSession(sessionID string, userID int64, expiresAt time.Time) (*models.Session, error) {
	query := "INSERT INTO sessions (id, user_id, expires_at) VALUES (?, ?, ?)"
	if _, err := r.db.Exec(query, sessionID, userID, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &models.Session{
		ID:        sessionID,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}, nil
}

// GetSession retrieves a session by ID
func (r *UserRepository) GetSession(sessionID string) (*models.Session, error) {
	query := "SELECT id, user_id, expires_at, created_at FROM sessions WHERE id = ?"

	session := &models.Session{}
	err := r.db.QueryRow(query, sessionID).Scan(
		&session.ID,
		&session.UserID,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// DeleteSession removes a session
func (r *UserRepository) DeleteSession(sessionID string) error {
	_, err := r.db.Exec("DELETE FROM sessions WHERE id = ?", sessionID)
	return err
}

// DeleteExpiredSessions removes all expired sessions
func (r *UserRepository) DeleteExpiredSessions() error {
	_, err := r.db.Exec("DELETE FROM sessions WHERE expires_at < ?", time.Now())
	return err
}

// UpsertEmailVerification creates the verification row for a user or resets
// it with a fresh token and is_verified = false
func (r *UserRepository) UpsertEmailVerification(userID int64, token string) error {
	res, err := r.db.Exec(
		"UPDATE email_verifications SET token = ?, is_verified = ? WHERE user_id = ?",
		token, false, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to reset email verification: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected > 0 {
		return nil
	}

	_, err = r.db.Exec(
		"INSERT INTO email_verifications (user_id, token, is_verified) VALUES (?, ?, ?)",
		userID, token, false,
	)
	if err != nil {
		return fmt.Errorf("failed to create email verification: %w", err)
	}
	return nil
}

// GetVerificationByToken retrieves an email verification by its token
func (r *UserRepository) GetVerificationByToken(token string) (*models.EmailVerification, error) {
	query := "SELECT user_id, token, is_verified, created_at FROM email_verifications WHERE token = ?"

	verification := &models.EmailVerification{}
	err := r.db.QueryRow(query, token).Scan(
		&verification.UserID,
		&verification.Token,
		&verification.IsVerified,
		&verification.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get email verification: %w", err)
	}
	return verification, nil
}

// MarkEmailVerified flags a verification row as verified
func (r *UserRepository) MarkEmailVerified(userID int64) error {
	_, err := r.db.Exec("UPDATE email_verifications SET is_verified = ? WHERE user_id = ?", true, userID)
	return err
}
