package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"lingualearn/internal/database"
	"lingualearn/internal/models"
	"lingualearn/internal/repository"
	"lingualearn/internal/security"
	"lingualearn/internal/validation"
)

var (
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
	ErrInvalidVerifyToken = errors.New("invalid verification token")
)

// AuthService handles authentication business logic
type AuthService struct {
	db              *database.DB
	userRepo        *repository.UserRepository
	progressRepo    *repository.ProgressRepository
	emailService    *EmailService
	sessionDuration time.Duration
	tokenSecret     string
	tokenTTL        time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(db *database.DB, userRepo *repository.UserRepository, progressRepo *repository.ProgressRepository, emailService *EmailService, sessionDuration time.Duration, tokenSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		db:              db,
		userRepo:        userRepo,
		progressRepo:    progressRepo,
		emailService:    emailService,
		sessionDuration: sessionDuration,
		tokenSecret:     tokenSecret,
		tokenTTL:        tokenTTL,
	}
}

// Register creates a new user account, initializes their progress summary and
// sends a verification email
func (s *AuthService) Register(ctx context.Context, email, password, firstName, lastName, phone string) (*models.User, error) {
	// Validate inputs
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}
	if err := validation.ValidateName(firstName); err != nil {
		return nil, err
	}

	// Check if email already exists
	existingUser, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, ErrEmailTaken
	}

	// Hash password
	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Create user
	user, err := s.userRepo.CreateUser(email, passwordHash, firstName, lastName, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Initialize the progress summary so first stats reads never miss
	if _, err := s.progressRepo.EnsureSummary(s.db, user.ID); err != nil {
		return nil, fmt.Errorf("failed to initialize progress: %w", err)
	}

	// Create a verification token and send the verification email
	token := security.GenerateVerificationToken()
	if err := s.userRepo.UpsertEmailVerification(user.ID, token); err != nil {
		return nil, fmt.Errorf("failed to create verification token: %w", err)
	}

	if s.emailService != nil {
		if err := s.emailService.SendVerificationEmail(ctx, user.Email, user.FirstName, token); err != nil {
			// Log but don't fail registration - the email can be resent later
			log.Printf("Warning: failed to send verification email to %s: %v", user.Email, err)
		}
	}

	return user, nil
}

// Login authenticates a user, creates a session and issues an API bearer token
func (s *AuthService) Login(email, password string) (*models.Session, *models.User, string, error) {
	// Get user by email
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, nil, "", ErrInvalidCredentials
	}

	// Check password
	if !security.CheckPassword(password, user.PasswordHash) {
		return nil, nil, "", ErrInvalidCredentials
	}

	// Create session
	sessionID := security.GenerateSessionID()
	expiresAt := time.Now().Add(s.sessionDuration)

	session, err := s.userRepo.CreateSession(sessionID, user.ID, expiresAt)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to create session: %w", err)
	}

	apiToken, err := security.IssueAPIToken(s.tokenSecret, user.ID, s.tokenTTL)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to issue API token: %w", err)
	}

	return session, user, apiToken, nil
}

// ValidateSession checks if a session is valid and returns the associated user
func (s *AuthService) ValidateSession(sessionID string) (*models.User, error) {
	// Get session
	session, err := s.userRepo.GetSession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	// Check if expired
	if session.IsExpired() {
		// Clean up expired session
		_ = s.userRepo.DeleteSession(sessionID)
		return nil, ErrSessionExpired
	}

	// Get user
	user, err := s.userRepo.GetUserByID(session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrSessionNotFound
	}

	return user, nil
}

// ValidateAPIToken verifies a bearer token and returns the associated user
func (s *AuthService) ValidateAPIToken(token string) (*models.User, error) {
	userID, err := security.ValidateAPIToken(s.tokenSecret, token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, security.ErrInvalidToken
	}

	return user, nil
}

// Logout invalidates a session
func (s *AuthService) Logout(sessionID string) error {
	if err := s.userRepo.DeleteSession(sessionID); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}
	return nil
}

// VerifyEmail marks a user's email as verified using the token from their
// verification link and sends the welcome email
func (s *AuthService) VerifyEmail(ctx context.Context, token string) (*models.User, error) {
	verification, err := s.userRepo.GetVerificationByToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to get verification: %w", err)
	}
	if verification == nil {
		return nil, ErrInvalidVerifyToken
	}

	user, err := s.userRepo.GetUserByID(verification.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidVerifyToken
	}

	if verification.IsVerified {
		return user, nil
	}

	if err := s.userRepo.MarkEmailVerified(verification.UserID); err != nil {
		return nil, fmt.Errorf("failed to mark email verified: %w", err)
	}

	if s.emailService != nil {
		if err := s.emailService.SendWelcomeEmail(ctx, user.Email, user.FirstName); err != nil {
			log.Printf("Warning: failed to send welcome email to %s: %v", user.Email, err)
		}
	}

	return user, nil
}

// CleanupExpiredSessions removes expired sessions from the database
func (s *AuthService) CleanupExpiredSessions() error {
	if err := s.userRepo.DeleteExpiredSessions(); err != nil {
		return fmt.Errorf("failed to cleanup sessions: %w", err)
	}
	return nil
}

// OAuthLogin authenticates or creates a user using an OAuth provider
func (s *AuthService) OAuthLogin(provider, subject, email, name string) (*models.Session, *models.User, string, error) {
	if provider == "" || subject == "" {
		return nil, nil, "", errors.New("missing oauth provider information")
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, nil, "", err
	}

	user, err := s.userRepo.GetUserByOAuth(provider, subject)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to lookup oauth user: %w", err)
	}

	if user == nil {
		existingUser, err := s.userRepo.GetUserByEmail(email)
		if err != nil {
			return nil, nil, "", fmt.Errorf("failed to check existing user: %w", err)
		}
		if existingUser != nil {
			if existingUser.OAuthProvider != "" && existingUser.OAuthProvider != provider {
				return nil, nil, "", ErrEmailTaken
			}
			if err := s.userRepo.LinkOAuthProvider(existingUser.ID, provider, subject); err != nil {
				return nil, nil, "", fmt.Errorf("failed to link oauth provider: %w", err)
			}
			user = existingUser
		} else {
			firstName, lastName := splitDisplayName(name, email)
			randomPasswordHash, err := security.HashPassword(security.GenerateSessionID())
			if err != nil {
				return nil, nil, "", fmt.Errorf("failed to generate oauth password hash: %w", err)
			}
			newUser, err := s.userRepo.CreateUser(email, randomPasswordHash, firstName, lastName, "")
			if err != nil {
				return nil, nil, "", fmt.Errorf("failed to create oauth user: %w", err)
			}
			if err := s.userRepo.LinkOAuthProvider(newUser.ID, provider, subject); err != nil {
				return nil, nil, "", fmt.Errorf("failed to link oauth provider: %w", err)
			}
			if _, err := s.progressRepo.EnsureSummary(s.db, newUser.ID); err != nil {
				return nil, nil, "", fmt.Errorf("failed to initialize progress: %w", err)
			}
			// OAuth providers have already verified the email address
			if err := s.userRepo.UpsertEmailVerification(newUser.ID, security.GenerateVerificationToken()); err != nil {
				return nil, nil, "", fmt.Errorf("failed to create verification record: %w", err)
			}
			if err := s.userRepo.MarkEmailVerified(newUser.ID); err != nil {
				return nil, nil, "", fmt.Errorf("failed to mark email verified: %w", err)
			}
			user = newUser
		}
	}

	sessionID := security.GenerateSessionID()
	expiresAt := time.Now().Add(s.sessionDuration)
	session, err := s.userRepo.CreateSession(sessionID, user.ID, expiresAt)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to create session: %w", err)
	}

	apiToken, err := security.IssueAPIToken(s.tokenSecret, user.ID, s.tokenTTL)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to issue API token: %w", err)
	}

	return session, user, apiToken, nil
}

// splitDisplayName splits an OAuth display name into first and last name,
// falling back to the email local part when no name is available
func splitDisplayName(name, email string) (string, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return strings.Split(email, "@")[0], ""
	}
	parts := strings.SplitN(name, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}
