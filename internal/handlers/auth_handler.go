package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"lingualearn/internal/models"
	"lingualearn/internal/security"
	"lingualearn/internal/service"
	"lingualearn/internal/validation"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService          *service.AuthService
	googleOAuth          *GoogleOAuth
	oauthRedirectBaseURL string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, googleOAuth *GoogleOAuth, oauthRedirectBaseURL string) *AuthHandler {
	return &AuthHandler{
		authService:          authService,
		googleOAuth:          googleOAuth,
		oauthRedirectBaseURL: oauthRedirectBaseURL,
	}
}

type registerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func toUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}

// Register handles new account creation
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	user, err := h.authService.Register(r.Context(), req.Email, req.Password, req.FirstName, req.LastName, req.Phone)
	if err != nil {
		var validationErr validation.ValidationError
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			respondWithError(w, http.StatusConflict, "Email already taken", "", nil)
		case errors.As(err, &validationErr):
			respondWithError(w, http.StatusBadRequest, validationErr.Error(), "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, "Registration failed", "registration error", err)
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"user":    toUserResponse(user),
	})
}

// Login authenticates a user and sets the session cookie
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	session, user, apiToken, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondWithError(w, http.StatusUnauthorized, "Invalid email or password", "", nil)
		} else {
			respondWithError(w, http.StatusInternalServerError, "Login failed", "login error", err)
		}
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, "session_id", session.ID, session.ExpiresAt))

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    toUserResponse(user),
		"token":   apiToken,
	})
}

// Logout invalidates the current session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("session_id"); err == nil {
		if err := h.authService.Logout(cookie.Value); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Logout failed", "logout error", err)
			return
		}
	}

	http.SetCookie(w, security.CreateDeleteCookie(r, "session_id"))
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// VerifyEmail handles the verification link from the email
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		respondWithError(w, http.StatusBadRequest, "Missing verification token", "", nil)
		return
	}

	user, err := h.authService.VerifyEmail(r.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrInvalidVerifyToken) {
			respondWithError(w, http.StatusNotFound, "Invalid verification token", "", nil)
		} else {
			respondWithError(w, http.StatusInternalServerError, "Verification failed", "email verification error", err)
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    toUserResponse(user),
	})
}
