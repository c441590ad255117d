package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/vknyazev/passvault/internal/models"
)

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// Register creates a new user and their default vault.
	Register(ctx context.Context, email, password string) (*models.User, error)
	// Login verifies credentials and returns a session token with the
	// user profile.
	Login(ctx context.Context, email, password string) (string, *models.User, error)
}

// AuthHandler handles HTTP requests for user registration and login.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
}

// credentialsRequest represents the JSON payload for registration and login.
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userResponse is the public user profile; the password hash never
// leaves the service layer.
type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Register handles POST /api/register.
// It expects a JSON body with non-empty "email" and "password" fields,
// creates the user together with their default vault and responds with
// 201 and the new user's id and email.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.AuthService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, userResponse{ID: user.ID, Email: user.Email})
}

// Login handles POST /api/login.
// On success it responds with a session token and the minimal user
// profile. An unknown email and a wrong password produce identical
// responses.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	token, user, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  userResponse{ID: user.ID, Email: user.Email},
	})
}
