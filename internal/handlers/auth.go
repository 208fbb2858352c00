package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/crucial707/movies-api/internal/auth"
	"github.com/crucial707/movies-api/internal/metrics"
	"github.com/crucial707/movies-api/internal/repo"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Users  UserStore
	Issuer *auth.Issuer
	Logger *slog.Logger
}

// ==========================
// Signup (name, username and password required; password stored as bcrypt hash)
// ==========================
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name     string `json:"name"`
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := decodeJSON(r, &input); err != nil {
		metrics.IncAuth("signup", "invalid")
		badBody(w, err)
		return
	}
	fields := make(map[string]string)
	if input.Name == "" {
		fields["name"] = "required"
	}
	if input.Username == "" {
		fields["username"] = "required"
	}
	if input.Password == "" {
		fields["password"] = "required"
	}
	if len(fields) > 0 {
		metrics.IncAuth("signup", "invalid")
		JSONValidationError(w, "please include name, username and password to signup", fields, http.StatusBadRequest)
		return
	}

	user, err := h.Users.Create(r.Context(), input.Name, input.Username, input.Password)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateUsername) {
			metrics.IncAuth("signup", "conflict")
			JSONError(w, "a user with that username already exists", http.StatusConflict)
			return
		}
		metrics.IncAuth("signup", "error")
		internalError(w, r, h.Logger, "signup: create user failed", err)
		return
	}

	metrics.IncAuth("signup", "ok")
	writeJSON(w, http.StatusCreated, user)
}

// ==========================
// Signin (username + password; returns "JWT <token>")
// ==========================
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := decodeJSON(r, &input); err != nil {
		metrics.IncAuth("signin", "invalid")
		badBody(w, err)
		return
	}
	if input.Username == "" || input.Password == "" {
		metrics.IncAuth("signin", "unauthorized")
		JSONError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	user, err := h.Users.FindByUsername(r.Context(), input.Username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			metrics.IncAuth("signin", "unauthorized")
			JSONError(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		metrics.IncAuth("signin", "error")
		internalError(w, r, h.Logger, "signin: find user failed", err)
		return
	}

	if !auth.CheckPassword(input.Password, user.PasswordHash) {
		metrics.IncAuth("signin", "unauthorized")
		JSONError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := h.Issuer.Issue(auth.Claim{UserID: user.ID.Hex(), Username: user.Username})
	if err != nil {
		metrics.IncAuth("signin", "error")
		internalError(w, r, h.Logger, "signin: issue token failed", err)
		return
	}

	metrics.IncAuth("signin", "ok")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   auth.HeaderPrefix + token,
	})
}
