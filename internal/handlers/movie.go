package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/crucial707/movies-api/internal/metrics"
	"github.com/crucial707/movies-api/internal/middleware"
	"github.com/crucial707/movies-api/internal/models"
	"github.com/crucial707/movies-api/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MovieHandler struct {
	Movies MovieStore
	Audit  AuditStore
	Logger *slog.Logger
}

//
// ==========================
// Get Movies
// ==========================
//

// GetMovies lists every movie, or returns one movie when a title is given either as the
// ?title= query parameter or as {"title": ...} in the body.
func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		var input struct {
			Title string `json:"title"`
		}
		if err := decodeJSON(r, &input); err != nil && !errors.Is(err, io.EOF) {
			badBody(w, err)
			return
		}
		title = input.Title
	}

	if title == "" {
		movies, err := h.Movies.List(r.Context())
		if err != nil {
			internalError(w, r, h.Logger, "list movies failed", err)
			return
		}
		writeJSON(w, http.StatusOK, movies)
		return
	}

	movie, err := h.Movies.FindByTitle(r.Context(), title)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			JSONError(w, "movie not found", http.StatusNotFound)
			return
		}
		internalError(w, r, h.Logger, "find movie failed", err)
		return
	}
	writeJSON(w, http.StatusOK, movie)
}

//
// ==========================
// Create Movie
// ==========================
//

func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var input models.Movie
	if err := decodeJSON(r, &input); err != nil {
		badBody(w, err)
		return
	}
	input.ID = primitive.NilObjectID

	if !h.validate(w, models.ValidateMovie(&input)) {
		return
	}

	movie, err := h.Movies.Create(r.Context(), &input)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateTitle) {
			JSONError(w, "movie already exists", http.StatusConflict)
			return
		}
		if !h.validate(w, err) {
			return
		}
		internalError(w, r, h.Logger, "create movie failed", err)
		return
	}

	h.audit(r.Context(), models.ActionCreate, movie.ID.Hex(), movie.Title)
	writeJSON(w, http.StatusCreated, movie)
}

//
// ==========================
// Delete Movie (by title)
// ==========================
//

func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Title string `json:"title"`
	}
	if err := decodeJSON(r, &input); err != nil && !errors.Is(err, io.EOF) {
		badBody(w, err)
		return
	}
	if input.Title == "" {
		JSONValidationError(w, "please include the title of the movie to delete", map[string]string{"title": "required"}, http.StatusBadRequest)
		return
	}

	deleted, err := h.Movies.DeleteByTitle(r.Context(), input.Title)
	if err != nil {
		internalError(w, r, h.Logger, "delete movie failed", err)
		return
	}
	if !deleted {
		JSONError(w, "movie not found", http.StatusNotFound)
		return
	}

	h.audit(r.Context(), models.ActionDelete, "", input.Title)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"title":   input.Title,
	})
}

//
// ==========================
// Update Movie (by id)
// ==========================
//

// UpdateMovie applies the supplied fields to the movie with the given "id". Title is an
// ordinary updatable field, not the key.
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ID string `json:"id"`
		models.MovieUpdate
	}
	if err := decodeJSON(r, &input); err != nil && !errors.Is(err, io.EOF) {
		badBody(w, err)
		return
	}
	if input.ID == "" {
		JSONValidationError(w, "id is required to update a movie", map[string]string{"id": "required"}, http.StatusBadRequest)
		return
	}
	if !h.validate(w, models.ValidateMovieUpdate(&input.MovieUpdate)) {
		return
	}

	movie, err := h.Movies.UpdateByID(r.Context(), input.ID, &input.MovieUpdate)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			JSONError(w, "movie not found", http.StatusNotFound)
			return
		}
		if !h.validate(w, err) {
			return
		}
		internalError(w, r, h.Logger, "update movie failed", err)
		return
	}

	h.audit(r.Context(), models.ActionUpdate, movie.ID.Hex(), movie.Title)
	writeJSON(w, http.StatusOK, movie)
}

// validate answers 400 and returns false when err is a validation error.
func (h *MovieHandler) validate(w http.ResponseWriter, err error) bool {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		JSONValidationError(w, "validation failed", verr.Fields, http.StatusBadRequest)
		return false
	}
	return true
}

// audit records a successful mutation. Failures are logged only.
func (h *MovieHandler) audit(ctx context.Context, action, movieID, title string) {
	metrics.IncMovieMutation(action)
	if h.Audit == nil {
		return
	}
	entry := models.AuditEntry{Action: action, MovieID: movieID, Title: title}
	if claim, ok := middleware.GetClaim(ctx); ok {
		entry.UserID = claim.UserID
		entry.Username = claim.Username
	}
	if err := h.Audit.Log(ctx, entry); err != nil {
		loggerOrDefault(h.Logger).Warn("audit log failed", "action", action, "title", title, "error", err)
	}
}
