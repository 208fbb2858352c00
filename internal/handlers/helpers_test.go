package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/crucial707/movies-api/internal/auth"
	"github.com/crucial707/movies-api/internal/middleware"
	"github.com/crucial707/movies-api/internal/models"
)

var errStoreDown = errors.New("connection refused")

// failingUsers and failingMovies simulate an unavailable store.
type failingUsers struct{}

func (failingUsers) Create(ctx context.Context, name, username, password string) (*models.User, error) {
	return nil, errStoreDown
}

func (failingUsers) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return nil, errStoreDown
}

type failingMovies struct{}

func (failingMovies) List(ctx context.Context) ([]models.Movie, error) { return nil, errStoreDown }
func (failingMovies) FindByTitle(ctx context.Context, title string) (*models.Movie, error) {
	return nil, errStoreDown
}
func (failingMovies) Create(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	return nil, errStoreDown
}
func (failingMovies) DeleteByTitle(ctx context.Context, title string) (bool, error) {
	return false, errStoreDown
}
func (failingMovies) UpdateByID(ctx context.Context, id string, update *models.MovieUpdate) (*models.Movie, error) {
	return nil, errStoreDown
}

func jsonRequest(method, path string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func withClaim(req *http.Request, username string) *http.Request {
	return req.WithContext(middleware.WithClaim(req.Context(), &auth.Claim{UserID: "u-" + username, Username: username}))
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
