package repo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/crucial707/movies-api/internal/auth"
	"github.com/crucial707/movies-api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The memory backends keep everything in process. They follow the Mongo repos' contracts
// and back STORE=memory runs and the router tests.

// MemoryUserRepo is an in-process credential store keyed by username.
type MemoryUserRepo struct {
	mu    sync.Mutex
	users map[string]models.User
}

func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{users: make(map[string]models.User)}
}

func (r *MemoryUserRepo) Create(ctx context.Context, name, username, password string) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[username]; ok {
		return nil, ErrDuplicateUsername
	}
	user := models.User{
		ID:           primitive.NewObjectID(),
		Name:         name,
		Username:     username,
		PasswordHash: hash,
	}
	r.users[username] = user
	return &user, nil
}

func (r *MemoryUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

// Count returns the number of stored users.
func (r *MemoryUserRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

// MemoryMovieRepo is an in-process movie repository.
type MemoryMovieRepo struct {
	mu     sync.RWMutex
	movies map[primitive.ObjectID]models.Movie
}

func NewMemoryMovieRepo() *MemoryMovieRepo {
	return &MemoryMovieRepo{movies: make(map[primitive.ObjectID]models.Movie)}
}

// List returns movies ordered by title.
func (r *MemoryMovieRepo) List(ctx context.Context) ([]models.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Movie, 0, len(r.movies))
	for _, m := range r.movies {
		out = append(out, cloneMovie(m))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (r *MemoryMovieRepo) FindByTitle(ctx context.Context, title string) (*models.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if m, ok := r.findByTitle(title); ok {
		return &m, nil
	}
	return nil, ErrNotFound
}

func (r *MemoryMovieRepo) Create(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	if err := models.ValidateMovie(movie); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.findByTitle(movie.Title); ok {
		return nil, ErrDuplicateTitle
	}
	created := cloneMovie(*movie)
	created.ID = primitive.NewObjectID()
	r.movies[created.ID] = created
	out := cloneMovie(created)
	return &out, nil
}

func (r *MemoryMovieRepo) DeleteByTitle(ctx context.Context, title string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.findByTitle(title)
	if !ok {
		return false, nil
	}
	delete(r.movies, m.ID)
	return true, nil
}

func (r *MemoryMovieRepo) UpdateByID(ctx context.Context, id string, update *models.MovieUpdate) (*models.Movie, error) {
	if err := models.ValidateMovieUpdate(update); err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.movies[oid]
	if !ok {
		return nil, ErrNotFound
	}
	update.Apply(&m)
	r.movies[oid] = m
	out := cloneMovie(m)
	return &out, nil
}

// findByTitle returns the first movie with title, in id order. Callers hold mu.
func (r *MemoryMovieRepo) findByTitle(title string) (models.Movie, bool) {
	var found models.Movie
	ok := false
	for _, m := range r.movies {
		if m.Title != title {
			continue
		}
		if !ok || m.ID.Hex() < found.ID.Hex() {
			found, ok = cloneMovie(m), true
		}
	}
	return found, ok
}

func cloneMovie(m models.Movie) models.Movie {
	m.Actors = append([]string(nil), m.Actors...)
	return m
}

// MemoryAuditRepo is an in-process audit log.
type MemoryAuditRepo struct {
	mu      sync.Mutex
	entries []models.AuditEntry
}

func NewMemoryAuditRepo() *MemoryAuditRepo {
	return &MemoryAuditRepo{}
}

func (r *MemoryAuditRepo) Log(ctx context.Context, entry models.AuditEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	entry.ID = primitive.NewObjectID()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

// List returns up to AuditLimit entries, newest first.
func (r *MemoryAuditRepo) List(ctx context.Context) ([]models.AuditEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.AuditEntry, 0, len(r.entries))
	for i := len(r.entries) - 1; i >= 0 && len(out) < AuditLimit; i-- {
		out = append(out, r.entries[i])
	}
	return out, nil
}

func (r *MemoryAuditRepo) Prune(ctx context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.entries[:0]
	for _, e := range r.entries {
		if !e.CreatedAt.Before(before) {
			kept = append(kept, e)
		}
	}
	removed := int64(len(r.entries) - len(kept))
	r.entries = kept
	return removed, nil
}
