package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/crucial707/movies-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AuditLimit caps how many entries List returns.
const AuditLimit = 100

// AuditRepo persists audit log entries.
type AuditRepo struct {
	coll *mongo.Collection
}

// NewAuditRepo returns a new AuditRepo.
func NewAuditRepo(db *mongo.Database) *AuditRepo {
	return &AuditRepo{coll: db.Collection("audit")}
}

// Log records an audit entry. CreatedAt is set when zero.
func (r *AuditRepo) Log(ctx context.Context, entry models.AuditEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if _, err := r.coll.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// List returns the most recent audit entries, newest first.
func (r *AuditRepo) List(ctx context.Context) ([]models.AuditEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(AuditLimit)
	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find audit entries: %w", err)
	}

	entries := []models.AuditEntry{}
	if err := cur.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode audit entries: %w", err)
	}
	return entries, nil
}

// Prune deletes entries created before the cutoff and returns how many were removed.
func (r *AuditRepo) Prune(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"created_at": bson.M{"$lt": before}})
	if err != nil {
		return 0, fmt.Errorf("prune audit entries: %w", err)
	}
	return res.DeletedCount, nil
}
