package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/crucial707/movies-api/internal/auth"
	"github.com/crucial707/movies-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	coll *mongo.Collection
}

// ==========================
// Constructor
// ==========================
func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{coll: db.Collection("users")}
}

// ==========================
// Create User
// ==========================

// Create hashes password and stores a new user. Username uniqueness is enforced by the
// users_username_unique index, so concurrent signups cannot both succeed.
func (r *UserRepo) Create(ctx context.Context, name, username, password string) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Username:     username,
		PasswordHash: hash,
	}

	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}

	return user, nil
}

// ==========================
// Find By Username
// ==========================
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}
