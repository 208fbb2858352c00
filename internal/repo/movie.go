package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/crucial707/movies-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ========================
// REPOSITORY STRUCT
// ========================

type MovieRepo struct {
	coll *mongo.Collection
}

func NewMovieRepo(db *mongo.Database) *MovieRepo {
	return &MovieRepo{coll: db.Collection("movies")}
}

// ========================
// LIST MOVIES
// ========================

func (r *MovieRepo) List(ctx context.Context) ([]models.Movie, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find movies: %w", err)
	}

	movies := []models.Movie{}
	if err := cur.All(ctx, &movies); err != nil {
		return nil, fmt.Errorf("decode movies: %w", err)
	}
	return movies, nil
}

// ========================
// FIND BY TITLE
// ========================

func (r *MovieRepo) FindByTitle(ctx context.Context, title string) (*models.Movie, error) {
	var movie models.Movie
	err := r.coll.FindOne(ctx, bson.M{"title": title}).Decode(&movie)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find movie: %w", err)
	}
	return &movie, nil
}

// ========================
// CREATE MOVIE
// ========================

// Create validates and inserts movie. The duplicate-title check is a read before the
// insert and is not atomic: two concurrent creates of the same title can both succeed.
// There is no unique index on title.
func (r *MovieRepo) Create(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	if err := models.ValidateMovie(movie); err != nil {
		return nil, err
	}

	if _, err := r.FindByTitle(ctx, movie.Title); err == nil {
		return nil, ErrDuplicateTitle
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	created := *movie
	created.ID = primitive.NilObjectID
	res, err := r.coll.InsertOne(ctx, &created)
	if err != nil {
		return nil, fmt.Errorf("insert movie: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = id
	}
	return &created, nil
}

// ========================
// DELETE BY TITLE
// ========================

func (r *MovieRepo) DeleteByTitle(ctx context.Context, title string) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"title": title})
	if err != nil {
		return false, fmt.Errorf("delete movie: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// ========================
// UPDATE BY ID
// ========================

// UpdateByID sets only the supplied fields and returns the updated movie. An id that is not
// a valid ObjectID cannot match any movie and yields ErrNotFound.
func (r *MovieRepo) UpdateByID(ctx context.Context, id string, update *models.MovieUpdate) (*models.Movie, error) {
	if err := models.ValidateMovieUpdate(update); err != nil {
		return nil, err
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var movie models.Movie
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M(update.SetFields())},
		opts,
	).Decode(&movie)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update movie: %w", err)
	}
	return &movie, nil
}
