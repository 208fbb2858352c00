package repo

import (
	"context"
	"testing"

	"github.com/crucial707/movies-api/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestUserRepo_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("stores hashed password", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		user, err := NewUserRepo(mt.DB).Create(context.Background(), "A", "a1", "p")
		require.NoError(mt, err)
		assert.False(mt, user.ID.IsZero())
		assert.Equal(mt, "a1", user.Username)
		assert.NotEqual(mt, "p", user.PasswordHash)
		assert.True(mt, auth.CheckPassword("p", user.PasswordHash))

		sent := mt.GetStartedEvent()
		require.NotNil(mt, sent)
		assert.Equal(mt, "insert", sent.CommandName)
		assert.NotContains(mt, sent.Command.String(), `"p"`)
	})

	mt.Run("duplicate username", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: movies.users index: users_username_unique",
		}))

		_, err := NewUserRepo(mt.DB).Create(context.Background(), "A", "a1", "p")
		assert.ErrorIs(mt, err, ErrDuplicateUsername)
	})

	mt.Run("other write error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Message: "unauthorized",
		}))

		_, err := NewUserRepo(mt.DB).Create(context.Background(), "A", "a1", "p")
		require.Error(mt, err)
		assert.NotErrorIs(mt, err, ErrDuplicateUsername)
	})
}

func TestUserRepo_FindByUsername(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "movies.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "name", Value: "Charlie"},
			{Key: "username", Value: "charlie"},
			{Key: "password", Value: "$2a$10$hash"},
		}))

		user, err := NewUserRepo(mt.DB).FindByUsername(context.Background(), "charlie")
		require.NoError(mt, err)
		assert.Equal(mt, id, user.ID)
		assert.Equal(mt, "Charlie", user.Name)
		assert.Equal(mt, "$2a$10$hash", user.PasswordHash)
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "movies.users", mtest.FirstBatch))

		_, err := NewUserRepo(mt.DB).FindByUsername(context.Background(), "nobody")
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}
