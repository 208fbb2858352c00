package repo

import (
	"context"
	"testing"
	"time"

	"github.com/crucial707/movies-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestAuditRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("log", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := NewAuditRepo(mt.DB).Log(context.Background(), models.AuditEntry{
			UserID: "u1", Username: "a1", Action: models.ActionCreate, Title: "M",
		})
		require.NoError(mt, err)
		assert.Equal(mt, "insert", mt.GetStartedEvent().CommandName)
	})

	mt.Run("list", func(mt *mtest.T) {
		now := time.Now().UTC().Truncate(time.Millisecond)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "movies.audit", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "user_id", Value: "u1"},
			{Key: "username", Value: "a1"},
			{Key: "action", Value: "delete"},
			{Key: "title", Value: "M"},
			{Key: "created_at", Value: now},
		}))

		entries, err := NewAuditRepo(mt.DB).List(context.Background())
		require.NoError(mt, err)
		require.Len(mt, entries, 1)
		assert.Equal(mt, models.ActionDelete, entries[0].Action)
		assert.True(mt, now.Equal(entries[0].CreatedAt))
	})

	mt.Run("prune", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 4}))

		n, err := NewAuditRepo(mt.DB).Prune(context.Background(), time.Now().Add(-time.Hour))
		require.NoError(mt, err)
		assert.Equal(mt, int64(4), n)
		assert.Equal(mt, "delete", mt.GetStartedEvent().CommandName)
	})
}
