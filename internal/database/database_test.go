package database_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/pageza/vegandiet/backend/internal/database"
	"github.com/pageza/vegandiet/backend/internal/testhelpers"
)

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := database.NewRedisClient("redis://"+mr.Addr(), zap.NewNop())
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestNewRedisClientBadURL(t *testing.T) {
	_, err := database.NewRedisClient("not a url", zap.NewNop())
	assert.Error(t, err)
}

func TestEnsureIndexes(t *testing.T) {
	db := testhelpers.SetupTestMongo(t)
	ctx := context.Background()

	// idempotent
	require.NoError(t, database.EnsureIndexes(ctx, db))

	cur, err := db.Collection(database.WeeklyMenusCollection).Indexes().List(ctx)
	require.NoError(t, err)
	var specs []bson.M
	require.NoError(t, cur.All(ctx, &specs))

	names := make([]string, 0, len(specs))
	for _, s := range specs {
		names = append(names, s["name"].(string))
	}
	assert.Contains(t, names, "userId_weekStart_unique")

	require.NoError(t, database.HealthCheck(ctx, db.Client()))
}
