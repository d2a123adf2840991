package repositories_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// exerciseNotificationRepository runs the behaviour shared by every notification store.
func exerciseNotificationRepository(t *testing.T, repo repositories.NotificationRepository) {
	ctx := context.Background()

	for i, n := range []*models.Notification{
		{RecipientID: 1, ActorID: 2, Verb: models.VerbLiked, CreatedAt: baseTime},
		{RecipientID: 1, ActorID: 3, Verb: models.VerbFollowed, CreatedAt: baseTime.Add(time.Minute)},
		{RecipientID: 1, ActorID: 2, Verb: models.VerbCommentedOn, CreatedAt: baseTime.Add(2 * time.Minute)},
		{RecipientID: 2, ActorID: 1, Verb: models.VerbReactedTo, CreatedAt: baseTime},
	} {
		if i != 1 {
			n.SetTarget(models.PostTarget(10))
		}
		require.NoError(t, repo.CreateNotification(ctx, n))
		require.NotZero(t, n.ID)
	}

	page, total, err := repo.GetByRecipientID(ctx, 1, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 2)
	assert.Equal(t, models.VerbCommentedOn, page[0].Verb)
	assert.Equal(t, models.VerbFollowed, page[1].Verb)
	assert.Nil(t, page[1].TargetRef())
	assert.Equal(t, models.PostTarget(10), page[0].TargetRef())

	got, err := repo.GetByID(ctx, page[0].ID)
	require.NoError(t, err)
	assert.Equal(t, uint(2), got.ActorID)

	require.NoError(t, repo.Delete(ctx, got.ID))
	assert.ErrorIs(t, repo.Delete(ctx, got.ID), repositories.ErrNotFound)
	_, err = repo.GetByID(ctx, got.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	require.NoError(t, repo.DeleteInvolvingUser(ctx, 2))
	_, total, err = repo.GetByRecipientID(ctx, 1, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	_, total, err = repo.GetByRecipientID(ctx, 2, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestPostgresNotificationRepository(t *testing.T) {
	exerciseNotificationRepository(t, repositories.NewPostgresNotificationRepository(testutil.NewDB(t)))
}

func TestMongoNotificationRepository(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx := context.Background()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	db := client.Database("social_test_" + uuid.NewString()[:8])
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	repo := repositories.NewMongoNotificationRepository(db)
	require.NoError(t, repo.EnsureIndexes(ctx))
	exerciseNotificationRepository(t, repo)
}
