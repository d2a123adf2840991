package repositories_test

import (
	"context"
	"iter"
	"testing"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectUsernames(t *testing.T, seq iter.Seq2[models.User, error]) []string {
	t.Helper()
	var names []string
	for u, err := range seq {
		require.NoError(t, err)
		names = append(names, u.Username)
	}
	return names
}

func TestCreateFollowIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repositories.NewPostgresFollowRepository(db)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	created, err := repo.CreateFollow(ctx, &models.Follow{FollowerID: alice.ID, FollowingID: bob.ID})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.CreateFollow(ctx, &models.Follow{FollowerID: alice.ID, FollowingID: bob.ID})
	require.NoError(t, err)
	assert.False(t, created)

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFollowsRejectSelfEdge(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice")

	err := db.Create(&models.Follow{FollowerID: alice.ID, FollowingID: alice.ID}).Error
	assert.Error(t, err)
}

func TestFollowIsAsymmetric(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repositories.NewPostgresFollowRepository(db)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	_, err := repo.CreateFollow(ctx, &models.Follow{FollowerID: alice.ID, FollowingID: bob.ID})
	require.NoError(t, err)

	ok, err := repo.IsFollowing(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.IsFollowing(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	followers, err := repo.GetFollowersCount(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), followers)

	following, err := repo.GetFollowingCount(ctx, bob.ID)
	require.NoError(t, err)
	assert.Zero(t, following)
}

func TestFollowSequencesAreReadWhenRanged(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repositories.NewPostgresFollowRepository(db)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	carol := testutil.CreateUser(t, db, "carol")

	following := repo.Following(ctx, alice.ID)
	followers := repo.Followers(ctx, carol.ID)
	assert.Empty(t, collectUsernames(t, following))

	for _, target := range []*models.User{bob, carol} {
		_, err := repo.CreateFollow(ctx, &models.Follow{FollowerID: alice.ID, FollowingID: target.ID})
		require.NoError(t, err)
	}
	_, err := repo.CreateFollow(ctx, &models.Follow{FollowerID: bob.ID, FollowingID: carol.ID})
	require.NoError(t, err)

	assert.Equal(t, []string{"bob", "carol"}, collectUsernames(t, following))
	assert.Equal(t, []string{"alice", "bob"}, collectUsernames(t, followers))

	removed, err := repo.DeleteFollow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, []string{"carol"}, collectUsernames(t, following))

	removed, err = repo.DeleteFollow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestFollowSequenceStopsEarly(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repositories.NewPostgresFollowRepository(db)
	alice := testutil.CreateUser(t, db, "alice")
	for _, name := range []string{"bob", "carol", "dave"} {
		u := testutil.CreateUser(t, db, name)
		_, err := repo.CreateFollow(ctx, &models.Follow{FollowerID: alice.ID, FollowingID: u.ID})
		require.NoError(t, err)
	}

	var first string
	for u, err := range repo.Following(ctx, alice.ID) {
		require.NoError(t, err)
		first = u.Username
		break
	}
	assert.Equal(t, "bob", first)

	// The cursor was released, so the single connection is usable again.
	ids, err := repo.GetFollowingIDs(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, ids, 3)
}

func TestFollowPages(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repositories.NewPostgresFollowRepository(db)
	alice := testutil.CreateUser(t, db, "alice")
	for _, name := range []string{"bob", "carol", "dave"} {
		u := testutil.CreateUser(t, db, name)
		_, err := repo.CreateFollow(ctx, &models.Follow{FollowerID: alice.ID, FollowingID: u.ID})
		require.NoError(t, err)
		_, err = repo.CreateFollow(ctx, &models.Follow{FollowerID: u.ID, FollowingID: alice.ID})
		require.NoError(t, err)
	}

	names := func(users []models.User) []string {
		out := make([]string, len(users))
		for i, u := range users {
			out[i] = u.Username
		}
		return out
	}

	page, err := repo.FollowingPage(ctx, alice.ID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"carol", "dave"}, names(page))

	page, err = repo.FollowersPage(ctx, alice.ID, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob", "carol"}, names(page))

	page, err = repo.FollowersPage(ctx, alice.ID, 3, 2)
	require.NoError(t, err)
	assert.Empty(t, page)
}
