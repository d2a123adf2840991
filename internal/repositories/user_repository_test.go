package repositories_test

import (
	"context"
	"testing"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserUniqueUsername(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repositories.NewPostgresUserRepository(db)

	require.NoError(t, repo.CreateUser(ctx, &models.User{Username: "alice", Email: "a@example.com"}))
	err := repo.CreateUser(ctx, &models.User{Username: "alice", Email: "other@example.com"})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	_, err = repo.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestSearchUsers(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repositories.NewPostgresUserRepository(db)
	testutil.CreateUser(t, db, "alice")
	testutil.CreateUser(t, db, "malik")
	testutil.CreateUser(t, db, "bob")

	users, err := repo.SearchUsers(ctx, "LI", 10)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "malik", users[1].Username)

	users, err = repo.SearchUsers(ctx, "example.com", 1)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestDeleteUserCascades(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repositories.NewPostgresUserRepository(db)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	alicePost := createPost(t, db, alice, "alice post", baseTime)
	bobPost := createPost(t, db, bob, "bob post", baseTime)
	require.NoError(t, db.Create(&models.Comment{PostID: alicePost.ID, AuthorID: bob.ID, Content: "on alice"}).Error)
	require.NoError(t, db.Create(&models.Comment{PostID: bobPost.ID, AuthorID: alice.ID, Content: "by alice"}).Error)
	require.NoError(t, db.Create(&models.Comment{PostID: bobPost.ID, AuthorID: bob.ID, Content: "by bob"}).Error)
	require.NoError(t, db.Create(&models.Like{PostID: bobPost.ID, UserID: alice.ID}).Error)
	require.NoError(t, db.Create(&models.Like{PostID: alicePost.ID, UserID: bob.ID}).Error)
	require.NoError(t, db.Create(&models.Reaction{PostID: bobPost.ID, UserID: alice.ID, Kind: "heart"}).Error)
	require.NoError(t, db.Create(&models.Follow{FollowerID: alice.ID, FollowingID: bob.ID}).Error)
	require.NoError(t, db.Create(&models.Follow{FollowerID: bob.ID, FollowingID: alice.ID}).Error)

	require.NoError(t, repo.DeleteUser(ctx, alice.ID))

	count := func(model any) int64 {
		var n int64
		require.NoError(t, db.Model(model).Count(&n).Error)
		return n
	}
	assert.Equal(t, int64(1), count(&models.User{}))
	assert.Equal(t, int64(1), count(&models.Post{}))
	assert.Equal(t, int64(1), count(&models.Comment{}))
	assert.Zero(t, count(&models.Like{}))
	assert.Zero(t, count(&models.Reaction{}))
	assert.Zero(t, count(&models.Follow{}))

	assert.ErrorIs(t, repo.DeleteUser(ctx, alice.ID), repositories.ErrNotFound)
}

func TestForeignKeysRejectMissingUser(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	post := createPost(t, db, alice, "alice post", baseTime)
	const ghost = 4242

	likes := repositories.NewPostgresLikeRepository(db)
	follows := repositories.NewPostgresFollowRepository(db)
	comments := repositories.NewPostgresCommentRepository(db)
	reactions := repositories.NewPostgresReactionRepository(db)
	ctx := context.Background()

	assert.ErrorIs(t, likes.CreateLike(ctx, &models.Like{PostID: post.ID, UserID: ghost}), repositories.ErrMissingReference)
	assert.ErrorIs(t, comments.CreateComment(ctx, &models.Comment{PostID: post.ID, AuthorID: ghost, Content: "hi"}), repositories.ErrMissingReference)
	assert.ErrorIs(t, reactions.CreateReaction(ctx, &models.Reaction{PostID: post.ID, UserID: ghost, Kind: "heart"}), repositories.ErrMissingReference)
	_, err := follows.CreateFollow(ctx, &models.Follow{FollowerID: ghost, FollowingID: alice.ID})
	assert.ErrorIs(t, err, repositories.ErrMissingReference)
	assert.ErrorIs(t, likes.CreateLike(ctx, &models.Like{PostID: 9999, UserID: alice.ID}), repositories.ErrMissingReference)
}

func TestStorageCascadesOnUserDelete(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	bobPost := createPost(t, db, bob, "bob post", baseTime)
	require.NoError(t, db.Create(&models.Like{PostID: bobPost.ID, UserID: alice.ID}).Error)
	require.NoError(t, db.Create(&models.Comment{PostID: bobPost.ID, AuthorID: alice.ID, Content: "by alice"}).Error)
	require.NoError(t, db.Create(&models.Follow{FollowerID: alice.ID, FollowingID: bob.ID}).Error)

	// A bare delete, bypassing the repository, still removes everything hanging off the user.
	require.NoError(t, db.Delete(&models.User{}, bob.ID).Error)

	for _, model := range []any{&models.Post{}, &models.Like{}, &models.Comment{}, &models.Follow{}} {
		var n int64
		require.NoError(t, db.Model(model).Count(&n).Error)
		assert.Zero(t, n, "%T", model)
	}
}

func TestGetUsersByIDs(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repositories.NewPostgresUserRepository(db)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	users, err := repo.GetUsersByIDs(ctx, []uint{alice.ID, bob.ID, 999})
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "bob", users[bob.ID].Username)

	empty, err := repo.GetUsersByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
