package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/internal/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db            *gorm.DB
	users         *UserService
	follows       *FollowService
	posts         *PostService
	comments      *CommentService
	likes         *LikeService
	reactions     *ReactionService
	feed          *FeedService
	notifications *NotificationService
	clock         *fakeClock
}

// fakeClock advances one second per reading so creation order is visible in timestamps.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)

	userRepo := repositories.NewPostgresUserRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)

	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	notifications := NewNotificationService(notificationRepo, zap.NewNop())
	notifications.now = clock.now

	f := &fixture{
		db:            db,
		users:         NewUserService(userRepo, followRepo, notificationRepo, zap.NewNop()),
		follows:       NewFollowService(followRepo, userRepo, notifications),
		posts:         NewPostService(postRepo, userRepo),
		comments:      NewCommentService(repositories.NewPostgresCommentRepository(db), postRepo, userRepo, notifications),
		likes:         NewLikeService(likeRepo, postRepo, userRepo, notifications),
		reactions:     NewReactionService(repositories.NewPostgresReactionRepository(db), postRepo, userRepo, notifications),
		feed:          NewFeedService(postRepo, userRepo, likeRepo),
		notifications: notifications,
		clock:         clock,
	}
	f.posts.now = clock.now
	f.comments.now = clock.now
	f.likes.now = clock.now
	f.reactions.now = clock.now
	return f
}

func (f *fixture) user(t *testing.T, name string) *models.User {
	t.Helper()
	return testutil.CreateUser(t, f.db, name)
}

func (f *fixture) post(t *testing.T, author *models.User, title string) *models.Post {
	t.Helper()
	post, err := f.posts.CreatePost(context.Background(), author.ID, title, "body of "+title)
	require.NoError(t, err)
	return post
}

func (f *fixture) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

func (f *fixture) inbox(t *testing.T, recipient *models.User) []models.Notification {
	t.Helper()
	list, _, err := f.notifications.NotificationsFor(context.Background(), recipient.ID, 1, MaxPageSize)
	require.NoError(t, err)
	return list
}
