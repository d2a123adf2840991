package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
)

// LikeService manages likes on posts.
type LikeService struct {
	likes    repositories.LikeRepository
	posts    repositories.PostRepository
	users    repositories.UserRepository
	notifier *NotificationService
	now      func() time.Time
}

func NewLikeService(likes repositories.LikeRepository, posts repositories.PostRepository, users repositories.UserRepository, notifier *NotificationService) *LikeService {
	return &LikeService{likes: likes, posts: posts, users: users, notifier: notifier, now: utcNow}
}

// Like records that userID likes postID and notifies the post's author. Authors cannot like
// their own posts, and a second like by the same user fails with ErrConflict.
func (s *LikeService) Like(ctx context.Context, userID, postID uint) (*models.Like, error) {
	if err := requireUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, notFound(err, "post", postID)
	}
	if post.AuthorID == userID {
		return nil, fmt.Errorf("%w: you cannot like your own post", ErrPermissionDenied)
	}

	like := &models.Like{PostID: postID, UserID: userID, CreatedAt: s.now()}
	if err := s.likes.CreateLike(ctx, like); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, fmt.Errorf("%w: you have already liked this post", ErrConflict)
		}
		return nil, lostReference(err)
	}
	s.notifier.emit(ctx, post.AuthorID, userID, models.VerbLiked, models.PostTarget(postID))
	return like, nil
}

// Unlike removes userID's like from postID. It is a no-op when there is no such like.
func (s *LikeService) Unlike(ctx context.Context, userID, postID uint) error {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return notFound(err, "post", postID)
	}
	_, err := s.likes.DeleteLikeByPostAndUser(ctx, postID, userID)
	return err
}

// DeleteLike removes a like by ID. Only the user who created it may delete it.
func (s *LikeService) DeleteLike(ctx context.Context, requesterID, id uint) error {
	like, err := s.likes.GetLikeByID(ctx, id)
	if err != nil {
		return notFound(err, "like", id)
	}
	if like.UserID != requesterID {
		return fmt.Errorf("%w: you can only delete your own likes", ErrPermissionDenied)
	}
	return notFound(s.likes.DeleteLike(ctx, id), "like", id)
}

// ListLikes returns every like on the post.
func (s *LikeService) ListLikes(ctx context.Context, postID uint) ([]models.Like, error) {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return nil, notFound(err, "post", postID)
	}
	return s.likes.GetLikesByPostID(ctx, postID)
}

// CountLikes returns the number of likes on the post.
func (s *LikeService) CountLikes(ctx context.Context, postID uint) (int64, error) {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return 0, notFound(err, "post", postID)
	}
	return s.likes.GetLikesCountByPostID(ctx, postID)
}

// HasLiked reports whether userID likes postID.
func (s *LikeService) HasLiked(ctx context.Context, userID, postID uint) (bool, error) {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return false, notFound(err, "post", postID)
	}
	return s.likes.HasUserLikedPost(ctx, postID, userID)
}
