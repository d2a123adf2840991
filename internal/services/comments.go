package services

import (
	"context"
	"fmt"
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
)

// CommentService manages comments on posts.
type CommentService struct {
	comments repositories.CommentRepository
	posts    repositories.PostRepository
	users    repositories.UserRepository
	notifier *NotificationService
	now      func() time.Time
}

func NewCommentService(comments repositories.CommentRepository, posts repositories.PostRepository, users repositories.UserRepository, notifier *NotificationService) *CommentService {
	return &CommentService{comments: comments, posts: posts, users: users, notifier: notifier, now: utcNow}
}

// Comment adds a comment to a post. Any user may comment, the post's author included; the
// author is notified when someone else comments.
func (s *CommentService) Comment(ctx context.Context, userID, postID uint, content string) (*models.Comment, error) {
	if err := requireUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, notFound(err, "post", postID)
	}
	comment := &models.Comment{
		PostID:    postID,
		AuthorID:  userID,
		Content:   content,
		CreatedAt: s.now(),
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, lostReference(err)
	}
	s.notifier.emit(ctx, post.AuthorID, userID, models.VerbCommentedOn, models.CommentTarget(comment.ID))
	return comment, nil
}

// GetComment returns the comment or ErrNotFound.
func (s *CommentService) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	comment, err := s.comments.GetCommentByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "comment", id)
	}
	return comment, nil
}

// ListComments returns a page of the post's comments, oldest first.
func (s *CommentService) ListComments(ctx context.Context, postID uint, offset, limit int) ([]models.Comment, int64, error) {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return nil, 0, notFound(err, "post", postID)
	}
	offset, limit = clampPage(offset, limit)
	return s.comments.GetCommentsByPostID(ctx, postID, offset, limit)
}

// UpdateComment replaces the content. Only the comment's author may update it.
func (s *CommentService) UpdateComment(ctx context.Context, requesterID, id uint, content string) (*models.Comment, error) {
	comment, err := s.GetComment(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != requesterID {
		return nil, fmt.Errorf("%w: you can only update your own comments", ErrPermissionDenied)
	}
	comment.Content = content
	if err := s.comments.UpdateComment(ctx, comment); err != nil {
		return nil, notFound(err, "comment", id)
	}
	return comment, nil
}

// DeleteComment removes a comment. Only its author may delete it.
func (s *CommentService) DeleteComment(ctx context.Context, requesterID, id uint) error {
	comment, err := s.GetComment(ctx, id)
	if err != nil {
		return err
	}
	if comment.AuthorID != requesterID {
		return fmt.Errorf("%w: you can only delete your own comments", ErrPermissionDenied)
	}
	return notFound(s.comments.DeleteComment(ctx, id), "comment", id)
}
