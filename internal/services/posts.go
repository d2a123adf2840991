package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
)

// MaxPageSize caps every paginated listing.
const MaxPageSize = 50

// clampPage keeps offset non-negative and limit within (0, MaxPageSize].
func clampPage(offset, limit int) (int, int) {
	if limit <= 0 || limit > MaxPageSize {
		limit = MaxPageSize
	}
	return max(offset, 0), limit
}

// PostService owns post lifecycle and listing.
type PostService struct {
	posts repositories.PostRepository
	users repositories.UserRepository
	now   func() time.Time
}

func NewPostService(posts repositories.PostRepository, users repositories.UserRepository) *PostService {
	return &PostService{posts: posts, users: users, now: utcNow}
}

// CreatePost stores a new post owned by authorID.
func (s *PostService) CreatePost(ctx context.Context, authorID uint, title, content string) (*models.Post, error) {
	if err := requireUser(ctx, s.users, authorID); err != nil {
		return nil, err
	}
	now := s.now()
	post := &models.Post{
		AuthorID:  authorID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, lostReference(err)
	}
	return post, nil
}

// GetPost returns the post or ErrNotFound.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "post", id)
	}
	return post, nil
}

// UpdatePost changes title and/or content. Only the author may update.
func (s *PostService) UpdatePost(ctx context.Context, requesterID, id uint, req models.UpdatePostRequest) (*models.Post, error) {
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != requesterID {
		return nil, fmt.Errorf("%w: you can only update your own posts", ErrPermissionDenied)
	}
	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	post.UpdatedAt = s.now()
	if err := s.posts.UpdatePost(ctx, post); err != nil {
		return nil, notFound(err, "post", id)
	}
	return post, nil
}

// DeletePost removes the post and its comments, likes and reactions. Only the author may delete.
func (s *PostService) DeletePost(ctx context.Context, requesterID, id uint) error {
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if post.AuthorID != requesterID {
		return fmt.Errorf("%w: you can only delete your own posts", ErrPermissionDenied)
	}
	if err := s.posts.DeletePost(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return err
	}
	return nil
}

// ListPosts returns one page of posts matching filter and the total number of matches.
func (s *PostService) ListPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, int64, error) {
	if err := checkFilter(&filter); err != nil {
		return nil, 0, err
	}
	return s.posts.ListPosts(ctx, filter)
}

func checkFilter(filter *models.PostFilter) error {
	if !filter.Ordering.Valid() {
		return fmt.Errorf("%w: unknown ordering %q", ErrInvalid, filter.Ordering)
	}
	if filter.CreatedAfter != nil && filter.CreatedBefore != nil && !filter.CreatedAfter.Before(*filter.CreatedBefore) {
		return fmt.Errorf("%w: created_after must be before created_before", ErrInvalid)
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if filter.Limit <= 0 || filter.Limit > MaxPageSize {
		filter.Limit = MaxPageSize
	}
	return nil
}
