package services

import (
	"context"
	"iter"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
)

// FeedService composes per-user views of posts from the follow graph.
type FeedService struct {
	posts repositories.PostRepository
	users repositories.UserRepository
	likes repositories.LikeRepository
}

func NewFeedService(posts repositories.PostRepository, users repositories.UserRepository, likes repositories.LikeRepository) *FeedService {
	return &FeedService{posts: posts, users: users, likes: likes}
}

// Feed returns a lazy sequence of posts written by the accounts userID follows, newest first
// unless filter says otherwise. Nothing is cached: each range re-reads the follow graph and
// the posts, so a sequence reflects the state at the moment it is consumed. The user's own
// posts never appear because a user cannot follow itself.
func (s *FeedService) Feed(ctx context.Context, userID uint, filter models.PostFilter) (iter.Seq2[models.Post, error], error) {
	if err := checkFilter(&filter); err != nil {
		return nil, err
	}
	return s.posts.FeedPosts(ctx, userID, filter), nil
}

// FeedSize counts the posts Feed would yield without pagination.
func (s *FeedService) FeedSize(ctx context.Context, userID uint, filter models.PostFilter) (int64, error) {
	if err := checkFilter(&filter); err != nil {
		return 0, err
	}
	return s.posts.CountFeedPosts(ctx, userID, filter)
}

// Enrich attaches author summaries, like counts and the viewer's liked flag to posts.
// viewerID 0 means an anonymous viewer.
func (s *FeedService) Enrich(ctx context.Context, viewerID uint, posts []models.Post) ([]models.EnrichedPost, error) {
	postIDs := make([]uint, len(posts))
	authorIDs := make([]uint, 0, len(posts))
	seen := make(map[uint]bool)
	for i, p := range posts {
		postIDs[i] = p.ID
		if !seen[p.AuthorID] {
			seen[p.AuthorID] = true
			authorIDs = append(authorIDs, p.AuthorID)
		}
	}

	authors, err := s.users.GetUsersByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	counts, err := s.likes.GetLikesCounts(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	liked := map[uint]bool{}
	if viewerID != 0 {
		if liked, err = s.likes.GetLikedPostIDs(ctx, viewerID, postIDs); err != nil {
			return nil, err
		}
	}

	enriched := make([]models.EnrichedPost, len(posts))
	for i, p := range posts {
		author := authors[p.AuthorID]
		enriched[i] = models.EnrichedPost{
			Post:       p,
			Author:     author.ToCompact(),
			LikesCount: counts[p.ID],
			IsLiked:    liked[p.ID],
		}
	}
	return enriched, nil
}
