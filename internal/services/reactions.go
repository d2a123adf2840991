package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
)

// ReactionService manages emoji reactions. Rules match likes, keyed by (post, user, kind).
type ReactionService struct {
	reactions repositories.ReactionRepository
	posts     repositories.PostRepository
	users     repositories.UserRepository
	notifier  *NotificationService
	now       func() time.Time
}

func NewReactionService(reactions repositories.ReactionRepository, posts repositories.PostRepository, users repositories.UserRepository, notifier *NotificationService) *ReactionService {
	return &ReactionService{reactions: reactions, posts: posts, users: users, notifier: notifier, now: utcNow}
}

// React applies kind to postID on behalf of userID. Distinct kinds coexist; repeating a kind
// fails with ErrConflict; reacting to your own post fails with ErrPermissionDenied.
func (s *ReactionService) React(ctx context.Context, userID, postID uint, kind, unicode string) (*models.Reaction, error) {
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return nil, fmt.Errorf("%w: empty reaction kind", ErrInvalid)
	}
	if err := requireUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, notFound(err, "post", postID)
	}
	if post.AuthorID == userID {
		return nil, fmt.Errorf("%w: you cannot react to your own post", ErrPermissionDenied)
	}

	reaction := &models.Reaction{
		PostID:    postID,
		UserID:    userID,
		Kind:      kind,
		Unicode:   unicode,
		CreatedAt: s.now(),
	}
	if err := s.reactions.CreateReaction(ctx, reaction); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, fmt.Errorf("%w: already reacted with %q", ErrConflict, kind)
		}
		return nil, lostReference(err)
	}
	s.notifier.emit(ctx, post.AuthorID, userID, models.VerbReactedTo, models.PostTarget(postID))
	return reaction, nil
}

// Unreact removes userID's reaction of the given kind. No-op when absent.
func (s *ReactionService) Unreact(ctx context.Context, userID, postID uint, kind string) error {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return notFound(err, "post", postID)
	}
	_, err := s.reactions.DeleteReactionByKey(ctx, postID, userID, kind)
	return err
}

// DeleteReaction removes a reaction by ID. Only its creator may delete it.
func (s *ReactionService) DeleteReaction(ctx context.Context, requesterID, id uint) error {
	reaction, err := s.reactions.GetReactionByID(ctx, id)
	if err != nil {
		return notFound(err, "reaction", id)
	}
	if reaction.UserID != requesterID {
		return fmt.Errorf("%w: you can only delete your own reactions", ErrPermissionDenied)
	}
	return notFound(s.reactions.DeleteReaction(ctx, id), "reaction", id)
}

// ListReactions returns the post's reactions, optionally narrowed to one kind and/or user.
func (s *ReactionService) ListReactions(ctx context.Context, postID uint, kind string, userID uint) ([]models.Reaction, error) {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return nil, notFound(err, "post", postID)
	}
	return s.reactions.ListReactions(ctx, postID, kind, userID)
}
