package services

import (
	"context"
	"iter"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
)

// FollowService mutates and queries the directed follow graph.
type FollowService struct {
	follows  repositories.FollowRepository
	users    repositories.UserRepository
	notifier *NotificationService
}

func NewFollowService(follows repositories.FollowRepository, users repositories.UserRepository, notifier *NotificationService) *FollowService {
	return &FollowService{follows: follows, users: users, notifier: notifier}
}

func (s *FollowService) requireUser(ctx context.Context, id uint) error {
	return requireUser(ctx, s.users, id)
}

// Follow makes actor follow target. Following yourself or an already followed user is a
// no-op. created reports whether a new edge was added; only then is the target notified, so
// following again after an unfollow is a new event and notifies again.
func (s *FollowService) Follow(ctx context.Context, actorID, targetID uint) (created bool, err error) {
	if err := s.requireUser(ctx, actorID); err != nil {
		return false, err
	}
	if err := s.requireUser(ctx, targetID); err != nil {
		return false, err
	}
	if actorID == targetID {
		return false, nil
	}
	created, err = s.follows.CreateFollow(ctx, &models.Follow{FollowerID: actorID, FollowingID: targetID})
	if err != nil {
		return false, lostReference(err)
	}
	if created {
		s.notifier.emit(ctx, targetID, actorID, models.VerbFollowed, nil)
	}
	return created, nil
}

// Unfollow removes the edge actor -> target. Missing edges and self-targets are no-ops.
func (s *FollowService) Unfollow(ctx context.Context, actorID, targetID uint) error {
	if err := s.requireUser(ctx, targetID); err != nil {
		return err
	}
	if actorID == targetID {
		return nil
	}
	_, err := s.follows.DeleteFollow(ctx, actorID, targetID)
	return err
}

// IsFollowing reports whether actor follows target.
func (s *FollowService) IsFollowing(ctx context.Context, actorID, targetID uint) (bool, error) {
	if actorID == targetID {
		return false, nil
	}
	return s.follows.IsFollowing(ctx, actorID, targetID)
}

// IsFollowedBy reports whether other follows user.
func (s *FollowService) IsFollowedBy(ctx context.Context, userID, otherID uint) (bool, error) {
	return s.IsFollowing(ctx, otherID, userID)
}

// Status describes the relation between viewer and target in both directions.
func (s *FollowService) Status(ctx context.Context, viewerID, targetID uint) (*models.FollowStatus, error) {
	if err := s.requireUser(ctx, targetID); err != nil {
		return nil, err
	}
	following, err := s.IsFollowing(ctx, viewerID, targetID)
	if err != nil {
		return nil, err
	}
	followedBy, err := s.IsFollowedBy(ctx, viewerID, targetID)
	if err != nil {
		return nil, err
	}
	return &models.FollowStatus{UserID: targetID, IsFollowing: following, IsFollowedBy: followedBy}, nil
}

// Followers returns a lazy sequence of the users following userID. The graph is read when
// the sequence is ranged over.
func (s *FollowService) Followers(ctx context.Context, userID uint) (iter.Seq2[models.User, error], error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.follows.Followers(ctx, userID), nil
}

// Following returns a lazy sequence of the users userID follows.
func (s *FollowService) Following(ctx context.Context, userID uint) (iter.Seq2[models.User, error], error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.follows.Following(ctx, userID), nil
}

// FollowersPage returns one page of userID's followers, oldest edge first, and their total.
func (s *FollowService) FollowersPage(ctx context.Context, userID uint, offset, limit int) ([]models.User, int64, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, 0, err
	}
	total, err := s.follows.GetFollowersCount(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	offset, limit = clampPage(offset, limit)
	users, err := s.follows.FollowersPage(ctx, userID, offset, limit)
	return users, total, err
}

// FollowingPage returns one page of the users userID follows and their total.
func (s *FollowService) FollowingPage(ctx context.Context, userID uint, offset, limit int) ([]models.User, int64, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, 0, err
	}
	total, err := s.follows.GetFollowingCount(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	offset, limit = clampPage(offset, limit)
	users, err := s.follows.FollowingPage(ctx, userID, offset, limit)
	return users, total, err
}
