package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"go.uber.org/zap"
)

// NotificationService records and serves activity notifications.
type NotificationService struct {
	repo   repositories.NotificationRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewNotificationService(repo repositories.NotificationRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{repo: repo, logger: logger, now: utcNow}
}

// Notify records that actor did verb to recipient's target. It returns (nil, nil) when
// actor and recipient are the same user: nobody is notified of their own actions.
func (s *NotificationService) Notify(ctx context.Context, recipientID, actorID uint, verb string, target *models.Target) (*models.Notification, error) {
	if recipientID == actorID {
		return nil, nil
	}
	if verb == "" {
		return nil, fmt.Errorf("%w: empty verb", ErrInvalid)
	}
	if target != nil && !target.Valid() {
		return nil, fmt.Errorf("%w: target %+v", ErrInvalid, *target)
	}

	n := &models.Notification{
		RecipientID: recipientID,
		ActorID:     actorID,
		Verb:        verb,
		CreatedAt:   s.now(),
	}
	n.SetTarget(target)
	if err := s.repo.CreateNotification(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// emit is Notify for side effects of another mutation. The mutation has already been
// committed, so a failure here is logged instead of returned.
func (s *NotificationService) emit(ctx context.Context, recipientID, actorID uint, verb string, target *models.Target) {
	if s == nil {
		return
	}
	if _, err := s.Notify(ctx, recipientID, actorID, verb, target); err != nil {
		s.logger.Warn("notification fan-out failed",
			zap.Uint("recipient_id", recipientID),
			zap.Uint("actor_id", actorID),
			zap.String("verb", verb),
			zap.Error(err),
		)
	}
}

// NotificationsFor returns a page of recipient's notifications, most recent first.
func (s *NotificationService) NotificationsFor(ctx context.Context, recipientID uint, page, limit int) ([]models.Notification, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	return s.repo.GetByRecipientID(ctx, recipientID, page, limit)
}

// Delete removes a notification. Only its recipient may delete it.
func (s *NotificationService) Delete(ctx context.Context, requesterID, id uint) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "notification", id)
	}
	if n.RecipientID != requesterID {
		return fmt.Errorf("%w: notification %d belongs to another user", ErrPermissionDenied, id)
	}
	if err := s.repo.Delete(ctx, id); err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	return nil
}

func utcNow() time.Time { return time.Now().UTC() }
