package repositories

import (
	"context"

	"github.com/anonto42/nano-social/backend/internal/models"
	"gorm.io/gorm"
)

// ReactionRepository defines the interface for emoji reaction operations
type ReactionRepository interface {
	CreateReaction(ctx context.Context, reaction *models.Reaction) error
	GetReactionByID(ctx context.Context, id uint) (*models.Reaction, error)
	DeleteReaction(ctx context.Context, id uint) error
	DeleteReactionByKey(ctx context.Context, postID, userID uint, kind string) (bool, error)
	ListReactions(ctx context.Context, postID uint, kind string, userID uint) ([]models.Reaction, error)
}

type postgresReactionRepository struct {
	db *gorm.DB
}

func NewPostgresReactionRepository(db *gorm.DB) ReactionRepository {
	return &postgresReactionRepository{db: db}
}

// CreateReaction fails with ErrDuplicate when the (post, user, kind) triple already exists.
func (r *postgresReactionRepository) CreateReaction(ctx context.Context, reaction *models.Reaction) error {
	return translate(r.db.WithContext(ctx).Create(reaction).Error)
}

func (r *postgresReactionRepository) GetReactionByID(ctx context.Context, id uint) (*models.Reaction, error) {
	var reaction models.Reaction
	if err := r.db.WithContext(ctx).First(&reaction, id).Error; err != nil {
		return nil, translate(err)
	}
	return &reaction, nil
}

func (r *postgresReactionRepository) DeleteReaction(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Reaction{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresReactionRepository) DeleteReactionByKey(ctx context.Context, postID, userID uint, kind string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ? AND kind = ?", postID, userID, kind).
		Delete(&models.Reaction{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListReactions returns a post's reactions, oldest first. Empty kind or zero userID match all.
func (r *postgresReactionRepository) ListReactions(ctx context.Context, postID uint, kind string, userID uint) ([]models.Reaction, error) {
	q := r.db.WithContext(ctx).Where("post_id = ?", postID)
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	var reactions []models.Reaction
	if err := q.Order("id ASC").Find(&reactions).Error; err != nil {
		return nil, err
	}
	return reactions, nil
}
