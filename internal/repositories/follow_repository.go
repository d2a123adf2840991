package repositories

import (
	"context"
	"iter"

	"github.com/anonto42/nano-social/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	CreateFollow(ctx context.Context, follow *models.Follow) (bool, error)
	DeleteFollow(ctx context.Context, followerID, followingID uint) (bool, error)
	IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error)
	Followers(ctx context.Context, userID uint) iter.Seq2[models.User, error]
	Following(ctx context.Context, userID uint) iter.Seq2[models.User, error]
	FollowersPage(ctx context.Context, userID uint, offset, limit int) ([]models.User, error)
	FollowingPage(ctx context.Context, userID uint, offset, limit int) ([]models.User, error)
	GetFollowersCount(ctx context.Context, userID uint) (int64, error)
	GetFollowingCount(ctx context.Context, userID uint) (int64, error)
	GetFollowingIDs(ctx context.Context, userID uint) ([]uint, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// CreateFollow inserts the edge unless it already exists. The unique index arbitrates
// concurrent inserts; created reports whether this call added the row.
func (r *PostgresFollowRepository) CreateFollow(ctx context.Context, follow *models.Follow) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(follow)
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *PostgresFollowRepository) DeleteFollow(ctx context.Context, followerID, followingID uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("follower_id = ? AND following_id = ?", followerID, followingID).Delete(&models.Follow{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *PostgresFollowRepository) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("follower_id = ? AND following_id = ?", followerID, followingID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresFollowRepository) followersQuery(ctx context.Context, userID uint) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Select("users.*").
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.following_id = ?", userID).
		Order("follows.id ASC")
}

func (r *PostgresFollowRepository) followingQuery(ctx context.Context, userID uint) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Select("users.*").
		Joins("JOIN follows ON follows.following_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("follows.id ASC")
}

// Followers yields the users following userID, oldest edge first.
func (r *PostgresFollowRepository) Followers(ctx context.Context, userID uint) iter.Seq2[models.User, error] {
	return rowsSeq[models.User](func() *gorm.DB { return r.followersQuery(ctx, userID) })
}

// Following yields the users userID follows, oldest edge first.
func (r *PostgresFollowRepository) Following(ctx context.Context, userID uint) iter.Seq2[models.User, error] {
	return rowsSeq[models.User](func() *gorm.DB { return r.followingQuery(ctx, userID) })
}

// FollowersPage returns one page of Followers, with offset and limit applied in the query.
func (r *PostgresFollowRepository) FollowersPage(ctx context.Context, userID uint, offset, limit int) ([]models.User, error) {
	var users []models.User
	if err := applyPage(r.followersQuery(ctx, userID), offset, limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FollowingPage returns one page of Following.
func (r *PostgresFollowRepository) FollowingPage(ctx context.Context, userID uint, offset, limit int) ([]models.User, error) {
	var users []models.User
	if err := applyPage(r.followingQuery(ctx, userID), offset, limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *PostgresFollowRepository) GetFollowersCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("following_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *PostgresFollowRepository) GetFollowingCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *PostgresFollowRepository) GetFollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("follower_id = ?", userID).Pluck("following_id", &ids).Error
	return ids, err
}
