package repositories

import (
	"context"
	"iter"

	"github.com/anonto42/nano-social/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id uint) error
	ListPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, int64, error)
	FeedPosts(ctx context.Context, followerID uint, filter models.PostFilter) iter.Seq2[models.Post, error]
	CountFeedPosts(ctx context.Context, followerID uint, filter models.PostFilter) (int64, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost creates a new post in PostgreSQL
func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return translate(r.db.WithContext(ctx).Create(post).Error)
}

// GetPostByID retrieves a post by ID from PostgreSQL
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

// UpdatePost updates title, content and updated_at of an existing post
func (r *PostgresPostRepository) UpdatePost(ctx context.Context, post *models.Post) error {
	res := r.db.WithContext(ctx).Model(post).Select("title", "content", "updated_at").Updates(post)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePost deletes a post together with its reactions, likes and comments.
func (r *PostgresPostRepository) DeletePost(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ListPosts returns one page of posts matching filter together with the total match count.
func (r *PostgresPostRepository) ListPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, int64, error) {
	query := func() *gorm.DB {
		return applyPostFilter(r.db.WithContext(ctx).Model(&models.Post{}), filter)
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	q := applyPage(applyPostOrder(query(), filter.Ordering), filter.Offset, filter.Limit)
	if err := q.Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *PostgresPostRepository) feedQuery(ctx context.Context, followerID uint, filter models.PostFilter) *gorm.DB {
	following := r.db.Model(&models.Follow{}).Select("following_id").Where("follower_id = ?", followerID)
	return applyPostFilter(r.db.WithContext(ctx).Model(&models.Post{}), filter).
		Where("posts.author_id IN (?)", following)
}

// FeedPosts yields posts authored by the accounts followerID follows. The follow graph is
// read when the sequence is ranged over, not when it is created.
func (r *PostgresPostRepository) FeedPosts(ctx context.Context, followerID uint, filter models.PostFilter) iter.Seq2[models.Post, error] {
	return rowsSeq[models.Post](func() *gorm.DB {
		q := applyPostOrder(r.feedQuery(ctx, followerID, filter), filter.Ordering)
		return applyPage(q, filter.Offset, filter.Limit)
	})
}

func (r *PostgresPostRepository) CountFeedPosts(ctx context.Context, followerID uint, filter models.PostFilter) (int64, error) {
	var total int64
	err := r.feedQuery(ctx, followerID, filter).Count(&total).Error
	return total, err
}
