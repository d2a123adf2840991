package repositories

import (
	"iter"
	"strings"

	"github.com/anonto42/nano-social/backend/internal/models"
	"gorm.io/gorm"
)

const likesCountExpr = "(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id)"

// rowsSeq runs the query built by build when ranged over and yields one scanned row per step.
// Each range re-runs the query, and the cursor is closed when iteration stops.
func rowsSeq[T any](build func() *gorm.DB) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		q := build()
		rows, err := q.Rows()
		if err != nil {
			yield(zero, err)
			return
		}
		defer rows.Close()

		for rows.Next() {
			var item T
			if err := q.ScanRows(rows, &item); err != nil {
				yield(zero, err)
				return
			}
			if !yield(item, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(zero, err)
		}
	}
}

func applyPostFilter(q *gorm.DB, f models.PostFilter) *gorm.DB {
	if s := strings.TrimSpace(f.Search); s != "" {
		pattern := "%" + strings.ToLower(s) + "%"
		q = q.Where("(LOWER(posts.title) LIKE ? OR LOWER(posts.content) LIKE ?)", pattern, pattern)
	}
	if f.AuthorID != 0 {
		q = q.Where("posts.author_id = ?", f.AuthorID)
	}
	if f.Title != "" {
		q = q.Where("posts.title = ?", f.Title)
	}
	if f.CreatedAfter != nil {
		q = q.Where("posts.created_at >= ?", *f.CreatedAfter)
	}
	if f.CreatedBefore != nil {
		q = q.Where("posts.created_at < ?", *f.CreatedBefore)
	}
	return q
}

// applyPostOrder sorts by the requested key. Ties fall back to insertion order.
func applyPostOrder(q *gorm.DB, o models.PostOrdering) *gorm.DB {
	switch o {
	case models.OrderCreatedAsc:
		q = q.Order("posts.created_at ASC")
	case models.OrderLikesAsc:
		q = q.Order(likesCountExpr + " ASC").Order("posts.created_at DESC")
	case models.OrderLikesDesc:
		q = q.Order(likesCountExpr + " DESC").Order("posts.created_at DESC")
	default:
		q = q.Order("posts.created_at DESC")
	}
	return q.Order("posts.id ASC")
}

func applyPage(q *gorm.DB, offset, limit int) *gorm.DB {
	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	return q
}
