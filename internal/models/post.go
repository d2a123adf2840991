package models

import "time"

// Post is owned by its author and removed together with the author.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index"`
	Title     string    `json:"title" gorm:"size:255;not null;index"`
	Content   string    `json:"content" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`

	Owner *User `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=255"`
	Content string `json:"content" validate:"required,min=1"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Title   *string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Content *string `json:"content,omitempty" validate:"omitempty,min=1"`
}

// PostOrdering is a sort key accepted by post listings. A leading '-' means descending.
type PostOrdering string

const (
	OrderCreatedAsc  PostOrdering = "created_at"
	OrderCreatedDesc PostOrdering = "-created_at"
	OrderLikesAsc    PostOrdering = "likes"
	OrderLikesDesc   PostOrdering = "-likes"
)

// Valid reports whether o is a known ordering. The empty ordering is valid and means -created_at.
func (o PostOrdering) Valid() bool {
	switch o {
	case "", OrderCreatedAsc, OrderCreatedDesc, OrderLikesAsc, OrderLikesDesc:
		return true
	}
	return false
}

// PostFilter narrows and orders post listings. Zero values disable a criterion.
type PostFilter struct {
	Search        string
	AuthorID      uint
	Title         string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	Ordering      PostOrdering
	Offset        int
	Limit         int
}

// EnrichedPost is a post with author info and viewer-specific flags
type EnrichedPost struct {
	Post
	Author     UserCompact `json:"author"`
	LikesCount int64       `json:"likes_count"`
	IsLiked    bool        `json:"is_liked"`
}
