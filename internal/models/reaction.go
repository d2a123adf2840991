package models

import "time"

// Reaction is an emoji response to a post. Unique per (post, user, kind), so one user can
// apply several distinct kinds to the same post.
type Reaction struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"not null;index;uniqueIndex:idx_post_user_kind"`
	UserID    uint      `json:"user_id" gorm:"not null;index;uniqueIndex:idx_post_user_kind"`
	Kind      string    `json:"kind" gorm:"size:50;not null;uniqueIndex:idx_post_user_kind"` // e.g. "smile", "heart"
	Unicode   string    `json:"unicode,omitempty" gorm:"size:10"`
	CreatedAt time.Time `json:"created_at"`

	Post *Post `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	User *User `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// CreateReactionRequest defines the request body for reacting to a post
type CreateReactionRequest struct {
	Kind    string `json:"kind" validate:"required,min=1,max=50"`
	Unicode string `json:"unicode,omitempty" validate:"omitempty,max=10"`
}
