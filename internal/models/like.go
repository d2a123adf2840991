package models

import "time"

// Like represents a like on a post. A user likes a given post at most once.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"not null;index;uniqueIndex:idx_post_user_like"`
	UserID    uint      `json:"user_id" gorm:"not null;index;uniqueIndex:idx_post_user_like"`
	CreatedAt time.Time `json:"created_at"`

	Post *Post `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	User *User `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
