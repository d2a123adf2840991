package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is an account in the user directory. Follow edges live in the follows table.
type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Username       string    `json:"username" gorm:"size:150;not null;uniqueIndex"`
	Email          string    `json:"email" gorm:"size:254;not null;uniqueIndex"`
	Bio            string    `json:"bio" gorm:"size:500"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	Password       string    `json:"-"`                                         // bcrypt hash, never serialized
	FirebaseUID    *string   `json:"firebase_uid,omitempty" gorm:"uniqueIndex"` // nil for local accounts
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UserCompact is the author/actor summary embedded in feed items and notifications.
type UserCompact struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}

// ToCompact strips a user down to its public summary.
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:             u.ID,
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
	}
}

// UserProfile is a user together with its follow counts.
type UserProfile struct {
	User
	FollowersCount int64 `json:"followers_count"`
	FollowingCount int64 `json:"following_count"`
}

type CreateLocalUserRequest struct {
	Username        string `json:"username" validate:"required,min=2,max=150,alphanum"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

type SignInRequest struct {
	Username string `json:"username" validate:"required_without=Email"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateUserRequest struct {
	Email          string  `json:"email,omitempty" validate:"omitempty,email"`
	Bio            *string `json:"bio,omitempty" validate:"omitempty,max=500"`
	ProfilePicture *string `json:"profile_picture,omitempty" validate:"omitempty,url"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
