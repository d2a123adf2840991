package models

import "time"

// TargetKind names the entity a notification points at.
type TargetKind string

const (
	TargetPost    TargetKind = "post"
	TargetComment TargetKind = "comment"
)

// Notification verbs.
const (
	VerbLiked       = "liked"
	VerbCommentedOn = "commented on"
	VerbReactedTo   = "reacted to"
	VerbFollowed    = "followed"
)

// Target is the tagged reference carried by a notification.
type Target struct {
	Kind TargetKind `json:"kind"`
	ID   uint       `json:"id"`
}

func PostTarget(id uint) *Target    { return &Target{Kind: TargetPost, ID: id} }
func CommentTarget(id uint) *Target { return &Target{Kind: TargetComment, ID: id} }

// Valid reports whether t names a notifiable entity.
func (t Target) Valid() bool {
	return (t.Kind == TargetPost || t.Kind == TargetComment) && t.ID != 0
}

// Notification is an immutable activity record addressed to RecipientID. The target columns
// are empty for actions with no content object (follow).
type Notification struct {
	ID          uint       `json:"id" gorm:"primaryKey" bson:"_id"`
	RecipientID uint       `json:"recipient_id" gorm:"not null;index" bson:"recipient_id"`
	ActorID     uint       `json:"actor_id" gorm:"not null;index" bson:"actor_id"`
	Verb        string     `json:"verb" gorm:"size:255;not null" bson:"verb"`
	TargetKind  TargetKind `json:"-" gorm:"size:20;index:idx_notification_target" bson:"target_kind,omitempty"`
	TargetID    uint       `json:"-" gorm:"index:idx_notification_target" bson:"target_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at" gorm:"index" bson:"created_at"`
}

// TargetRef returns the tagged target, or nil when the notification has none.
func (n *Notification) TargetRef() *Target {
	if n.TargetKind == "" {
		return nil
	}
	return &Target{Kind: n.TargetKind, ID: n.TargetID}
}

// SetTarget stores t in the target columns; nil clears them.
func (n *Notification) SetTarget(t *Target) {
	if t == nil {
		n.TargetKind, n.TargetID = "", 0
		return
	}
	n.TargetKind, n.TargetID = t.Kind, t.ID
}
