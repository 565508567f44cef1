package notification

import "time"

// Kind classifies a notification.
type Kind string

const (
	KindLike         Kind = "LIKE"
	KindLikeCanceled Kind = "LIKE_CANCELED"
	KindMatch        Kind = "MATCH"
)

type Notification struct {
	ID         int64     `json:"id" db:"id"`
	UserID     int64     `json:"user_id" db:"user_id"`
	SenderID   int64     `json:"sender_id" db:"sender_id"`
	SenderName string    `json:"sender_name,omitempty" db:"sender_name"`
	Kind       Kind      `json:"kind" db:"kind"`
	Message    string    `json:"message" db:"message"`
	ChatroomID *int64    `json:"chatroom_id,omitempty" db:"chatroom_id"`
	Read       bool      `json:"read" db:"read"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
