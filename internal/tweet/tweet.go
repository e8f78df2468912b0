package tweet

import (
	"time"

	"gorm.io/gorm"
)

// Tweet is a short text post on a channel.
type Tweet struct {
	gorm.Model
	Content string `json:"content" gorm:"not null"`
	OwnerID uint   `json:"owner_id" gorm:"index;not null"`
}

// ListedTweet is a listing row joined with the author's display fields.
type ListedTweet struct {
	ID            uint      `json:"id"`
	Content       string    `json:"content"`
	CreatedAt     time.Time `json:"created_at"`
	OwnerID       uint      `json:"owner_id"`
	OwnerUsername string    `json:"owner_username"`
	OwnerFullName string    `json:"owner_full_name"`
	OwnerAvatar   string    `json:"owner_avatar"`
}
