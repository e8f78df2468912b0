package comment

import (
	"time"

	"gorm.io/gorm"
)

// Comment is a remark on a video.
type Comment struct {
	gorm.Model
	Content string `json:"content" gorm:"not null"`
	VideoID uint   `json:"video_id" gorm:"index;not null"`
	OwnerID uint   `json:"owner_id" gorm:"index;not null"`
}

// ListedComment is a listing row joined with the commenter's display
// fields.
type ListedComment struct {
	ID            uint      `json:"id"`
	Content       string    `json:"content"`
	VideoID       uint      `json:"video_id"`
	CreatedAt     time.Time `json:"created_at"`
	OwnerID       uint      `json:"owner_id"`
	OwnerUsername string    `json:"owner_username"`
	OwnerFullName string    `json:"owner_full_name"`
	OwnerAvatar   string    `json:"owner_avatar"`
}
