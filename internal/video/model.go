package video

import (
	"time"

	"gorm.io/gorm"
)

// Video is a published (or drafted) upload. VideoFile and Thumbnail are
// blob store URLs; Duration is in seconds.
type Video struct {
	gorm.Model
	VideoFile   string  `json:"video_file" gorm:"not null"`
	Thumbnail   string  `json:"thumbnail" gorm:"not null"`
	Title       string  `json:"title" gorm:"not null;index"`
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Views       int64   `json:"views" gorm:"not null;default:0"`
	IsPublished bool    `json:"is_published" gorm:"not null;default:true"`
	OwnerID     uint    `json:"owner_id" gorm:"index;not null"`
}

// ListedVideo is a listing row joined with its owner's display fields.
type ListedVideo struct {
	ID            uint      `json:"id"`
	VideoFile     string    `json:"video_file"`
	Thumbnail     string    `json:"thumbnail"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Duration      float64   `json:"duration"`
	Views         int64     `json:"views"`
	CreatedAt     time.Time `json:"created_at"`
	OwnerID       uint      `json:"owner_id"`
	OwnerUsername string    `json:"owner_username"`
	OwnerFullName string    `json:"owner_full_name"`
	OwnerAvatar   string    `json:"owner_avatar"`
}

// ListParams narrows and orders a listing query.
type ListParams struct {
	Query     string
	OwnerID   uint
	SortBy    string
	Ascending bool
	Page      int
	Limit     int
}
