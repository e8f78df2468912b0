package like

import (
	"time"

	"gorm.io/gorm"
)

// TargetKind selects which entity a like points at. Exactly one of the
// target columns is set per row.
type TargetKind string

const (
	TargetVideo   TargetKind = "video"
	TargetComment TargetKind = "comment"
	TargetTweet   TargetKind = "tweet"
)

func (k TargetKind) column() string {
	switch k {
	case TargetComment:
		return "comment_id"
	case TargetTweet:
		return "tweet_id"
	default:
		return "video_id"
	}
}

// Like marks that an account liked a video, comment or tweet.
type Like struct {
	gorm.Model
	LikedByID uint  `json:"liked_by_id" gorm:"index;not null"`
	VideoID   *uint `json:"video_id,omitempty" gorm:"index"`
	CommentID *uint `json:"comment_id,omitempty" gorm:"index"`
	TweetID   *uint `json:"tweet_id,omitempty" gorm:"index"`
}

// LikedVideo is a row of the liked-videos listing.
type LikedVideo struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Thumbnail string    `json:"thumbnail"`
	VideoFile string    `json:"video_file"`
	Duration  float64   `json:"duration"`
	Views     int64     `json:"views"`
	OwnerID   uint      `json:"owner_id"`
	LikedAt   time.Time `json:"liked_at"`
}
