package user

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User is the account record. Password holds a bcrypt hash and
// RefreshToken the single currently valid refresh token; nil means no
// active session. Both are never serialized.
type User struct {
	gorm.Model
	Username     string  `json:"username" gorm:"uniqueIndex;not null"`
	Email        string  `json:"email" gorm:"uniqueIndex;not null"`
	FullName     string  `json:"fullname" gorm:"not null"`
	Avatar       string  `json:"avatar" gorm:"not null"`
	CoverImage   string  `json:"cover_image"`
	Password     string  `json:"-" gorm:"not null"`
	RefreshToken *string `json:"-"`
}

// NewUser normalizes username and email the way the upstream schema
// does: lowercased and trimmed.
func NewUser(username, email, fullName, passwordHash, avatar, coverImage string) *User {
	return &User{
		Username:   strings.ToLower(strings.TrimSpace(username)),
		Email:      strings.ToLower(strings.TrimSpace(email)),
		FullName:   strings.TrimSpace(fullName),
		Avatar:     avatar,
		CoverImage: coverImage,
		Password:   passwordHash,
	}
}

// Profile is the sanitized account view returned to clients.
type Profile struct {
	ID         uint      `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullname"`
	Avatar     string    `json:"avatar"`
	CoverImage string    `json:"cover_image,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (u *User) Profile() *Profile {
	return &Profile{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FullName:   u.FullName,
		Avatar:     u.Avatar,
		CoverImage: u.CoverImage,
		CreatedAt:  u.CreatedAt,
	}
}

// ChannelProfile is a channel page view: the account's public fields
// plus subscription counters relative to the viewer.
type ChannelProfile struct {
	ID                uint   `json:"id"`
	Username          string `json:"username"`
	FullName          string `json:"fullname"`
	Email             string `json:"email"`
	Avatar            string `json:"avatar"`
	CoverImage        string `json:"cover_image,omitempty"`
	SubscriberCount   int64  `json:"subscriber_count"`
	SubscribedToCount int64  `json:"subscribed_to_count"`
	IsSubscribed      bool   `json:"is_subscribed"`
}

// WatchHistoryEntry links an account to a video it watched. The most
// recent watch wins; rewatching bumps CreatedAt.
type WatchHistoryEntry struct {
	ID        uint      `gorm:"primarykey"`
	UserID    uint      `gorm:"index:idx_watch_user_video,unique;not null"`
	VideoID   uint      `gorm:"index:idx_watch_user_video,unique;not null"`
	CreatedAt time.Time
}

// WatchedVideo is a joined watch-history row.
type WatchedVideo struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Thumbnail     string    `json:"thumbnail"`
	VideoFile     string    `json:"video_file"`
	Duration      float64   `json:"duration"`
	Views         int64     `json:"views"`
	OwnerID       uint      `json:"owner_id"`
	OwnerUsername string    `json:"owner_username"`
	OwnerFullName string    `json:"owner_fullname"`
	OwnerAvatar   string    `json:"owner_avatar"`
	WatchedAt     time.Time `json:"watched_at"`
}
