package playlist

import (
	"gorm.io/gorm"
)

// Playlist is a named, user-owned collection of videos.
type Playlist struct {
	gorm.Model
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`
	OwnerID     uint   `json:"owner_id" gorm:"index;not null"`
}

// PlaylistVideo links a video into a playlist. A video appears in a
// playlist at most once.
type PlaylistVideo struct {
	gorm.Model
	PlaylistID uint `json:"playlist_id" gorm:"uniqueIndex:idx_playlist_video;not null"`
	VideoID    uint `json:"video_id" gorm:"uniqueIndex:idx_playlist_video;not null"`
}

// PlaylistEntry is a row of a playlist's video listing.
type PlaylistEntry struct {
	ID        uint    `json:"id"`
	Title     string  `json:"title"`
	Thumbnail string  `json:"thumbnail"`
	Duration  float64 `json:"duration"`
	Views     int64   `json:"views"`
	OwnerID   uint    `json:"owner_id"`
}

// Detail is a playlist together with its videos.
type Detail struct {
	Playlist
	Videos []PlaylistEntry `json:"videos"`
}
