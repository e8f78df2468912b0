package subscription

import (
	"time"

	"gorm.io/gorm"
)

// Subscription records that one account follows another account's channel.
type Subscription struct {
	gorm.Model
	SubscriberID uint `json:"subscriber_id" gorm:"uniqueIndex:idx_subscriber_channel;not null"`
	ChannelID    uint `json:"channel_id" gorm:"uniqueIndex:idx_subscriber_channel;not null"`
}

// ListedChannel is a row of the subscriber or subscribed-channel listings.
type ListedChannel struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	FullName     string    `json:"full_name"`
	Avatar       string    `json:"avatar"`
	SubscribedAt time.Time `json:"subscribed_at"`
}
