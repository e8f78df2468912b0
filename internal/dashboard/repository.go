package dashboard

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrUnresponsiveDatabase = errors.New("database is unresponsive")

type Repository interface {
	ReadChannelStats(ctx context.Context, channelID uint) (*ChannelStats, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewRepository(db *gorm.DB, logger *zap.Logger) Repository {
	return &repository{db: db, logger: logger}
}

func (r *repository) ReadChannelStats(ctx context.Context, channelID uint) (*ChannelStats, error) {
	stats := &ChannelStats{}
	db := r.db.WithContext(ctx)

	type step struct {
		name string
		run  func() error
	}
	steps := []step{
		{"videos", func() error {
			type videoTotals struct {
				Count int64
				Views int64
			}
			var totals videoTotals
			err := db.Table("videos").
				Select("COUNT(*) AS count, COALESCE(SUM(views), 0) AS views").
				Where("owner_id = ? AND deleted_at IS NULL", channelID).
				Scan(&totals).Error
			stats.TotalVideos = totals.Count
			stats.TotalViews = totals.Views
			return err
		}},
		{"subscribers", func() error {
			return db.Table("subscriptions").
				Where("channel_id = ? AND deleted_at IS NULL", channelID).
				Count(&stats.TotalSubscribers).Error
		}},
		{"tweets", func() error {
			return db.Table("tweets").
				Where("owner_id = ? AND deleted_at IS NULL", channelID).
				Count(&stats.TotalTweets).Error
		}},
		{"comments", func() error {
			return db.Table("comments").
				Joins("JOIN videos ON videos.id = comments.video_id").
				Where("videos.owner_id = ? AND comments.deleted_at IS NULL", channelID).
				Count(&stats.TotalComments).Error
		}},
		{"video likes", func() error {
			return db.Table("likes").
				Joins("JOIN videos ON videos.id = likes.video_id").
				Where("videos.owner_id = ? AND likes.deleted_at IS NULL", channelID).
				Count(&stats.VideoLikes).Error
		}},
		{"comment likes", func() error {
			return db.Table("likes").
				Joins("JOIN comments ON comments.id = likes.comment_id").
				Where("comments.owner_id = ? AND likes.deleted_at IS NULL", channelID).
				Count(&stats.CommentLikes).Error
		}},
		{"tweet likes", func() error {
			return db.Table("likes").
				Joins("JOIN tweets ON tweets.id = likes.tweet_id").
				Where("tweets.owner_id = ? AND likes.deleted_at IS NULL", channelID).
				Count(&stats.TweetLikes).Error
		}},
	}

	for _, s := range steps {
		if err := s.run(); err != nil {
			r.logger.Error("failed to aggregate channel stats",
				zap.String("step", s.name), zap.Uint("channelID", channelID), zap.Error(err))
			return nil, ErrUnresponsiveDatabase
		}
	}
	return stats, nil
}
