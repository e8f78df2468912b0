package dashboard

import (
	"context"

	"go.uber.org/zap"

	"github.com/streamtube/streamtube/internal/video"
)

// VideoLister serves the channel-videos listing.
type VideoLister interface {
	List(ctx context.Context, params video.ListParams) ([]video.ListedVideo, int64, error)
}

type Service interface {
	GetChannelStats(ctx context.Context, channelID uint) (*ChannelStats, error)
	GetChannelVideos(ctx context.Context, channelID uint, page, limit int) ([]video.ListedVideo, int64, error)
}

type service struct {
	repo   Repository
	videos VideoLister
	logger *zap.Logger
}

func NewService(repo Repository, videos VideoLister, logger *zap.Logger) Service {
	return &service{repo: repo, videos: videos, logger: logger}
}

func (s *service) GetChannelStats(ctx context.Context, channelID uint) (*ChannelStats, error) {
	return s.repo.ReadChannelStats(ctx, channelID)
}

func (s *service) GetChannelVideos(ctx context.Context, channelID uint, page, limit int) ([]video.ListedVideo, int64, error) {
	return s.videos.List(ctx, video.ListParams{
		OwnerID: channelID,
		SortBy:  "created_at",
		Page:    page,
		Limit:   limit,
	})
}
