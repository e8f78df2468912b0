package subscription

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/streamtube/streamtube/internal/user"
)

var (
	ErrChannelNotFound  = errors.New("channel not found")
	ErrSelfSubscription = errors.New("subscribing to your own channel is not allowed")
)

// ToggleResult reports whether the toggle ended subscribed or unsubscribed.
type ToggleResult struct {
	Subscribed bool `json:"subscribed"`
}

// ChannelChecker verifies that the channel account exists.
type ChannelChecker interface {
	ReadByID(ctx context.Context, id uint) (*user.User, error)
}

type Service interface {
	Toggle(ctx context.Context, subscriberID, channelID uint) (*ToggleResult, error)
	GetSubscribers(ctx context.Context, channelID uint) ([]ListedChannel, error)
	GetSubscribedChannels(ctx context.Context, subscriberID uint) ([]ListedChannel, error)
}

type service struct {
	repo     Repository
	channels ChannelChecker
	logger   *zap.Logger
}

func NewService(repo Repository, channels ChannelChecker, logger *zap.Logger) Service {
	return &service{repo: repo, channels: channels, logger: logger}
}

func (s *service) Toggle(ctx context.Context, subscriberID, channelID uint) (*ToggleResult, error) {
	if subscriberID == channelID {
		return nil, ErrSelfSubscription
	}
	if _, err := s.channels.ReadByID(ctx, channelID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}

	existing, err := s.repo.Find(ctx, subscriberID, channelID)
	switch {
	case err == nil:
		if err := s.repo.Delete(ctx, existing.ID); err != nil && !errors.Is(err, ErrSubscriptionNotFound) {
			return nil, err
		}
		return &ToggleResult{Subscribed: false}, nil
	case errors.Is(err, ErrSubscriptionNotFound):
		if err := s.repo.Create(ctx, &Subscription{SubscriberID: subscriberID, ChannelID: channelID}); err != nil {
			return nil, err
		}
		return &ToggleResult{Subscribed: true}, nil
	default:
		return nil, err
	}
}

func (s *service) GetSubscribers(ctx context.Context, channelID uint) ([]ListedChannel, error) {
	if _, err := s.channels.ReadByID(ctx, channelID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}
	return s.repo.ListSubscribers(ctx, channelID)
}

func (s *service) GetSubscribedChannels(ctx context.Context, subscriberID uint) ([]ListedChannel, error) {
	return s.repo.ListSubscribedChannels(ctx, subscriberID)
}
