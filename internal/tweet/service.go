package tweet

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
)

var (
	ErrEmptyContent = errors.New("empty tweet not allowed")
	ErrNotOwner     = errors.New("only the owner may modify this tweet")
)

type Service interface {
	Create(ctx context.Context, ownerID uint, content string) (*Tweet, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]ListedTweet, error)
	Update(ctx context.Context, id, ownerID uint, content string) (*Tweet, error)
	Delete(ctx context.Context, id, ownerID uint) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) Create(ctx context.Context, ownerID uint, content string) (*Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	tweet := &Tweet{Content: content, OwnerID: ownerID}
	if err := s.repo.Create(ctx, tweet); err != nil {
		s.logger.Error("failed to create tweet", zap.Uint("owner_id", ownerID), zap.Error(err))
		return nil, err
	}
	return tweet, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID uint) ([]ListedTweet, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *service) Update(ctx context.Context, id, ownerID uint, content string) (*Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	tweet, err := s.repo.ReadByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tweet.OwnerID != ownerID {
		return nil, ErrNotOwner
	}

	tweet.Content = content
	if err := s.repo.Update(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

func (s *service) Delete(ctx context.Context, id, ownerID uint) error {
	tweet, err := s.repo.ReadByID(ctx, id)
	if err != nil {
		return err
	}
	if tweet.OwnerID != ownerID {
		return ErrNotOwner
	}
	return s.repo.Delete(ctx, id)
}
