package comment

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
)

var (
	ErrEmptyContent = errors.New("empty comment not allowed")
	ErrNotOwner     = errors.New("only the owner may modify this comment")
)

// VideoChecker confirms a video exists before commenting on it.
type VideoChecker interface {
	Exists(ctx context.Context, videoID uint) error
}

type Service interface {
	Add(ctx context.Context, videoID, ownerID uint, content string) (*Comment, error)
	Update(ctx context.Context, id, ownerID uint, content string) (*Comment, error)
	Delete(ctx context.Context, id, ownerID uint) error
	ListByVideo(ctx context.Context, videoID uint, page, limit int) ([]ListedComment, int64, error)
}

type service struct {
	repo   Repository
	videos VideoChecker
	logger *zap.Logger
}

func NewService(repo Repository, videos VideoChecker, logger *zap.Logger) Service {
	return &service{repo: repo, videos: videos, logger: logger}
}

func (s *service) Add(ctx context.Context, videoID, ownerID uint, content string) (*Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if err := s.videos.Exists(ctx, videoID); err != nil {
		return nil, err
	}

	comment := &Comment{Content: content, VideoID: videoID, OwnerID: ownerID}
	if err := s.repo.Create(ctx, comment); err != nil {
		s.logger.Error("failed to add comment", zap.Uint("video_id", videoID), zap.Error(err))
		return nil, err
	}
	return comment, nil
}

func (s *service) Update(ctx context.Context, id, ownerID uint, content string) (*Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	comment, err := s.repo.ReadByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.OwnerID != ownerID {
		return nil, ErrNotOwner
	}

	comment.Content = content
	if err := s.repo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *service) Delete(ctx context.Context, id, ownerID uint) error {
	comment, err := s.repo.ReadByID(ctx, id)
	if err != nil {
		return err
	}
	if comment.OwnerID != ownerID {
		return ErrNotOwner
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) ListByVideo(ctx context.Context, videoID uint, page, limit int) ([]ListedComment, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return s.repo.ListByVideo(ctx, videoID, page, limit)
}
