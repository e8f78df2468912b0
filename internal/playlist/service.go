package playlist

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/streamtube/streamtube/internal/video"
)

var (
	ErrEmptyName     = errors.New("playlist name is required")
	ErrNotOwner      = errors.New("only the owner may modify this playlist")
	ErrVideoNotFound = errors.New("video not found")
)

// VideoChecker verifies that a video exists before it is linked in.
type VideoChecker interface {
	Exists(ctx context.Context, id uint) error
}

// UpdateInput carries the mutable playlist fields. Nil means unchanged.
type UpdateInput struct {
	Name        *string
	Description *string
}

type Service interface {
	Create(ctx context.Context, ownerID uint, name, description string) (*Playlist, error)
	Get(ctx context.Context, id uint) (*Detail, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]Playlist, error)
	Update(ctx context.Context, id, ownerID uint, input UpdateInput) (*Playlist, error)
	Delete(ctx context.Context, id, ownerID uint) error
	AddVideo(ctx context.Context, id, ownerID, videoID uint) error
	RemoveVideo(ctx context.Context, id, ownerID, videoID uint) error
}

type service struct {
	repo   Repository
	videos VideoChecker
	logger *zap.Logger
}

func NewService(repo Repository, videos VideoChecker, logger *zap.Logger) Service {
	return &service{repo: repo, videos: videos, logger: logger}
}

func (s *service) Create(ctx context.Context, ownerID uint, name, description string) (*Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	playlist := &Playlist{Name: name, Description: strings.TrimSpace(description), OwnerID: ownerID}
	if err := s.repo.Create(ctx, playlist); err != nil {
		return nil, err
	}
	s.logger.Info("playlist created", zap.Uint("id", playlist.ID), zap.Uint("ownerID", ownerID))
	return playlist, nil
}

func (s *service) Get(ctx context.Context, id uint) (*Detail, error) {
	playlist, err := s.repo.ReadByID(ctx, id)
	if err != nil {
		return nil, err
	}
	videos, err := s.repo.ListVideos(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Detail{Playlist: *playlist, Videos: videos}, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID uint) ([]Playlist, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *service) Update(ctx context.Context, id, ownerID uint, input UpdateInput) (*Playlist, error) {
	playlist, err := s.owned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrEmptyName
		}
		playlist.Name = name
	}
	if input.Description != nil {
		playlist.Description = strings.TrimSpace(*input.Description)
	}

	if err := s.repo.Update(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (s *service) Delete(ctx context.Context, id, ownerID uint) error {
	if _, err := s.owned(ctx, id, ownerID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) AddVideo(ctx context.Context, id, ownerID, videoID uint) error {
	if _, err := s.owned(ctx, id, ownerID); err != nil {
		return err
	}
	if err := s.videos.Exists(ctx, videoID); err != nil {
		if errors.Is(err, video.ErrVideoNotFound) {
			return ErrVideoNotFound
		}
		return err
	}
	return s.repo.AddVideo(ctx, id, videoID)
}

func (s *service) RemoveVideo(ctx context.Context, id, ownerID, videoID uint) error {
	if _, err := s.owned(ctx, id, ownerID); err != nil {
		return err
	}
	return s.repo.RemoveVideo(ctx, id, videoID)
}

func (s *service) owned(ctx context.Context, id, ownerID uint) (*Playlist, error) {
	playlist, err := s.repo.ReadByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if playlist.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	return playlist, nil
}
