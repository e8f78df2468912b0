package video

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/streamtube/streamtube/internal/storage"
)

var (
	ErrNotOwner      = errors.New("only the owner may modify this video")
	ErrMissingFields = errors.New("title and description are required")
	ErrNothingToDo   = errors.New("at least one field is required")
)

// WatchRecorder appends a watched video to an account's history.
type WatchRecorder interface {
	RecordWatch(ctx context.Context, userID, videoID uint) error
}

type PublishInput struct {
	Title       string
	Description string
	Duration    float64
	VideoFile   *storage.FileUpload
	Thumbnail   *storage.FileUpload
}

type UpdateInput struct {
	Title       string
	Description string
	Thumbnail   *storage.FileUpload
}

type Service interface {
	Publish(ctx context.Context, ownerID uint, input PublishInput) (*Video, error)
	Get(ctx context.Context, id, viewerID uint) (*Video, error)
	List(ctx context.Context, params ListParams) ([]ListedVideo, int64, error)
	Update(ctx context.Context, id, ownerID uint, input UpdateInput) (*Video, error)
	Delete(ctx context.Context, id, ownerID uint) error
	TogglePublish(ctx context.Context, id, ownerID uint) (bool, error)
}

type service struct {
	repo    Repository
	blobs   storage.BlobStore
	history WatchRecorder
	logger  *zap.Logger
}

func NewService(repo Repository, blobs storage.BlobStore, history WatchRecorder, logger *zap.Logger) Service {
	return &service{repo: repo, blobs: blobs, history: history, logger: logger}
}

func (s *service) Publish(ctx context.Context, ownerID uint, input PublishInput) (*Video, error) {
	if input.Title == "" || input.Description == "" {
		return nil, ErrMissingFields
	}
	if input.VideoFile == nil || input.Thumbnail == nil {
		return nil, ErrMissingFields
	}

	uploadedVideo, err := s.blobs.Upload(ctx, input.VideoFile.Reader, input.VideoFile.ContentType, "videos")
	if err != nil {
		return nil, err
	}
	uploadedThumb, err := s.blobs.Upload(ctx, input.Thumbnail.Reader, input.Thumbnail.ContentType, "thumbnails")
	if err != nil {
		return nil, err
	}

	duration := input.Duration
	if uploadedVideo.Duration > 0 {
		duration = uploadedVideo.Duration
	}

	v := &Video{
		VideoFile:   uploadedVideo.URL,
		Thumbnail:   uploadedThumb.URL,
		Title:       input.Title,
		Description: input.Description,
		Duration:    duration,
		IsPublished: true,
		OwnerID:     ownerID,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		s.logger.Error("failed to create video", zap.Uint("owner_id", ownerID), zap.Error(err))
		return nil, err
	}
	return v, nil
}

// Get returns a video, bumping its view counter and the viewer's watch
// history. History failures do not fail the read.
func (s *service) Get(ctx context.Context, id, viewerID uint) (*Video, error) {
	v, err := s.repo.ReadByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.IncrementViews(ctx, id); err != nil {
		s.logger.Warn("failed to increment views", zap.Uint("video_id", id), zap.Error(err))
	} else {
		v.Views++
	}

	if viewerID != 0 {
		if err := s.history.RecordWatch(ctx, viewerID, id); err != nil {
			s.logger.Warn("failed to record watch history", zap.Uint("user_id", viewerID), zap.Error(err))
		}
	}
	return v, nil
}

func (s *service) List(ctx context.Context, params ListParams) ([]ListedVideo, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 || params.Limit > 100 {
		params.Limit = 10
	}
	return s.repo.List(ctx, params)
}

func (s *service) Update(ctx context.Context, id, ownerID uint, input UpdateInput) (*Video, error) {
	if input.Title == "" && input.Description == "" && input.Thumbnail == nil {
		return nil, ErrNothingToDo
	}

	v, err := s.repo.ReadByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.OwnerID != ownerID {
		return nil, ErrNotOwner
	}

	if input.Title != "" {
		v.Title = input.Title
	}
	if input.Description != "" {
		v.Description = input.Description
	}
	if input.Thumbnail != nil {
		uploaded, err := s.blobs.Upload(ctx, input.Thumbnail.Reader, input.Thumbnail.ContentType, "thumbnails")
		if err != nil {
			return nil, err
		}
		previous := v.Thumbnail
		v.Thumbnail = uploaded.URL
		if previous != "" && !s.blobs.Delete(ctx, previous) {
			s.logger.Warn("failed to delete previous thumbnail", zap.String("url", previous))
		}
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) Delete(ctx context.Context, id, ownerID uint) error {
	v, err := s.repo.ReadByID(ctx, id)
	if err != nil {
		return err
	}
	if v.OwnerID != ownerID {
		return ErrNotOwner
	}

	if !s.blobs.Delete(ctx, v.VideoFile) {
		s.logger.Warn("failed to delete video file from blob storage", zap.String("url", v.VideoFile))
	}
	if !s.blobs.Delete(ctx, v.Thumbnail) {
		s.logger.Warn("failed to delete thumbnail from blob storage", zap.String("url", v.Thumbnail))
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) TogglePublish(ctx context.Context, id, ownerID uint) (bool, error) {
	v, err := s.repo.ReadByID(ctx, id)
	if err != nil {
		return false, err
	}
	if v.OwnerID != ownerID {
		return false, ErrNotOwner
	}

	v.IsPublished = !v.IsPublished
	if err := s.repo.Update(ctx, v); err != nil {
		return false, err
	}
	return v.IsPublished, nil
}
