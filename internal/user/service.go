package user

import (
	"context"
	"errors"
	"net/mail"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/streamtube/streamtube/internal/storage"
)

var (
	ErrHashingPasswordFailed = errors.New("hashing password failed")
	ErrInvalidEmailFormat    = errors.New("invalid email format")
	ErrMissingFields         = errors.New("all fields are required")
	ErrAvatarRequired        = errors.New("avatar file is required")
)

type RegisterInput struct {
	Username   string
	Email      string
	FullName   string
	Password   string
	Avatar     *storage.FileUpload
	CoverImage *storage.FileUpload
}

type Service interface {
	Register(ctx context.Context, input RegisterInput) (*Profile, error)
	GetByID(ctx context.Context, id uint) (*User, error)
	UpdateAccount(ctx context.Context, id uint, fullName, email string) (*Profile, error)
	UpdateAvatar(ctx context.Context, id uint, file *storage.FileUpload) (*Profile, error)
	UpdateCoverImage(ctx context.Context, id uint, file *storage.FileUpload) (*Profile, error)
	GetChannelProfile(ctx context.Context, username string, viewerID uint) (*ChannelProfile, error)
	GetWatchHistory(ctx context.Context, userID uint, page, limit int) ([]WatchedVideo, error)
	RecordWatch(ctx context.Context, userID, videoID uint) error
}

type service struct {
	repo   Repository
	blobs  storage.BlobStore
	logger *zap.Logger
}

func NewService(repo Repository, blobs storage.BlobStore, logger *zap.Logger) Service {
	return &service{repo: repo, blobs: blobs, logger: logger}
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*Profile, error) {
	if input.Username == "" || input.Email == "" || input.FullName == "" || input.Password == "" {
		return nil, ErrMissingFields
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return nil, ErrInvalidEmailFormat
	}
	if err := CheckPassword(input.Password); err != nil {
		return nil, err
	}
	if input.Avatar == nil {
		return nil, ErrAvatarRequired
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		return nil, ErrHashingPasswordFailed
	}

	avatar, err := s.blobs.Upload(ctx, input.Avatar.Reader, input.Avatar.ContentType, "avatars")
	if err != nil {
		return nil, err
	}

	coverURL := ""
	if input.CoverImage != nil {
		cover, err := s.blobs.Upload(ctx, input.CoverImage.Reader, input.CoverImage.ContentType, "covers")
		if err != nil {
			return nil, err
		}
		coverURL = cover.URL
	}

	u := NewUser(input.Username, input.Email, input.FullName, string(hashed), avatar.URL, coverURL)
	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.Error("failed to create user", zap.String("username", u.Username), zap.Error(err))
		return nil, err
	}
	return u.Profile(), nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*User, error) {
	return s.repo.ReadByID(ctx, id)
}

func (s *service) UpdateAccount(ctx context.Context, id uint, fullName, email string) (*Profile, error) {
	if fullName == "" || email == "" {
		return nil, ErrMissingFields
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmailFormat
	}

	u, err := s.repo.ReadByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.FullName = fullName
	u.Email = email
	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.Error("failed to update account details", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return u.Profile(), nil
}

func (s *service) UpdateAvatar(ctx context.Context, id uint, file *storage.FileUpload) (*Profile, error) {
	if file == nil {
		return nil, ErrAvatarRequired
	}
	u, err := s.repo.ReadByID(ctx, id)
	if err != nil {
		return nil, err
	}

	uploaded, err := s.blobs.Upload(ctx, file.Reader, file.ContentType, "avatars")
	if err != nil {
		return nil, err
	}

	previous := u.Avatar
	u.Avatar = uploaded.URL
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	if previous != "" && !s.blobs.Delete(ctx, previous) {
		s.logger.Warn("failed to delete previous avatar", zap.String("url", previous))
	}
	return u.Profile(), nil
}

func (s *service) UpdateCoverImage(ctx context.Context, id uint, file *storage.FileUpload) (*Profile, error) {
	if file == nil {
		return nil, ErrMissingFields
	}
	u, err := s.repo.ReadByID(ctx, id)
	if err != nil {
		return nil, err
	}

	uploaded, err := s.blobs.Upload(ctx, file.Reader, file.ContentType, "covers")
	if err != nil {
		return nil, err
	}

	previous := u.CoverImage
	u.CoverImage = uploaded.URL
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	if previous != "" && !s.blobs.Delete(ctx, previous) {
		s.logger.Warn("failed to delete previous cover image", zap.String("url", previous))
	}
	return u.Profile(), nil
}

func (s *service) GetChannelProfile(ctx context.Context, username string, viewerID uint) (*ChannelProfile, error) {
	return s.repo.ReadChannelProfile(ctx, username, viewerID)
}

func (s *service) GetWatchHistory(ctx context.Context, userID uint, page, limit int) ([]WatchedVideo, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return s.repo.ReadWatchHistory(ctx, userID, page, limit)
}

func (s *service) RecordWatch(ctx context.Context, userID, videoID uint) error {
	return s.repo.UpsertWatchHistory(ctx, userID, videoID)
}
