package like

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrLikeNotFound         = errors.New("like not found")
	ErrPersistenceFailed    = errors.New("like could not be persisted")
	ErrUnresponsiveDatabase = errors.New("database is unresponsive")
)

type Repository interface {
	Create(ctx context.Context, like *Like) error
	Delete(ctx context.Context, id uint) error
	FindByTarget(ctx context.Context, likedByID uint, kind TargetKind, targetID uint) (*Like, error)
	ListLikedVideos(ctx context.Context, likedByID uint) ([]LikedVideo, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewRepository(db *gorm.DB, logger *zap.Logger) Repository {
	return &repository{db: db, logger: logger}
}

func (r *repository) Create(ctx context.Context, like *Like) error {
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		r.logger.Error("failed to persist like", zap.Error(err))
		return ErrPersistenceFailed
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Unscoped().Delete(&Like{}, id)
	if res.Error != nil {
		r.logger.Error("failed to delete like", zap.Uint("id", id), zap.Error(res.Error))
		return ErrUnresponsiveDatabase
	}
	if res.RowsAffected == 0 {
		return ErrLikeNotFound
	}
	return nil
}

func (r *repository) FindByTarget(ctx context.Context, likedByID uint, kind TargetKind, targetID uint) (*Like, error) {
	var like Like
	err := r.db.WithContext(ctx).
		Where("liked_by_id = ? AND "+kind.column()+" = ?", likedByID, targetID).
		First(&like).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLikeNotFound
	}
	if err != nil {
		r.logger.Error("failed to query like", zap.Error(err))
		return nil, ErrUnresponsiveDatabase
	}
	return &like, nil
}

func (r *repository) ListLikedVideos(ctx context.Context, likedByID uint) ([]LikedVideo, error) {
	var videos []LikedVideo
	err := r.db.WithContext(ctx).
		Table("likes").
		Select("videos.id AS id, videos.title AS title, videos.thumbnail AS thumbnail, " +
			"videos.video_file AS video_file, videos.duration AS duration, videos.views AS views, " +
			"videos.owner_id AS owner_id, likes.created_at AS liked_at").
		Joins("JOIN videos ON videos.id = likes.video_id AND videos.deleted_at IS NULL").
		Where("likes.liked_by_id = ? AND likes.video_id IS NOT NULL AND likes.deleted_at IS NULL", likedByID).
		Order("likes.created_at DESC").
		Scan(&videos).Error
	if err != nil {
		r.logger.Error("failed to list liked videos", zap.Error(err))
		return nil, ErrUnresponsiveDatabase
	}
	return videos, nil
}
