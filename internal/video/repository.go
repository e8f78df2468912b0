package video

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrVideoNotFound        = errors.New("video not found")
	ErrVideoNotCreated      = errors.New("video not created")
	ErrUnresponsiveDatabase = errors.New("error occurred during writing to videos table")
)

// Sortable columns for listings; anything else falls back to created_at.
var sortableColumns = map[string]string{
	"created_at": "videos.created_at",
	"views":      "videos.views",
	"duration":   "videos.duration",
	"title":      "videos.title",
}

type Repository interface {
	Create(ctx context.Context, video *Video) error
	ReadByID(ctx context.Context, id uint) (*Video, error)
	Exists(ctx context.Context, id uint) error
	Update(ctx context.Context, video *Video) error
	Delete(ctx context.Context, id uint) error
	IncrementViews(ctx context.Context, id uint) error
	List(ctx context.Context, params ListParams) ([]ListedVideo, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, video *Video) error {
	if err := r.db.WithContext(ctx).Create(video).Error; err != nil {
		return ErrVideoNotCreated
	}
	return nil
}

func (r *repository) ReadByID(ctx context.Context, id uint) (*Video, error) {
	var video Video
	err := r.db.WithContext(ctx).First(&video, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVideoNotFound
	}
	if err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return &video, nil
}

func (r *repository) Exists(ctx context.Context, id uint) error {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&Video{}).
		Where("id = ?", id).
		Count(&n).
		Error
	if err != nil {
		return ErrUnresponsiveDatabase
	}
	if n == 0 {
		return ErrVideoNotFound
	}
	return nil
}

func (r *repository) Update(ctx context.Context, video *Video) error {
	if err := r.db.WithContext(ctx).Save(video).Error; err != nil {
		return ErrUnresponsiveDatabase
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Video{}, id)
	if res.Error != nil {
		return ErrUnresponsiveDatabase
	}
	if res.RowsAffected == 0 {
		return ErrVideoNotFound
	}
	return nil
}

func (r *repository) IncrementViews(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).
		Model(&Video{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1"))
	if res.Error != nil {
		return ErrUnresponsiveDatabase
	}
	if res.RowsAffected == 0 {
		return ErrVideoNotFound
	}
	return nil
}

func (r *repository) List(ctx context.Context, params ListParams) ([]ListedVideo, int64, error) {
	base := r.db.WithContext(ctx).
		Table("videos").
		Joins("JOIN users ON users.id = videos.owner_id").
		Where("videos.deleted_at IS NULL").
		Where("videos.is_published = ?", true)

	if params.Query != "" {
		pattern := "%" + params.Query + "%"
		base = base.Where("LOWER(videos.title) LIKE LOWER(?) OR LOWER(videos.description) LIKE LOWER(?)", pattern, pattern)
	}
	if params.OwnerID != 0 {
		base = base.Where("videos.owner_id = ?", params.OwnerID)
	}
	// fresh session so the count and the page query do not share state
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, ErrUnresponsiveDatabase
	}

	column, ok := sortableColumns[params.SortBy]
	if !ok {
		column = "videos.created_at"
	}
	direction := "DESC"
	if params.Ascending {
		direction = "ASC"
	}

	var rows []ListedVideo
	err := base.
		Select(`videos.id, videos.video_file, videos.thumbnail, videos.title, videos.description,
			videos.duration, videos.views, videos.created_at,
			users.id AS owner_id, users.username AS owner_username,
			users.full_name AS owner_full_name, users.avatar AS owner_avatar`).
		Order(fmt.Sprintf("%s %s", column, direction)).
		Offset((params.Page - 1) * params.Limit).
		Limit(params.Limit).
		Scan(&rows).
		Error
	if err != nil {
		return nil, 0, ErrUnresponsiveDatabase
	}
	return rows, total, nil
}
