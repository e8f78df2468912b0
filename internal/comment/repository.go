package comment

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrCommentNotFound      = errors.New("comment not found")
	ErrCommentNotCreated    = errors.New("comment not created")
	ErrUnresponsiveDatabase = errors.New("error occurred during writing to comments table")
)

type Repository interface {
	Create(ctx context.Context, comment *Comment) error
	ReadByID(ctx context.Context, id uint) (*Comment, error)
	Update(ctx context.Context, comment *Comment) error
	Delete(ctx context.Context, id uint) error
	ListByVideo(ctx context.Context, videoID uint, page, limit int) ([]ListedComment, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, comment *Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return ErrCommentNotCreated
	}
	return nil
}

func (r *repository) ReadByID(ctx context.Context, id uint) (*Comment, error) {
	var comment Comment
	err := r.db.WithContext(ctx).First(&comment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCommentNotFound
	}
	if err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return &comment, nil
}

func (r *repository) Update(ctx context.Context, comment *Comment) error {
	if err := r.db.WithContext(ctx).Save(comment).Error; err != nil {
		return ErrUnresponsiveDatabase
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Comment{}, id)
	if res.Error != nil {
		return ErrUnresponsiveDatabase
	}
	if res.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

func (r *repository) ListByVideo(ctx context.Context, videoID uint, page, limit int) ([]ListedComment, int64, error) {
	base := r.db.WithContext(ctx).
		Table("comments").
		Joins("JOIN users ON users.id = comments.owner_id").
		Where("comments.deleted_at IS NULL").
		Where("comments.video_id = ?", videoID).
		Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, ErrUnresponsiveDatabase
	}

	var rows []ListedComment
	err := base.
		Select(`comments.id, comments.content, comments.video_id, comments.created_at,
			users.id AS owner_id, users.username AS owner_username,
			users.full_name AS owner_full_name, users.avatar AS owner_avatar`).
		Order("comments.created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Scan(&rows).
		Error
	if err != nil {
		return nil, 0, ErrUnresponsiveDatabase
	}
	return rows, total, nil
}
