package tweet

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrTweetNotFound        = errors.New("tweet not found")
	ErrTweetNotCreated      = errors.New("tweet not created")
	ErrUnresponsiveDatabase = errors.New("error occurred during writing to tweets table")
)

type Repository interface {
	Create(ctx context.Context, tweet *Tweet) error
	ReadByID(ctx context.Context, id uint) (*Tweet, error)
	Update(ctx context.Context, tweet *Tweet) error
	Delete(ctx context.Context, id uint) error
	ListByOwner(ctx context.Context, ownerID uint) ([]ListedTweet, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, tweet *Tweet) error {
	if err := r.db.WithContext(ctx).Create(tweet).Error; err != nil {
		return ErrTweetNotCreated
	}
	return nil
}

func (r *repository) ReadByID(ctx context.Context, id uint) (*Tweet, error) {
	var tweet Tweet
	err := r.db.WithContext(ctx).First(&tweet, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTweetNotFound
	}
	if err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return &tweet, nil
}

func (r *repository) Update(ctx context.Context, tweet *Tweet) error {
	if err := r.db.WithContext(ctx).Save(tweet).Error; err != nil {
		return ErrUnresponsiveDatabase
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Tweet{}, id)
	if res.Error != nil {
		return ErrUnresponsiveDatabase
	}
	if res.RowsAffected == 0 {
		return ErrTweetNotFound
	}
	return nil
}

func (r *repository) ListByOwner(ctx context.Context, ownerID uint) ([]ListedTweet, error) {
	var rows []ListedTweet
	err := r.db.WithContext(ctx).
		Table("tweets").
		Select(`tweets.id, tweets.content, tweets.created_at,
			users.id AS owner_id, users.username AS owner_username,
			users.full_name AS owner_full_name, users.avatar AS owner_avatar`).
		Joins("JOIN users ON users.id = tweets.owner_id").
		Where("tweets.deleted_at IS NULL").
		Where("tweets.owner_id = ?", ownerID).
		Order("tweets.created_at DESC").
		Scan(&rows).
		Error
	if err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return rows, nil
}
