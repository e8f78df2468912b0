package subscription

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrPersistenceFailed    = errors.New("subscription could not be persisted")
	ErrUnresponsiveDatabase = errors.New("database is unresponsive")
)

type Repository interface {
	Create(ctx context.Context, sub *Subscription) error
	Delete(ctx context.Context, id uint) error
	Find(ctx context.Context, subscriberID, channelID uint) (*Subscription, error)
	ListSubscribers(ctx context.Context, channelID uint) ([]ListedChannel, error)
	ListSubscribedChannels(ctx context.Context, subscriberID uint) ([]ListedChannel, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewRepository(db *gorm.DB, logger *zap.Logger) Repository {
	return &repository{db: db, logger: logger}
}

func (r *repository) Create(ctx context.Context, sub *Subscription) error {
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		r.logger.Error("failed to persist subscription", zap.Error(err))
		return ErrPersistenceFailed
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Unscoped().Delete(&Subscription{}, id)
	if res.Error != nil {
		r.logger.Error("failed to delete subscription", zap.Uint("id", id), zap.Error(res.Error))
		return ErrUnresponsiveDatabase
	}
	if res.RowsAffected == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

func (r *repository) Find(ctx context.Context, subscriberID, channelID uint) (*Subscription, error) {
	var sub Subscription
	err := r.db.WithContext(ctx).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSubscriptionNotFound
	}
	if err != nil {
		r.logger.Error("failed to query subscription", zap.Error(err))
		return nil, ErrUnresponsiveDatabase
	}
	return &sub, nil
}

func (r *repository) ListSubscribers(ctx context.Context, channelID uint) ([]ListedChannel, error) {
	return r.listJoined(ctx, "subscriptions.subscriber_id", "subscriptions.channel_id = ?", channelID)
}

func (r *repository) ListSubscribedChannels(ctx context.Context, subscriberID uint) ([]ListedChannel, error) {
	return r.listJoined(ctx, "subscriptions.channel_id", "subscriptions.subscriber_id = ?", subscriberID)
}

func (r *repository) listJoined(ctx context.Context, joinColumn, where string, id uint) ([]ListedChannel, error) {
	var channels []ListedChannel
	err := r.db.WithContext(ctx).
		Table("subscriptions").
		Select("users.id AS id, users.username AS username, users.full_name AS full_name, "+
			"users.avatar AS avatar, subscriptions.created_at AS subscribed_at").
		Joins("JOIN users ON users.id = "+joinColumn+" AND users.deleted_at IS NULL").
		Where(where+" AND subscriptions.deleted_at IS NULL", id).
		Order("subscriptions.created_at DESC").
		Scan(&channels).Error
	if err != nil {
		r.logger.Error("failed to list subscriptions", zap.Error(err))
		return nil, ErrUnresponsiveDatabase
	}
	return channels, nil
}
