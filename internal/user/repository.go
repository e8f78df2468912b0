package user

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUsernameOrEmailExists = errors.New("username or email already exists")
	ErrUserNotCreated        = errors.New("user not created")
	ErrUserNotUpdated        = errors.New("user not updated")
	ErrUnresponsiveDatabase  = errors.New("error occurred during writing to users table")

	// ErrStaleRefreshToken means the stored refresh token no longer
	// matches the presented one: it was rotated, cleared, or never set.
	ErrStaleRefreshToken = errors.New("refresh token is stale")
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	ReadByID(ctx context.Context, id uint) (*User, error)
	ReadByIdentifier(ctx context.Context, identifier string) (*User, error)
	ReadByUsername(ctx context.Context, username string) (*User, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error

	// SetRefreshToken persists or clears the stored refresh token
	// unconditionally. nil represents "no active session".
	SetRefreshToken(ctx context.Context, id uint, token *string) error

	// RotateRefreshToken swaps old for new in a single conditional
	// write. When the stored value is not old anymore the swap affects
	// zero rows and ErrStaleRefreshToken is returned; of two concurrent
	// rotations over the same old value exactly one wins.
	RotateRefreshToken(ctx context.Context, id uint, oldToken, newToken string) error

	UpsertWatchHistory(ctx context.Context, userID, videoID uint) error
	ReadWatchHistory(ctx context.Context, userID uint, page, limit int) ([]WatchedVideo, error)
	ReadChannelProfile(ctx context.Context, username string, viewerID uint) (*ChannelProfile, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, user *User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrUsernameOrEmailExists
		}
		return ErrUserNotCreated
	}
	return nil
}

func (r *repository) ReadByID(ctx context.Context, id uint) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return &user, nil
}

func (r *repository) ReadByIdentifier(ctx context.Context, identifier string) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", identifier, identifier).
		First(&user).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return &user, nil
}

func (r *repository) ReadByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return &user, nil
}

func (r *repository) Update(ctx context.Context, user *User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrUsernameOrEmailExists
		}
		return ErrUserNotUpdated
	}
	return nil
}

func (r *repository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	res := r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", id).
		Update("password", passwordHash)
	if res.Error != nil {
		return ErrUnresponsiveDatabase
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *repository) SetRefreshToken(ctx context.Context, id uint, token *string) error {
	res := r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", id).
		Update("refresh_token", token)
	if res.Error != nil {
		return ErrUnresponsiveDatabase
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *repository) RotateRefreshToken(ctx context.Context, id uint, oldToken, newToken string) error {
	res := r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ? AND refresh_token = ?", id, oldToken).
		Update("refresh_token", newToken)
	if res.Error != nil {
		return ErrUnresponsiveDatabase
	}
	if res.RowsAffected == 0 {
		return ErrStaleRefreshToken
	}
	return nil
}

func (r *repository) UpsertWatchHistory(ctx context.Context, userID, videoID uint) error {
	entry := WatchHistoryEntry{UserID: userID, VideoID: videoID, CreatedAt: time.Now().UTC()}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"created_at": entry.CreatedAt}),
		}).
		Create(&entry).
		Error
	if err != nil {
		return ErrUnresponsiveDatabase
	}
	return nil
}

func (r *repository) ReadWatchHistory(ctx context.Context, userID uint, page, limit int) ([]WatchedVideo, error) {
	var rows []WatchedVideo
	err := r.db.WithContext(ctx).
		Table("watch_history_entries").
		Select(`videos.id, videos.title, videos.thumbnail, videos.video_file, videos.duration, videos.views,
			users.id AS owner_id, users.username AS owner_username,
			users.full_name AS owner_full_name, users.avatar AS owner_avatar,
			watch_history_entries.created_at AS watched_at`).
		Joins("JOIN videos ON videos.id = watch_history_entries.video_id AND videos.deleted_at IS NULL").
		Joins("JOIN users ON users.id = videos.owner_id").
		Where("watch_history_entries.user_id = ?", userID).
		Order("watch_history_entries.created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Scan(&rows).
		Error
	if err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return rows, nil
}

func (r *repository) ReadChannelProfile(ctx context.Context, username string, viewerID uint) (*ChannelProfile, error) {
	channel, err := r.ReadByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	profile := &ChannelProfile{
		ID:         channel.ID,
		Username:   channel.Username,
		FullName:   channel.FullName,
		Email:      channel.Email,
		Avatar:     channel.Avatar,
		CoverImage: channel.CoverImage,
	}

	db := r.db.WithContext(ctx)
	if err := db.Table("subscriptions").
		Where("channel_id = ?", channel.ID).
		Count(&profile.SubscriberCount).Error; err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	if err := db.Table("subscriptions").
		Where("subscriber_id = ?", channel.ID).
		Count(&profile.SubscribedToCount).Error; err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	if viewerID != 0 {
		var n int64
		if err := db.Table("subscriptions").
			Where("channel_id = ? AND subscriber_id = ?", channel.ID, viewerID).
			Count(&n).Error; err != nil {
			return nil, ErrUnresponsiveDatabase
		}
		profile.IsSubscribed = n > 0
	}
	return profile, nil
}
