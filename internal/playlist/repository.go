package playlist

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrPlaylistNotFound     = errors.New("playlist not found")
	ErrPlaylistNotCreated   = errors.New("playlist not created")
	ErrVideoAlreadyInList   = errors.New("video is already in the playlist")
	ErrVideoNotInPlaylist   = errors.New("video is not in the playlist")
	ErrUnresponsiveDatabase = errors.New("error occurred during writing to playlists table")
)

type Repository interface {
	Create(ctx context.Context, playlist *Playlist) error
	ReadByID(ctx context.Context, id uint) (*Playlist, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]Playlist, error)
	Update(ctx context.Context, playlist *Playlist) error
	Delete(ctx context.Context, id uint) error
	AddVideo(ctx context.Context, playlistID, videoID uint) error
	RemoveVideo(ctx context.Context, playlistID, videoID uint) error
	ListVideos(ctx context.Context, playlistID uint) ([]PlaylistEntry, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewRepository(db *gorm.DB, logger *zap.Logger) Repository {
	return &repository{db: db, logger: logger}
}

func (r *repository) Create(ctx context.Context, playlist *Playlist) error {
	if err := r.db.WithContext(ctx).Create(playlist).Error; err != nil {
		r.logger.Error("failed to persist playlist", zap.Error(err))
		return ErrPlaylistNotCreated
	}
	return nil
}

func (r *repository) ReadByID(ctx context.Context, id uint) (*Playlist, error) {
	var playlist Playlist
	err := r.db.WithContext(ctx).First(&playlist, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPlaylistNotFound
	}
	if err != nil {
		r.logger.Error("failed to read playlist", zap.Uint("id", id), zap.Error(err))
		return nil, ErrUnresponsiveDatabase
	}
	return &playlist, nil
}

func (r *repository) ListByOwner(ctx context.Context, ownerID uint) ([]Playlist, error) {
	var playlists []Playlist
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&playlists).Error
	if err != nil {
		r.logger.Error("failed to list playlists", zap.Uint("ownerID", ownerID), zap.Error(err))
		return nil, ErrUnresponsiveDatabase
	}
	return playlists, nil
}

func (r *repository) Update(ctx context.Context, playlist *Playlist) error {
	if err := r.db.WithContext(ctx).Save(playlist).Error; err != nil {
		r.logger.Error("failed to update playlist", zap.Uint("id", playlist.ID), zap.Error(err))
		return ErrUnresponsiveDatabase
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("playlist_id = ?", id).Delete(&PlaylistVideo{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&Playlist{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrPlaylistNotFound
		}
		return nil
	})
	if errors.Is(err, ErrPlaylistNotFound) {
		return err
	}
	if err != nil {
		r.logger.Error("failed to delete playlist", zap.Uint("id", id), zap.Error(err))
		return ErrUnresponsiveDatabase
	}
	return nil
}

func (r *repository) AddVideo(ctx context.Context, playlistID, videoID uint) error {
	link := PlaylistVideo{PlaylistID: playlistID, VideoID: videoID}
	if err := r.db.WithContext(ctx).Create(&link).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrVideoAlreadyInList
		}
		r.logger.Error("failed to add video to playlist",
			zap.Uint("playlistID", playlistID), zap.Uint("videoID", videoID), zap.Error(err))
		return ErrUnresponsiveDatabase
	}
	return nil
}

func (r *repository) RemoveVideo(ctx context.Context, playlistID, videoID uint) error {
	res := r.db.WithContext(ctx).Unscoped().
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Delete(&PlaylistVideo{})
	if res.Error != nil {
		r.logger.Error("failed to remove video from playlist",
			zap.Uint("playlistID", playlistID), zap.Uint("videoID", videoID), zap.Error(res.Error))
		return ErrUnresponsiveDatabase
	}
	if res.RowsAffected == 0 {
		return ErrVideoNotInPlaylist
	}
	return nil
}

func (r *repository) ListVideos(ctx context.Context, playlistID uint) ([]PlaylistEntry, error) {
	var entries []PlaylistEntry
	err := r.db.WithContext(ctx).
		Table("playlist_videos").
		Select("videos.id AS id, videos.title AS title, videos.thumbnail AS thumbnail, "+
			"videos.duration AS duration, videos.views AS views, videos.owner_id AS owner_id").
		Joins("JOIN videos ON videos.id = playlist_videos.video_id AND videos.deleted_at IS NULL").
		Where("playlist_videos.playlist_id = ? AND playlist_videos.deleted_at IS NULL", playlistID).
		Order("playlist_videos.created_at ASC").
		Scan(&entries).Error
	if err != nil {
		r.logger.Error("failed to list playlist videos", zap.Uint("playlistID", playlistID), zap.Error(err))
		return nil, ErrUnresponsiveDatabase
	}
	return entries, nil
}
