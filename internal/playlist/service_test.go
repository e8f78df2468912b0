package playlist_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/streamtube/streamtube/internal/playlist"
	"github.com/streamtube/streamtube/internal/testutils"
	"github.com/streamtube/streamtube/internal/video"
)

func setupPlaylists(t *testing.T) (playlist.Service, *gorm.DB) {
	t.Helper()
	db := testutils.SetupTestDB(t, &playlist.Playlist{}, &playlist.PlaylistVideo{}, &video.Video{})

	logger := zap.NewNop()
	svc := playlist.NewService(playlist.NewRepository(db, logger), video.NewRepository(db), logger)
	return svc, db
}

func seedVideo(t *testing.T, db *gorm.DB) *video.Video {
	t.Helper()
	v := &video.Video{Title: "clip", VideoFile: "v.mp4", Thumbnail: "t.png", OwnerID: 1, IsPublished: true}
	require.NoError(t, db.Create(v).Error)
	return v
}

func TestCreatePlaylist(t *testing.T) {
	svc, _ := setupPlaylists(t)

	created, err := svc.Create(context.Background(), 7, "  Favorites ", " good stuff ")
	require.NoError(t, err)
	assert.Equal(t, "Favorites", created.Name)
	assert.Equal(t, "good stuff", created.Description)
	assert.Equal(t, uint(7), created.OwnerID)

	_, err = svc.Create(context.Background(), 7, "   ", "")
	assert.ErrorIs(t, err, playlist.ErrEmptyName)
}

func TestAddAndRemoveVideo(t *testing.T) {
	svc, db := setupPlaylists(t)
	v := seedVideo(t, db)

	created, err := svc.Create(context.Background(), 7, "Favorites", "")
	require.NoError(t, err)

	require.NoError(t, svc.AddVideo(context.Background(), created.ID, 7, v.ID))

	detail, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, detail.Videos, 1)
	assert.Equal(t, v.ID, detail.Videos[0].ID)

	require.NoError(t, svc.RemoveVideo(context.Background(), created.ID, 7, v.ID))

	detail, err = svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.Videos)

	err = svc.RemoveVideo(context.Background(), created.ID, 7, v.ID)
	assert.ErrorIs(t, err, playlist.ErrVideoNotInPlaylist)
}

func TestPlaylistOwnerChecks(t *testing.T) {
	svc, db := setupPlaylists(t)
	v := seedVideo(t, db)

	created, err := svc.Create(context.Background(), 7, "Favorites", "")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.AddVideo(context.Background(), created.ID, 8, v.ID), playlist.ErrNotOwner)
	assert.ErrorIs(t, svc.Delete(context.Background(), created.ID, 8), playlist.ErrNotOwner)

	name := "Renamed"
	_, err = svc.Update(context.Background(), created.ID, 8, playlist.UpdateInput{Name: &name})
	assert.ErrorIs(t, err, playlist.ErrNotOwner)
}

func TestAddUnknownVideo(t *testing.T) {
	svc, _ := setupPlaylists(t)

	created, err := svc.Create(context.Background(), 7, "Favorites", "")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.AddVideo(context.Background(), created.ID, 7, 999), playlist.ErrVideoNotFound)
}

func TestDeletePlaylistRemovesLinks(t *testing.T) {
	svc, db := setupPlaylists(t)
	v := seedVideo(t, db)

	created, err := svc.Create(context.Background(), 7, "Favorites", "")
	require.NoError(t, err)
	require.NoError(t, svc.AddVideo(context.Background(), created.ID, 7, v.ID))

	require.NoError(t, svc.Delete(context.Background(), created.ID, 7))

	_, err = svc.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, playlist.ErrPlaylistNotFound)

	var links int64
	require.NoError(t, db.Table("playlist_videos").Count(&links).Error)
	assert.Equal(t, int64(0), links)
}

func TestListByOwner(t *testing.T) {
	svc, _ := setupPlaylists(t)

	_, err := svc.Create(context.Background(), 7, "First", "")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), 7, "Second", "")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), 8, "Other", "")
	require.NoError(t, err)

	playlists, err := svc.ListByOwner(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, playlists, 2)
}
