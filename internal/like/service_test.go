package like_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/streamtube/streamtube/internal/comment"
	"github.com/streamtube/streamtube/internal/like"
	"github.com/streamtube/streamtube/internal/testutils"
	"github.com/streamtube/streamtube/internal/tweet"
	"github.com/streamtube/streamtube/internal/video"
)

func setupLikes(t *testing.T) (like.Service, *gorm.DB) {
	t.Helper()
	db := testutils.SetupTestDB(t, &like.Like{}, &video.Video{}, &comment.Comment{}, &tweet.Tweet{})

	logger := zap.NewNop()
	svc := like.NewService(
		like.NewRepository(db, logger),
		video.NewRepository(db),
		comment.NewRepository(db),
		tweet.NewRepository(db),
		logger,
	)
	return svc, db
}

func seedVideo(t *testing.T, db *gorm.DB, ownerID uint) *video.Video {
	t.Helper()
	v := &video.Video{Title: "clip", VideoFile: "v.mp4", Thumbnail: "t.png", OwnerID: ownerID, IsPublished: true}
	require.NoError(t, db.Create(v).Error)
	return v
}

func TestToggleVideoLike(t *testing.T) {
	svc, db := setupLikes(t)
	v := seedVideo(t, db, 1)

	result, err := svc.ToggleVideoLike(context.Background(), 7, v.ID)
	require.NoError(t, err)
	assert.True(t, result.Liked)

	var count int64
	require.NoError(t, db.Table("likes").Where("deleted_at IS NULL").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// second toggle removes the row again
	result, err = svc.ToggleVideoLike(context.Background(), 7, v.ID)
	require.NoError(t, err)
	assert.False(t, result.Liked)

	require.NoError(t, db.Table("likes").Where("deleted_at IS NULL").Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestToggleLikeUnknownTarget(t *testing.T) {
	svc, _ := setupLikes(t)

	_, err := svc.ToggleVideoLike(context.Background(), 7, 999)
	assert.ErrorIs(t, err, like.ErrTargetNotFound)

	_, err = svc.ToggleCommentLike(context.Background(), 7, 999)
	assert.ErrorIs(t, err, like.ErrTargetNotFound)

	_, err = svc.ToggleTweetLike(context.Background(), 7, 999)
	assert.ErrorIs(t, err, like.ErrTargetNotFound)
}

func TestTogglesAreIndependentPerTarget(t *testing.T) {
	svc, db := setupLikes(t)
	v := seedVideo(t, db, 1)

	cm := &comment.Comment{Content: "nice", VideoID: v.ID, OwnerID: 2}
	require.NoError(t, db.Create(cm).Error)

	_, err := svc.ToggleVideoLike(context.Background(), 7, v.ID)
	require.NoError(t, err)
	_, err = svc.ToggleCommentLike(context.Background(), 7, cm.ID)
	require.NoError(t, err)

	// unliking the comment leaves the video like in place
	result, err := svc.ToggleCommentLike(context.Background(), 7, cm.ID)
	require.NoError(t, err)
	assert.False(t, result.Liked)

	liked, err := svc.GetLikedVideos(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, liked, 1)
	assert.Equal(t, v.ID, liked[0].ID)
}

func TestGetLikedVideosOnlyOwn(t *testing.T) {
	svc, db := setupLikes(t)
	first := seedVideo(t, db, 1)
	second := seedVideo(t, db, 1)

	_, err := svc.ToggleVideoLike(context.Background(), 7, first.ID)
	require.NoError(t, err)
	_, err = svc.ToggleVideoLike(context.Background(), 8, second.ID)
	require.NoError(t, err)

	liked, err := svc.GetLikedVideos(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, liked, 1)
	assert.Equal(t, first.ID, liked[0].ID)
}
