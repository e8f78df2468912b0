package comment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/streamtube/streamtube/internal/comment"
	"github.com/streamtube/streamtube/internal/testutils"
	"github.com/streamtube/streamtube/internal/user"
	"github.com/streamtube/streamtube/internal/video"
)

func setupComments(t *testing.T) (comment.Service, *gorm.DB) {
	t.Helper()
	db := testutils.SetupTestDB(t, &comment.Comment{}, &video.Video{}, &user.User{})

	svc := comment.NewService(comment.NewRepository(db), video.NewRepository(db), zap.NewNop())
	return svc, db
}

func seedVideo(t *testing.T, db *gorm.DB) *video.Video {
	t.Helper()
	v := &video.Video{Title: "clip", VideoFile: "v.mp4", Thumbnail: "t.png", OwnerID: 1, IsPublished: true}
	require.NoError(t, db.Create(v).Error)
	return v
}

func TestAddComment(t *testing.T) {
	svc, db := setupComments(t)
	v := seedVideo(t, db)

	cm, err := svc.Add(context.Background(), v.ID, 7, "  first!  ")
	require.NoError(t, err)
	assert.Equal(t, "first!", cm.Content)
	assert.Equal(t, uint(7), cm.OwnerID)
	assert.Equal(t, v.ID, cm.VideoID)
}

func TestAddCommentRejectsEmptyContent(t *testing.T) {
	svc, db := setupComments(t)
	v := seedVideo(t, db)

	_, err := svc.Add(context.Background(), v.ID, 7, "   ")
	assert.ErrorIs(t, err, comment.ErrEmptyContent)
}

func TestAddCommentUnknownVideo(t *testing.T) {
	svc, _ := setupComments(t)

	_, err := svc.Add(context.Background(), 999, 7, "hello")
	assert.ErrorIs(t, err, video.ErrVideoNotFound)
}

func TestUpdateCommentOwnerOnly(t *testing.T) {
	svc, db := setupComments(t)
	v := seedVideo(t, db)

	cm, err := svc.Add(context.Background(), v.ID, 7, "original")
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), cm.ID, 8, "hijacked")
	assert.ErrorIs(t, err, comment.ErrNotOwner)

	updated, err := svc.Update(context.Background(), cm.ID, 7, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
}

func TestDeleteCommentOwnerOnly(t *testing.T) {
	svc, db := setupComments(t)
	v := seedVideo(t, db)

	cm, err := svc.Add(context.Background(), v.ID, 7, "to be removed")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(context.Background(), cm.ID, 8), comment.ErrNotOwner)
	require.NoError(t, svc.Delete(context.Background(), cm.ID, 7))

	assert.ErrorIs(t, svc.Delete(context.Background(), cm.ID, 7), comment.ErrCommentNotFound)
}

func TestListByVideoPaginates(t *testing.T) {
	svc, db := setupComments(t)
	v := seedVideo(t, db)

	owner := user.NewUser("jane", "jane@example.com", "Jane Doe", "hash", "a.png", "")
	require.NoError(t, db.Create(owner).Error)

	for _, content := range []string{"one", "two", "three"} {
		_, err := svc.Add(context.Background(), v.ID, owner.ID, content)
		require.NoError(t, err)
	}

	listed, total, err := svc.ListByVideo(context.Background(), v.ID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, listed, 2)

	listed, _, err = svc.ListByVideo(context.Background(), v.ID, 2, 2)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}
