package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/streamtube/streamtube/internal/subscription"
	"github.com/streamtube/streamtube/internal/testutils"
	"github.com/streamtube/streamtube/internal/user"
	"github.com/streamtube/streamtube/internal/video"
)

func setupRepo(t *testing.T) (user.Repository, *gorm.DB) {
	t.Helper()
	db := testutils.SetupTestDB(t,
		&user.User{},
		&user.WatchHistoryEntry{},
		&video.Video{},
		&subscription.Subscription{},
	)
	return user.NewRepository(db), db
}

func seed(t *testing.T, repo user.Repository, username string) *user.User {
	t.Helper()
	u := user.NewUser(username, username+"@example.com", "Test User", "hash", "avatar.png", "")
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestCreateNormalizesIdentity(t *testing.T) {
	repo, _ := setupRepo(t)

	u := user.NewUser("  JaNe ", " Jane@Example.COM", " Jane Doe ", "hash", "a.png", "")
	require.NoError(t, repo.Create(context.Background(), u))

	assert.Equal(t, "jane", u.Username)
	assert.Equal(t, "jane@example.com", u.Email)
	assert.Equal(t, "Jane Doe", u.FullName)
}

func TestReadByIdentifier(t *testing.T) {
	repo, _ := setupRepo(t)
	seeded := seed(t, repo, "jane")

	byUsername, err := repo.ReadByIdentifier(context.Background(), "jane")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, byUsername.ID)

	byEmail, err := repo.ReadByIdentifier(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, byEmail.ID)

	_, err = repo.ReadByIdentifier(context.Background(), "nobody")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestSetRefreshToken(t *testing.T) {
	repo, _ := setupRepo(t)
	seeded := seed(t, repo, "jane")

	token := "some-refresh-token"
	require.NoError(t, repo.SetRefreshToken(context.Background(), seeded.ID, &token))

	stored, err := repo.ReadByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.RefreshToken)
	assert.Equal(t, token, *stored.RefreshToken)

	require.NoError(t, repo.SetRefreshToken(context.Background(), seeded.ID, nil))

	stored, err = repo.ReadByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.RefreshToken)
}

func TestUpdatePassword(t *testing.T) {
	repo, _ := setupRepo(t)
	seeded := seed(t, repo, "jane")

	require.NoError(t, repo.UpdatePassword(context.Background(), seeded.ID, "new-hash"))

	stored, err := repo.ReadByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", stored.Password)
}

func TestUpsertWatchHistoryDeduplicates(t *testing.T) {
	repo, db := setupRepo(t)
	viewer := seed(t, repo, "viewer")
	owner := seed(t, repo, "owner")

	v := video.Video{Title: "clip", VideoFile: "v.mp4", Thumbnail: "t.png", OwnerID: owner.ID, IsPublished: true}
	require.NoError(t, db.Create(&v).Error)

	require.NoError(t, repo.UpsertWatchHistory(context.Background(), viewer.ID, v.ID))
	require.NoError(t, repo.UpsertWatchHistory(context.Background(), viewer.ID, v.ID))

	var count int64
	require.NoError(t, db.Table("watch_history_entries").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	history, err := repo.ReadWatchHistory(context.Background(), viewer.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "clip", history[0].Title)
	assert.Equal(t, "owner", history[0].OwnerUsername)
}

func TestReadChannelProfile(t *testing.T) {
	repo, db := setupRepo(t)
	channel := seed(t, repo, "channel")
	fan := seed(t, repo, "fan")
	other := seed(t, repo, "other")

	require.NoError(t, db.Create(&subscription.Subscription{SubscriberID: fan.ID, ChannelID: channel.ID}).Error)
	require.NoError(t, db.Create(&subscription.Subscription{SubscriberID: other.ID, ChannelID: channel.ID}).Error)
	require.NoError(t, db.Create(&subscription.Subscription{SubscriberID: channel.ID, ChannelID: other.ID}).Error)

	profile, err := repo.ReadChannelProfile(context.Background(), "channel", fan.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), profile.SubscriberCount)
	assert.Equal(t, int64(1), profile.SubscribedToCount)
	assert.True(t, profile.IsSubscribed)

	profile, err = repo.ReadChannelProfile(context.Background(), "channel", other.ID)
	require.NoError(t, err)
	assert.True(t, profile.IsSubscribed)

	profile, err = repo.ReadChannelProfile(context.Background(), "channel", channel.ID)
	require.NoError(t, err)
	assert.False(t, profile.IsSubscribed)

	_, err = repo.ReadChannelProfile(context.Background(), "ghost", fan.ID)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
