package tweet_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/streamtube/streamtube/internal/testutils"
	"github.com/streamtube/streamtube/internal/tweet"
	"github.com/streamtube/streamtube/internal/user"
)

func setupTweets(t *testing.T) (tweet.Service, *gorm.DB) {
	t.Helper()
	db := testutils.SetupTestDB(t, &tweet.Tweet{}, &user.User{})

	owner := user.NewUser("jane", "jane@example.com", "Jane Doe", "hash", "a.png", "")
	require.NoError(t, db.Create(owner).Error)

	return tweet.NewService(tweet.NewRepository(db), zap.NewNop()), db
}

func TestCreateTweet(t *testing.T) {
	svc, _ := setupTweets(t)

	created, err := svc.Create(context.Background(), 1, "  hello world  ")
	require.NoError(t, err)
	assert.Equal(t, "hello world", created.Content)
	assert.Equal(t, uint(1), created.OwnerID)

	_, err = svc.Create(context.Background(), 1, "   ")
	assert.ErrorIs(t, err, tweet.ErrEmptyContent)
}

func TestListByOwner(t *testing.T) {
	svc, _ := setupTweets(t)

	for _, content := range []string{"first", "second"} {
		_, err := svc.Create(context.Background(), 1, content)
		require.NoError(t, err)
	}

	listed, err := svc.ListByOwner(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "jane", listed[0].OwnerUsername)
}

func TestUpdateAndDeleteOwnerOnly(t *testing.T) {
	svc, _ := setupTweets(t)

	created, err := svc.Create(context.Background(), 1, "original")
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, 2, "hijacked")
	assert.ErrorIs(t, err, tweet.ErrNotOwner)

	updated, err := svc.Update(context.Background(), created.ID, 1, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	assert.ErrorIs(t, svc.Delete(context.Background(), created.ID, 2), tweet.ErrNotOwner)
	require.NoError(t, svc.Delete(context.Background(), created.ID, 1))
	assert.ErrorIs(t, svc.Delete(context.Background(), created.ID, 1), tweet.ErrTweetNotFound)
}
