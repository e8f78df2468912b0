package subscription_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/streamtube/streamtube/internal/subscription"
	"github.com/streamtube/streamtube/internal/testutils"
	"github.com/streamtube/streamtube/internal/user"
)

func setupSubs(t *testing.T) (subscription.Service, user.Repository, *gorm.DB) {
	t.Helper()
	db := testutils.SetupTestDB(t, &subscription.Subscription{}, &user.User{})

	logger := zap.NewNop()
	users := user.NewRepository(db)
	svc := subscription.NewService(subscription.NewRepository(db, logger), users, logger)
	return svc, users, db
}

func seedAccount(t *testing.T, users user.Repository, username string) *user.User {
	t.Helper()
	u := user.NewUser(username, username+"@example.com", "Test User", "hash", "a.png", "")
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func TestToggleSubscription(t *testing.T) {
	svc, users, _ := setupSubs(t)
	fan := seedAccount(t, users, "fan")
	channel := seedAccount(t, users, "channel")

	result, err := svc.Toggle(context.Background(), fan.ID, channel.ID)
	require.NoError(t, err)
	assert.True(t, result.Subscribed)

	subscribers, err := svc.GetSubscribers(context.Background(), channel.ID)
	require.NoError(t, err)
	require.Len(t, subscribers, 1)
	assert.Equal(t, "fan", subscribers[0].Username)

	channels, err := svc.GetSubscribedChannels(context.Background(), fan.ID)
	require.NoError(t, err)
	require.Len(t, channels, 1)
	assert.Equal(t, "channel", channels[0].Username)

	result, err = svc.Toggle(context.Background(), fan.ID, channel.ID)
	require.NoError(t, err)
	assert.False(t, result.Subscribed)

	subscribers, err = svc.GetSubscribers(context.Background(), channel.ID)
	require.NoError(t, err)
	assert.Empty(t, subscribers)
}

func TestToggleSelfSubscription(t *testing.T) {
	svc, users, _ := setupSubs(t)
	account := seedAccount(t, users, "solo")

	_, err := svc.Toggle(context.Background(), account.ID, account.ID)
	assert.ErrorIs(t, err, subscription.ErrSelfSubscription)
}

func TestToggleUnknownChannel(t *testing.T) {
	svc, users, _ := setupSubs(t)
	fan := seedAccount(t, users, "fan")

	_, err := svc.Toggle(context.Background(), fan.ID, 999)
	assert.ErrorIs(t, err, subscription.ErrChannelNotFound)
}

func TestGetSubscribersUnknownChannel(t *testing.T) {
	svc, _, _ := setupSubs(t)

	_, err := svc.GetSubscribers(context.Background(), 999)
	assert.ErrorIs(t, err, subscription.ErrChannelNotFound)
}
