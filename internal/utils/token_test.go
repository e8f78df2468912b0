package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAccessSecret  = "access-secret"
	testRefreshSecret = "refresh-secret"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := IssueAccessToken(42, "jane@example.com", "jane", "Jane Doe", testAccessSecret, 15*time.Minute)
	require.NoError(t, err)

	claims, err := ParseAccessToken(token, testAccessSecret)
	require.NoError(t, err)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "jane", claims.Username)
	assert.Equal(t, "Jane Doe", claims.FullName)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, err := IssueRefreshToken(7, testRefreshSecret, 240*time.Hour)
	require.NoError(t, err)

	claims, err := ParseRefreshToken(token, testRefreshSecret)
	require.NoError(t, err)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)
}

func TestParseExpiredToken(t *testing.T) {
	token, err := IssueAccessToken(1, "a@b.c", "a", "A", testAccessSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseAccessToken(token, testAccessSecret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseWrongSecret(t *testing.T) {
	token, err := IssueRefreshToken(1, testRefreshSecret, time.Hour)
	require.NoError(t, err)

	_, err = ParseRefreshToken(token, "some-other-secret")
	assert.ErrorIs(t, err, ErrTokenSignatureInvalid)
}

func TestParseGarbageToken(t *testing.T) {
	_, err := ParseAccessToken("not.a.token", testAccessSecret)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestAccessTokenRejectedByRefreshSecret(t *testing.T) {
	// the two token families sign with distinct secrets, so one can
	// never stand in for the other
	token, err := IssueAccessToken(1, "a@b.c", "a", "A", testAccessSecret, time.Hour)
	require.NoError(t, err)

	_, err = ParseRefreshToken(token, testRefreshSecret)
	assert.ErrorIs(t, err, ErrTokenSignatureInvalid)
}
