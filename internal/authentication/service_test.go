package authentication

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/streamtube/streamtube/internal/testutils"
	"github.com/streamtube/streamtube/internal/user"
	"github.com/streamtube/streamtube/internal/utils"
)

func testTokenConfig() utils.TokenConfig {
	return utils.TokenConfig{
		AccessTokenSecret:  "access-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenSecret: "refresh-secret",
		RefreshTokenExpiry: 240 * time.Hour,
	}
}

func setupAuth(t *testing.T) (Service, user.Repository, *gorm.DB) {
	t.Helper()
	db := testutils.SetupTestDB(t, &user.User{})
	repo := user.NewRepository(db)
	svc := NewService(repo, testTokenConfig(), zap.NewNop())
	return svc, repo, db
}

func seedUser(t *testing.T, repo user.Repository, username, password string) *user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := user.NewUser(username, username+"@example.com", "Test User", string(hash), "avatar.png", "")
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestLoginIssuesPairAndStoresRefreshToken(t *testing.T) {
	svc, repo, _ := setupAuth(t)
	seeded := seedUser(t, repo, "jane", "sekret1234")

	pair, profile, err := svc.Login(context.Background(), "jane", "sekret1234")
	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.Equal(t, "jane", profile.Username)

	claims, err := utils.ParseAccessToken(pair.AccessToken, "access-secret")
	require.NoError(t, err)
	assert.Equal(t, "jane", claims.Username)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "Test User", claims.FullName)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, id)

	stored, err := repo.ReadByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.RefreshToken)
	assert.Equal(t, pair.RefreshToken, *stored.RefreshToken)
}

func TestLoginWithEmailIdentifier(t *testing.T) {
	svc, repo, _ := setupAuth(t)
	seedUser(t, repo, "jane", "sekret1234")

	_, profile, err := svc.Login(context.Background(), "jane@example.com", "sekret1234")
	require.NoError(t, err)
	assert.Equal(t, "jane", profile.Username)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, repo, _ := setupAuth(t)
	seedUser(t, repo, "jane", "sekret1234")

	_, _, err := svc.Login(context.Background(), "jane", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsUnknownIdentifier(t *testing.T) {
	svc, _, _ := setupAuth(t)

	// unknown accounts and bad passwords are indistinguishable to the caller
	_, _, err := svc.Login(context.Background(), "nobody", "whatever123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, repo, _ := setupAuth(t)
	seeded := seedUser(t, repo, "jane", "sekret1234")

	first, _, err := svc.Login(context.Background(), "jane", "sekret1234")
	require.NoError(t, err)

	second, err := svc.Refresh(context.Background(), first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	stored, err := repo.ReadByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.RefreshToken)
	assert.Equal(t, second.RefreshToken, *stored.RefreshToken)
}

func TestRefreshRejectsRotatedToken(t *testing.T) {
	svc, repo, _ := setupAuth(t)
	seedUser(t, repo, "jane", "sekret1234")

	first, _, err := svc.Login(context.Background(), "jane", "sekret1234")
	require.NoError(t, err)

	second, err := svc.Refresh(context.Background(), first.RefreshToken)
	require.NoError(t, err)

	// the superseded token is dead even though its signature and expiry
	// are still valid
	_, err = svc.Refresh(context.Background(), first.RefreshToken)
	assert.ErrorIs(t, err, user.ErrStaleRefreshToken)

	// the rotated-in token still works
	_, err = svc.Refresh(context.Background(), second.RefreshToken)
	assert.NoError(t, err)
}

func TestRefreshRejectsForgedToken(t *testing.T) {
	svc, repo, _ := setupAuth(t)
	seeded := seedUser(t, repo, "jane", "sekret1234")

	forged, err := utils.IssueRefreshToken(seeded.ID, "attacker-secret", time.Hour)
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), forged)
	assert.ErrorIs(t, err, utils.ErrTokenSignatureInvalid)
}

func TestRefreshRejectsExpiredToken(t *testing.T) {
	svc, repo, _ := setupAuth(t)
	seeded := seedUser(t, repo, "jane", "sekret1234")

	expired, err := utils.IssueRefreshToken(seeded.ID, "refresh-secret", -time.Minute)
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), expired)
	assert.ErrorIs(t, err, utils.ErrTokenExpired)
}

func TestRefreshRejectsValidTokenNeverStored(t *testing.T) {
	svc, repo, _ := setupAuth(t)
	seeded := seedUser(t, repo, "jane", "sekret1234")

	// well-formed and well-signed, but the account has no live session
	orphan, err := utils.IssueRefreshToken(seeded.ID, "refresh-secret", time.Hour)
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), orphan)
	assert.ErrorIs(t, err, user.ErrStaleRefreshToken)
}

func TestLogoutKillsSession(t *testing.T) {
	svc, repo, _ := setupAuth(t)
	seeded := seedUser(t, repo, "jane", "sekret1234")

	pair, _, err := svc.Login(context.Background(), "jane", "sekret1234")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), seeded.ID))

	stored, err := repo.ReadByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.RefreshToken)

	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, user.ErrStaleRefreshToken)
}

func TestLogoutIsIdempotent(t *testing.T) {
	svc, repo, _ := setupAuth(t)
	seeded := seedUser(t, repo, "jane", "sekret1234")

	require.NoError(t, svc.Logout(context.Background(), seeded.ID))
	require.NoError(t, svc.Logout(context.Background(), seeded.ID))
}

func TestChangePasswordRevokesSession(t *testing.T) {
	svc, repo, _ := setupAuth(t)
	seeded := seedUser(t, repo, "jane", "sekret1234")

	pair, _, err := svc.Login(context.Background(), "jane", "sekret1234")
	require.NoError(t, err)

	require.NoError(t, svc.ChangePassword(context.Background(), seeded.ID, "sekret1234", "newsekret99"))

	stored, err := repo.ReadByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.RefreshToken)

	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, user.ErrStaleRefreshToken)

	_, _, err = svc.Login(context.Background(), "jane", "sekret1234")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "jane", "newsekret99")
	assert.NoError(t, err)
}

func TestChangePasswordRejectsWrongOldPassword(t *testing.T) {
	svc, repo, _ := setupAuth(t)
	seeded := seedUser(t, repo, "jane", "sekret1234")

	pair, _, err := svc.Login(context.Background(), "jane", "sekret1234")
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), seeded.ID, "wrong-old", "newsekret99")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// neither the hash nor the session was touched
	stored, err := repo.ReadByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.RefreshToken)
	assert.Equal(t, pair.RefreshToken, *stored.RefreshToken)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("sekret1234")))
}

func TestChangePasswordEnforcesPolicy(t *testing.T) {
	svc, repo, _ := setupAuth(t)
	seeded := seedUser(t, repo, "jane", "sekret1234")

	err := svc.ChangePassword(context.Background(), seeded.ID, "sekret1234", "short")
	assert.ErrorIs(t, err, user.ErrPasswordTooShort)
}

func TestRotateRefreshTokenIsConditional(t *testing.T) {
	_, repo, _ := setupAuth(t)
	seeded := seedUser(t, repo, "jane", "sekret1234")

	current := "current-token"
	require.NoError(t, repo.SetRefreshToken(context.Background(), seeded.ID, &current))

	// a swap conditioned on a value that is no longer stored loses
	err := repo.RotateRefreshToken(context.Background(), seeded.ID, "stale-token", "next-a")
	assert.ErrorIs(t, err, user.ErrStaleRefreshToken)

	require.NoError(t, repo.RotateRefreshToken(context.Background(), seeded.ID, "current-token", "next-b"))

	// the first caller consumed the value, a second identical swap loses
	err = repo.RotateRefreshToken(context.Background(), seeded.ID, "current-token", "next-c")
	assert.ErrorIs(t, err, user.ErrStaleRefreshToken)

	stored, err := repo.ReadByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.RefreshToken)
	assert.Equal(t, "next-b", *stored.RefreshToken)
}
