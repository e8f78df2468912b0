package authentication

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/streamtube/streamtube/internal/user"
	"github.com/streamtube/streamtube/internal/utils"
)

var (
	// ErrInvalidCredentials covers both an unknown identifier and a
	// password mismatch; callers are shown one generic class.
	ErrInvalidCredentials = errors.New("invalid username/email or password")
	ErrLoginFailed        = errors.New("login failed")
)

// TokenPair is one freshly minted access/refresh pair.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Service orchestrates login, logout, password change and refresh-token
// rotation over the user repository and the token config.
type Service interface {
	Login(ctx context.Context, identifier, password string) (*TokenPair, *user.Profile, error)
	Refresh(ctx context.Context, presented string) (*TokenPair, error)
	Logout(ctx context.Context, userID uint) error
	ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error
}

type service struct {
	users  user.Repository
	token  utils.TokenConfig
	logger *zap.Logger
}

func NewService(users user.Repository, token utils.TokenConfig, logger *zap.Logger) Service {
	return &service{users: users, token: token, logger: logger}
}

func (s *service) Login(ctx context.Context, identifier, password string) (*TokenPair, *user.Profile, error) {
	u, err := s.users.ReadByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, ErrLoginFailed
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issuePair(u)
	if err != nil {
		s.logger.Error("token issuance failed", zap.Uint("user_id", u.ID), zap.Error(err))
		return nil, nil, ErrLoginFailed
	}

	// Logging in supersedes any previous session: the stored refresh
	// token is overwritten unconditionally.
	if err := s.users.SetRefreshToken(ctx, u.ID, &pair.RefreshToken); err != nil {
		return nil, nil, err
	}

	return pair, u.Profile(), nil
}

func (s *service) Refresh(ctx context.Context, presented string) (*TokenPair, error) {
	claims, err := utils.ParseRefreshToken(presented, s.token.RefreshTokenSecret)
	if err != nil {
		return nil, err
	}

	id, err := claims.UserID()
	if err != nil {
		return nil, err
	}

	u, err := s.users.ReadByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// A signature- and expiry-valid token is still rejected unless it
	// is byte-equal to the stored value. Once rotated or cleared, the
	// old value stays dead forever.
	if u.RefreshToken == nil || *u.RefreshToken != presented {
		return nil, user.ErrStaleRefreshToken
	}

	pair, err := s.issuePair(u)
	if err != nil {
		s.logger.Error("token issuance failed", zap.Uint("user_id", u.ID), zap.Error(err))
		return nil, ErrLoginFailed
	}

	// Conditional swap: a concurrent refresh that already rotated the
	// stored value makes this lose with ErrStaleRefreshToken.
	if err := s.users.RotateRefreshToken(ctx, u.ID, presented, pair.RefreshToken); err != nil {
		return nil, err
	}

	return pair, nil
}

func (s *service) Logout(ctx context.Context, userID uint) error {
	return s.users.SetRefreshToken(ctx, userID, nil)
}

func (s *service) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	u, err := s.users.ReadByID(ctx, userID)
	if err != nil {
		return err
	}

	// Deliberate re-authentication: a hijacked access token alone is
	// not enough to take over the account.
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(oldPassword)) != nil {
		return ErrInvalidCredentials
	}

	if err := user.CheckPassword(newPassword); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Uint("user_id", userID), zap.Error(err))
		return user.ErrHashingPasswordFailed
	}

	if err := s.users.UpdatePassword(ctx, userID, string(hashed)); err != nil {
		return err
	}

	// Changing the password revokes the live session as well, so a
	// stolen refresh token does not outlive the old password.
	return s.users.SetRefreshToken(ctx, userID, nil)
}

func (s *service) issuePair(u *user.User) (*TokenPair, error) {
	access, err := utils.IssueAccessToken(u.ID, u.Email, u.Username, u.FullName,
		s.token.AccessTokenSecret, s.token.AccessTokenExpiry)
	if err != nil {
		return nil, err
	}
	refresh, err := utils.IssueRefreshToken(u.ID, s.token.RefreshTokenSecret, s.token.RefreshTokenExpiry)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
