package like

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/streamtube/streamtube/internal/comment"
	"github.com/streamtube/streamtube/internal/tweet"
	"github.com/streamtube/streamtube/internal/video"
)

var ErrTargetNotFound = errors.New("liked target not found")

// ToggleResult reports whether the toggle ended in a like or an unlike.
type ToggleResult struct {
	Liked bool `json:"liked"`
}

// VideoChecker, CommentChecker and TweetChecker verify that a like
// target exists before a row is written for it.
type VideoChecker interface {
	Exists(ctx context.Context, id uint) error
}

type CommentChecker interface {
	ReadByID(ctx context.Context, id uint) (*comment.Comment, error)
}

type TweetChecker interface {
	ReadByID(ctx context.Context, id uint) (*tweet.Tweet, error)
}

type Service interface {
	ToggleVideoLike(ctx context.Context, likedByID, videoID uint) (*ToggleResult, error)
	ToggleCommentLike(ctx context.Context, likedByID, commentID uint) (*ToggleResult, error)
	ToggleTweetLike(ctx context.Context, likedByID, tweetID uint) (*ToggleResult, error)
	GetLikedVideos(ctx context.Context, likedByID uint) ([]LikedVideo, error)
}

type service struct {
	repo     Repository
	videos   VideoChecker
	comments CommentChecker
	tweets   TweetChecker
	logger   *zap.Logger
}

func NewService(repo Repository, videos VideoChecker, comments CommentChecker, tweets TweetChecker, logger *zap.Logger) Service {
	return &service{repo: repo, videos: videos, comments: comments, tweets: tweets, logger: logger}
}

func (s *service) ToggleVideoLike(ctx context.Context, likedByID, videoID uint) (*ToggleResult, error) {
	if err := s.videos.Exists(ctx, videoID); err != nil {
		if errors.Is(err, video.ErrVideoNotFound) {
			return nil, ErrTargetNotFound
		}
		return nil, err
	}
	return s.toggle(ctx, likedByID, TargetVideo, videoID, &Like{LikedByID: likedByID, VideoID: &videoID})
}

func (s *service) ToggleCommentLike(ctx context.Context, likedByID, commentID uint) (*ToggleResult, error) {
	if _, err := s.comments.ReadByID(ctx, commentID); err != nil {
		if errors.Is(err, comment.ErrCommentNotFound) {
			return nil, ErrTargetNotFound
		}
		return nil, err
	}
	return s.toggle(ctx, likedByID, TargetComment, commentID, &Like{LikedByID: likedByID, CommentID: &commentID})
}

func (s *service) ToggleTweetLike(ctx context.Context, likedByID, tweetID uint) (*ToggleResult, error) {
	if _, err := s.tweets.ReadByID(ctx, tweetID); err != nil {
		if errors.Is(err, tweet.ErrTweetNotFound) {
			return nil, ErrTargetNotFound
		}
		return nil, err
	}
	return s.toggle(ctx, likedByID, TargetTweet, tweetID, &Like{LikedByID: likedByID, TweetID: &tweetID})
}

// toggle removes an existing like for the target, or creates one when
// none is present.
func (s *service) toggle(ctx context.Context, likedByID uint, kind TargetKind, targetID uint, fresh *Like) (*ToggleResult, error) {
	existing, err := s.repo.FindByTarget(ctx, likedByID, kind, targetID)
	switch {
	case err == nil:
		if err := s.repo.Delete(ctx, existing.ID); err != nil && !errors.Is(err, ErrLikeNotFound) {
			return nil, err
		}
		return &ToggleResult{Liked: false}, nil
	case errors.Is(err, ErrLikeNotFound):
		if err := s.repo.Create(ctx, fresh); err != nil {
			return nil, err
		}
		return &ToggleResult{Liked: true}, nil
	default:
		return nil, err
	}
}

func (s *service) GetLikedVideos(ctx context.Context, likedByID uint) ([]LikedVideo, error) {
	return s.repo.ListLikedVideos(ctx, likedByID)
}
