package dashboard

// ChannelStats aggregates a channel's totals for the owner dashboard.
type ChannelStats struct {
	TotalViews       int64 `json:"total_views"`
	TotalVideos      int64 `json:"total_videos"`
	TotalSubscribers int64 `json:"total_subscribers"`
	TotalTweets      int64 `json:"total_tweets"`
	TotalComments    int64 `json:"total_comments"`
	VideoLikes       int64 `json:"video_likes"`
	CommentLikes     int64 `json:"comment_likes"`
	TweetLikes       int64 `json:"tweet_likes"`
}
