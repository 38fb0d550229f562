package collector

import (
	"context"
	"time"

	"github.com/moodfeed/tslamood/model"
)

const (
	DuckDuckGoSourceId     = "duckduckgo_news"
	RSSSourceId            = "rss_news"
	TwitterAgentSourceId   = "twitter_browser"
	TwitterWebhookSourceId = "twitter_webhook"
	RedditSourceId         = "reddit"
)

// CollectWindow bounds a collection run in time. Zero values mean unbounded
// on that side.
type CollectWindow struct {
	Since time.Time
	Until time.Time
}

// Contains reports whether ts falls inside the window.
func (w CollectWindow) Contains(ts time.Time) bool {
	if !w.Since.IsZero() && ts.Before(w.Since) {
		return false
	}
	if !w.Until.IsZero() && ts.After(w.Until) {
		return false
	}
	return true
}

// Batch results carry accepted records next to per-record rejections. A batch
// with rejections is still a successful batch; only a TransportError fails a
// whole run.

type NewsBatch struct {
	Documents  []*model.Document
	Rejections []Rejection
}

type TweetBatch struct {
	Tweets     []*model.Tweet
	Rejections []Rejection
}

type RedditBatch struct {
	Posts      []*model.RedditPost
	Rejections []Rejection
}

type NewsCollector interface {
	SourceId() string
	CollectNews(ctx context.Context, query string, window CollectWindow, limit int) (*NewsBatch, error)
}

type TweetCollector interface {
	SourceId() string
	CollectTweets(ctx context.Context, query string, window CollectWindow) (*TweetBatch, error)
}

type RedditCollector interface {
	SourceId() string
	CollectPosts(ctx context.Context, subreddit, query string, window CollectWindow) (*RedditBatch, error)
}
