package instances

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/moodfeed/tslamood/collector"
	"github.com/moodfeed/tslamood/collector/validation"
	"github.com/moodfeed/tslamood/config"
	"github.com/moodfeed/tslamood/model"
	Logger "github.com/moodfeed/tslamood/utils/log"
)

var (
	postIdKeys    = []string{"id", "post_id", "postId", "name"}
	postTitleKeys = []string{"title", "headline"}
	postBodyKeys  = []string{"body", "selftext", "text", "content"}
	postURLKeys   = []string{"url", "permalink", "link", "post_url"}
	postTimeKeys  = []string{"posted_at", "created_at", "createdAt", "created_utc", "timestamp", "date", "time"}
	upvoteKeys      = []string{"upvotes", "score", "ups", "points"}
	commentKeys     = []string{"comments", "num_comments", "commentCount", "comment_count"}
	upvoteRatioKeys = []string{"upvote_ratio", "upvoteRatio", "ratio"}
)

// RedditAgentCollector reads a subreddit search results page through the
// browser agent. old.reddit.com is used because its server rendered markup is
// far easier for the model to read than the redesign.
type RedditAgentCollector struct {
	runner collector.AgentRunner
	cfg    config.RedditConfig
}

func NewRedditAgentCollector(runner collector.AgentRunner, cfg config.RedditConfig) *RedditAgentCollector {
	return &RedditAgentCollector{runner: runner, cfg: cfg}
}

func (c *RedditAgentCollector) SourceId() string {
	return collector.RedditSourceId
}

func (c *RedditAgentCollector) CollectPosts(ctx context.Context, subreddit, query string, window collector.CollectWindow) (*collector.RedditBatch, error) {
	if subreddit == "" {
		subreddit = c.cfg.Subreddit
	}
	if query == "" {
		query = c.cfg.Query
	}

	searchURL := fmt.Sprintf("https://old.reddit.com/r/%s/search?q=%s&restrict_sr=on&sort=%s&t=week",
		subreddit, url.QueryEscape(query), c.cfg.SortBy)

	result, err := c.runner.Run(ctx, collector.AgentTask{
		Platform: "reddit",
		StartURL: searchURL,
		Objective: "Extract every post on this subreddit search page as a JSON array under " +
			"key \"posts\". For each post include: id, title, body, url, author, subreddit, " +
			"upvotes, comments, upvote_ratio, posted_at. Use the real comments permalink as " +
			"url; never invent placeholder values.",
	})
	if err != nil {
		return nil, err
	}

	records := collector.LocateRecords(*result, "posts")
	batch := c.normalizePosts(records, subreddit, window)
	Logger.Log.WithFields(map[string]interface{}{
		"source":   c.SourceId(),
		"accepted": len(batch.Posts),
		"rejected": len(batch.Rejections),
	}).Info("reddit collection finished")
	return batch, nil
}

func (c *RedditAgentCollector) normalizePosts(records []map[string]interface{}, subreddit string, window collector.CollectWindow) *collector.RedditBatch {
	batch := &collector.RedditBatch{}
	dedup := collector.NewDeduplicator()
	collectedAt := time.Now().UTC()

	for _, raw := range records {
		post, err := parseRawPost(raw, subreddit, collectedAt)
		if err != nil {
			batch.Rejections = append(batch.Rejections, collector.Rejection{
				ID:     collector.ExtractStringOr(raw, "", postIdKeys...),
				Reason: err.Error(),
			})
			continue
		}
		if err := validation.ValidateRedditPost(post, subreddit); err != nil {
			batch.Rejections = append(batch.Rejections, collector.Rejection{ID: post.ID, Reason: err.Error()})
			continue
		}
		if belowEngagementFloor(post, c.cfg.MinUpvotes, c.cfg.MinComments) {
			batch.Rejections = append(batch.Rejections, collector.Rejection{ID: post.ID, Reason: "engagement below configured minimums"})
			continue
		}
		if !window.Contains(post.PostedAt) {
			batch.Rejections = append(batch.Rejections, collector.Rejection{ID: post.ID, Reason: "posted outside collection window"})
			continue
		}
		if !dedup.Observe(post.ID) {
			batch.Rejections = append(batch.Rejections, collector.Rejection{ID: post.ID, Reason: "duplicate post id"})
			continue
		}
		batch.Posts = append(batch.Posts, post)

		if c.cfg.TargetCount > 0 && len(batch.Posts) >= c.cfg.TargetCount {
			break
		}
	}
	return batch
}

// parseRawPost normalizes one raw submission. Unlike tweets, a post with a
// missing or unreadable timestamp is kept and stamped with the collection
// time: old.reddit.com renders relative ages the model often cannot read, and
// a slightly wrong age hurts less than losing the post.
func parseRawPost(raw map[string]interface{}, subreddit string, collectedAt time.Time) (*model.RedditPost, error) {
	id, err := collector.ExtractString(raw, "id", postIdKeys...)
	if err != nil {
		return nil, err
	}
	title, err := collector.ExtractString(raw, "title", postTitleKeys...)
	if err != nil {
		return nil, err
	}
	postURL, err := collector.ExtractString(raw, "url", postURLKeys...)
	if err != nil {
		return nil, err
	}

	postedAt := collectedAt
	if rawTime, err := collector.ExtractString(raw, "posted_at", postTimeKeys...); err == nil {
		if ts, err := collector.ParseTimestamp(rawTime); err == nil {
			postedAt = ts
		}
	}

	post := &model.RedditPost{
		ID:          id,
		Title:       title,
		Body:        collector.ExtractStringOr(raw, "", postBodyKeys...),
		URL:         postURL,
		Subreddit:   collector.ExtractStringOr(raw, subreddit, "subreddit", "sub"),
		Author:      collector.ExtractStringOr(raw, "", "author", "username", "user"),
		PostedAt:    postedAt,
		CollectedAt: collectedAt,
		Raw:         raw,
	}
	setOptionalCount(raw, &post.Upvotes, upvoteKeys)
	setOptionalCount(raw, &post.Comments, commentKeys)
	setOptionalRatio(raw, &post.UpvoteRatio, upvoteRatioKeys)
	return post, nil
}

// belowEngagementFloor applies the configured upvote/comment minimums on the
// client side; an unreported counter counts as zero, same as the webhook
// adapter's engagement re-check.
func belowEngagementFloor(post *model.RedditPost, minUpvotes, minComments int) bool {
	upvotes, comments := 0, 0
	if post.Upvotes != nil {
		upvotes = *post.Upvotes
	}
	if post.Comments != nil {
		comments = *post.Comments
	}
	return upvotes < minUpvotes || comments < minComments
}

func setOptionalRatio(raw map[string]interface{}, dst **float64, keys []string) {
	for _, key := range keys {
		switch v := raw[key].(type) {
		case float64:
			f := v
			*dst = &f
			return
		case string:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				*dst = &f
				return
			}
		}
	}
}
