package instances

import (
	"context"
	"fmt"
	"net/url"

	"github.com/moodfeed/tslamood/collector"
	"github.com/moodfeed/tslamood/config"
	Logger "github.com/moodfeed/tslamood/utils/log"
)

// TwitterAgentCollector drives a logged-in browser session through Twitter
// search and has the model read tweets off the rendered page. Slower and
// flakier than the webhook path but needs no n8n deployment.
type TwitterAgentCollector struct {
	runner collector.AgentRunner
	cfg    config.TwitterConfig
}

func NewTwitterAgentCollector(runner collector.AgentRunner, cfg config.TwitterConfig) *TwitterAgentCollector {
	return &TwitterAgentCollector{runner: runner, cfg: cfg}
}

func (c *TwitterAgentCollector) SourceId() string {
	return collector.TwitterAgentSourceId
}

func (c *TwitterAgentCollector) CollectTweets(ctx context.Context, query string, window collector.CollectWindow) (*collector.TweetBatch, error) {
	if query == "" {
		query = c.cfg.Query
	}
	searchQuery := c.buildSearchQuery(query, window)

	result, err := c.runner.Run(ctx, collector.AgentTask{
		Platform: "twitter",
		StartURL: "https://x.com/search?q=" + url.QueryEscape(searchQuery) + "&f=top",
		Objective: "Extract every tweet visible on this search results page as a JSON array " +
			"under key \"tweets\". For each tweet include: id, text, url, author, createdAt, " +
			"replies, likes, retweets, views. Use the real status URL and numeric id; " +
			"never invent placeholder values.",
	})
	if err != nil {
		return nil, err
	}

	records := collector.LocateRecords(*result, "tweets")
	records = collector.FilterByEngagement(records, collector.EngagementThresholds{
		MinReplies:  c.cfg.MinReplies,
		MinLikes:    c.cfg.MinFaves,
		MinRetweets: c.cfg.MinRetweets,
	}, c.cfg.TargetCount)

	batch := normalizeTweets(records, window)
	Logger.Log.WithFields(map[string]interface{}{
		"source":   c.SourceId(),
		"accepted": len(batch.Tweets),
		"rejected": len(batch.Rejections),
	}).Info("tweet collection finished")
	return batch, nil
}

// buildSearchQuery folds the engagement thresholds and date window into
// Twitter's advanced search operators so the page itself pre-filters.
func (c *TwitterAgentCollector) buildSearchQuery(query string, window collector.CollectWindow) string {
	q := fmt.Sprintf("(%s) min_replies:%d min_faves:%d min_retweets:%d lang:%s",
		query, c.cfg.MinReplies, c.cfg.MinFaves, c.cfg.MinRetweets, c.cfg.Lang)
	if !window.Since.IsZero() {
		q += " since:" + window.Since.Format("2006-01-02")
	}
	if !window.Until.IsZero() {
		q += " until:" + window.Until.Format("2006-01-02")
	}
	return q
}
