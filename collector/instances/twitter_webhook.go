package instances

import (
	"context"
	"time"

	"github.com/moodfeed/tslamood/collector"
	"github.com/moodfeed/tslamood/collector/clients"
	"github.com/moodfeed/tslamood/collector/validation"
	"github.com/moodfeed/tslamood/config"
	Logger "github.com/moodfeed/tslamood/utils/log"
)

// TwitterWebhookCollector pulls tweets through the n8n scraper workflow. The
// workflow applies its own engagement filters server side; we re-apply them
// client side anyway because older workflow versions ignore the thresholds.
type TwitterWebhookCollector struct {
	client *clients.WebhookClient
	cfg    config.TwitterConfig
}

func NewTwitterWebhookCollector(client *clients.WebhookClient, cfg config.TwitterConfig) *TwitterWebhookCollector {
	return &TwitterWebhookCollector{client: client, cfg: cfg}
}

func (c *TwitterWebhookCollector) SourceId() string {
	return collector.TwitterWebhookSourceId
}

func (c *TwitterWebhookCollector) CollectTweets(ctx context.Context, query string, window collector.CollectWindow) (*collector.TweetBatch, error) {
	if query == "" {
		query = c.cfg.Query
	}

	scrape := clients.TwitterScrapeRequest{
		SearchTerms: []string{query},
		Lang:        c.cfg.Lang,
		QueryType:   "Top",
		MinReplies:  c.cfg.MinReplies,
		MinFaves:    c.cfg.MinFaves,
		MinRetweets: c.cfg.MinRetweets,
		MaxItems:    c.cfg.TargetCount,
	}
	if !window.Since.IsZero() {
		scrape.Since = window.Since.Format("2006-01-02")
	}
	if !window.Until.IsZero() {
		scrape.Until = window.Until.Format("2006-01-02")
	}

	records, err := c.client.ScrapeTweets(ctx, scrape)
	if err != nil {
		return nil, err
	}

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

// normalizeTweets converts raw records into validated, deduplicated tweets.
// Records failing parse or validation become rejections; a rejected record
// never claims a dedup slot.
func normalizeTweets(records []map[string]interface{}, window collector.CollectWindow) *collector.TweetBatch {
	batch := &collector.TweetBatch{}
	dedup := collector.NewDeduplicator()
	collectedAt := time.Now().UTC()

	for _, raw := range records {
		tweet, err := parseRawTweet(raw, collectedAt)
		if err != nil {
			batch.Rejections = append(batch.Rejections, collector.Rejection{
				ID:     collector.ExtractStringOr(raw, "", tweetIdKeys...),
				Reason: err.Error(),
			})
			continue
		}
		if err := validation.ValidateTweet(tweet); err != nil {
			batch.Rejections = append(batch.Rejections, collector.Rejection{ID: tweet.ID, Reason: err.Error()})
			continue
		}
		if !window.Contains(tweet.PostedAt) {
			batch.Rejections = append(batch.Rejections, collector.Rejection{ID: tweet.ID, Reason: "posted outside collection window"})
			continue
		}
		if !dedup.Observe(tweet.ID) {
			batch.Rejections = append(batch.Rejections, collector.Rejection{ID: tweet.ID, Reason: "duplicate tweet id"})
			continue
		}
		batch.Tweets = append(batch.Tweets, tweet)
	}
	return batch
}
