package instances

import (
	"context"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/moodfeed/tslamood/collector"
	"github.com/moodfeed/tslamood/config"
	"github.com/moodfeed/tslamood/model"
	Logger "github.com/moodfeed/tslamood/utils/log"
)

// RSSNewsCollector polls a curated list of feeds and keeps the items whose
// title or description mentions the query terms. Feeds complement search:
// they surface coverage search verticals rank too low to return.
type RSSNewsCollector struct {
	parser *gofeed.Parser
	feeds  []config.FeedSource
}

func NewRSSNewsCollector(feeds []config.FeedSource) *RSSNewsCollector {
	return &RSSNewsCollector{parser: gofeed.NewParser(), feeds: feeds}
}

func (c *RSSNewsCollector) SourceId() string {
	return collector.RSSSourceId
}

func (c *RSSNewsCollector) CollectNews(ctx context.Context, query string, window collector.CollectWindow, limit int) (*collector.NewsBatch, error) {
	terms := queryTerms(query)
	batch := &collector.NewsBatch{}
	dedup := collector.NewDeduplicator()
	collectedAt := time.Now().UTC()

	for _, feedSource := range c.feeds {
		feed, err := c.parser.ParseURLWithContext(feedSource.URL, ctx)
		if err != nil {
			// One unreachable feed must not fail the whole poll.
			Logger.Log.WithField("feed", feedSource.Name).Warnf("failed to fetch feed: %v", err)
			continue
		}

		for _, item := range feed.Items {
			if item.Link == "" || item.Title == "" {
				continue
			}
			if !matchesTerms(item.Title+" "+item.Description, terms) {
				continue
			}
			publishedAt := collectedAt
			if item.PublishedParsed != nil {
				publishedAt = item.PublishedParsed.UTC()
			}
			if !window.Contains(publishedAt) {
				continue
			}
			if !dedup.Observe(collector.URLKey(item.Link)) {
				batch.Rejections = append(batch.Rejections, collector.Rejection{ID: item.Link, Reason: "duplicate url"})
				continue
			}

			batch.Documents = append(batch.Documents, &model.Document{
				Title:       item.Title,
				URL:         item.Link,
				Source:      feedSource.Name,
				Summary:     item.Description,
				PublishedAt: publishedAt,
				CollectedAt: collectedAt,
			})
			if limit > 0 && len(batch.Documents) >= limit {
				return batch, nil
			}
		}
	}
	return batch, nil
}

// queryTerms splits "TSLA OR Tesla" style queries into bare lower-case terms.
func queryTerms(query string) []string {
	var terms []string
	for _, tok := range strings.Fields(strings.ToLower(query)) {
		if tok == "or" || tok == "and" {
			continue
		}
		terms = append(terms, strings.Trim(tok, "()\""))
	}
	return terms
}

func matchesTerms(text string, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	lowered := strings.ToLower(text)
	for _, term := range terms {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}
