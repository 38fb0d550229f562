package report

import (
	"sort"
	"time"

	"github.com/moodfeed/tslamood/storage"
)

// Item is one scored record flattened for reporting, regardless of which
// platform it came from.
type Item struct {
	Kind        string     `json:"kind"`
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	Source      string     `json:"source"`
	Category    string     `json:"category,omitempty"`
	Sentiment   *float64   `json:"sentiment,omitempty"`
	Impact      *int       `json:"impact,omitempty"`
	Stance      string     `json:"stance,omitempty"`
	Summary     string     `json:"summary,omitempty"`
	PublishedAt time.Time  `json:"published_at"`
}

const (
	KindNews   = "news"
	KindTweet  = "tweet"
	KindReddit = "reddit"
)

// Stats aggregates one reporting window.
type Stats struct {
	Total             int            `json:"total"`
	Scored            int            `json:"scored"`
	AvgSentiment      float64        `json:"avg_sentiment"`
	WeightedSentiment float64        `json:"weighted_sentiment"`
	Mood              string         `json:"mood"`
	StanceCounts      map[string]int `json:"stance_counts"`
	CategoryCounts    map[string]int `json:"category_counts"`
}

// ComputeStats aggregates sentiment across items. WeightedSentiment weighs
// each item by its impact so one high-impact story outweighs ten shrugs.
func ComputeStats(items []Item) Stats {
	stats := Stats{
		Total:          len(items),
		StanceCounts:   map[string]int{},
		CategoryCounts: map[string]int{},
	}

	var sum, weightedSum, weightTotal float64
	for _, item := range items {
		if item.Category != "" {
			stats.CategoryCounts[item.Category]++
		}
		if item.Sentiment == nil {
			continue
		}
		stats.Scored++
		sum += *item.Sentiment

		weight := 1.0
		if item.Impact != nil {
			weight = float64(*item.Impact)
		}
		weightedSum += *item.Sentiment * weight
		weightTotal += weight

		if item.Stance != "" {
			stats.StanceCounts[item.Stance]++
		}
	}

	if stats.Scored > 0 {
		stats.AvgSentiment = sum / float64(stats.Scored)
	}
	if weightTotal > 0 {
		stats.WeightedSentiment = weightedSum / weightTotal
	}
	stats.Mood = MoodLabel(stats.WeightedSentiment)
	return stats
}

// MoodLabel buckets a sentiment average into a headline word.
func MoodLabel(sentiment float64) string {
	switch {
	case sentiment >= 0.5:
		return "strongly bullish"
	case sentiment >= 0.15:
		return "bullish"
	case sentiment > -0.15:
		return "neutral"
	case sentiment > -0.5:
		return "bearish"
	default:
		return "strongly bearish"
	}
}

// TopMovers returns the n most positive and n most negative scored items.
func TopMovers(items []Item, n int) (bullish, bearish []Item) {
	var scored []Item
	for _, item := range items {
		if item.Sentiment != nil {
			scored = append(scored, item)
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return *scored[i].Sentiment > *scored[j].Sentiment
	})

	for i := 0; i < len(scored) && i < n; i++ {
		if *scored[i].Sentiment > 0 {
			bullish = append(bullish, scored[i])
		}
	}
	for i := len(scored) - 1; i >= 0 && len(bearish) < n; i-- {
		if *scored[i].Sentiment < 0 {
			bearish = append(bearish, scored[i])
		}
	}
	return bullish, bearish
}

// ItemsFromRows flattens the three row streams into report items.
func ItemsFromRows(news []*storage.NewsItemRow, tweets []*storage.TweetRow, posts []*storage.RedditPostRow) []Item {
	items := make([]Item, 0, len(news)+len(tweets)+len(posts))
	for _, row := range news {
		items = append(items, Item{
			Kind: KindNews, Title: row.Title, URL: row.URL, Source: row.Source,
			Category: row.Category, Sentiment: row.Sentiment, Impact: row.Impact,
			Stance: row.Stance, Summary: row.ScoreSummary, PublishedAt: row.PublishedAt,
		})
	}
	for _, row := range tweets {
		items = append(items, Item{
			Kind: KindTweet, Title: row.Text, URL: row.URL, Source: "@" + row.Author,
			Category: row.Category, Sentiment: row.Sentiment, Impact: row.Impact,
			Stance: row.Stance, Summary: row.ScoreSummary, PublishedAt: row.PostedAt,
		})
	}
	for _, row := range posts {
		items = append(items, Item{
			Kind: KindReddit, Title: row.Title, URL: row.URL, Source: "r/" + row.Subreddit,
			Category: row.Category, Sentiment: row.Sentiment, Impact: row.Impact,
			Stance: row.Stance, Summary: row.ScoreSummary, PublishedAt: row.PostedAt,
		})
	}
	return items
}
