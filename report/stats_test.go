package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoredItem(title string, sentiment float64, impact int, stance string) Item {
	return Item{
		Kind: KindNews, Title: title, URL: "https://example.com/" + title,
		Sentiment: &sentiment, Impact: &impact, Stance: stance,
		Category:    "Financial & Operational",
		PublishedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestComputeStats(t *testing.T) {
	items := []Item{
		scoredItem("beat", 0.8, 5, "bullish"),
		scoredItem("miss", -0.4, 1, "bearish"),
		{Kind: KindNews, Title: "unscored"},
	}

	stats := ComputeStats(items)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Scored)
	assert.InDelta(t, 0.2, stats.AvgSentiment, 1e-9)
	// (0.8*5 + -0.4*1) / 6 = 0.6
	assert.InDelta(t, 0.6, stats.WeightedSentiment, 1e-9)
	assert.Equal(t, 1, stats.StanceCounts["bullish"])
	assert.Equal(t, 1, stats.StanceCounts["bearish"])
	assert.Equal(t, 2, stats.CategoryCounts["Financial & Operational"])
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil)

	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, "neutral", stats.Mood)
}

func TestMoodLabel(t *testing.T) {
	assert.Equal(t, "strongly bullish", MoodLabel(0.7))
	assert.Equal(t, "bullish", MoodLabel(0.2))
	assert.Equal(t, "neutral", MoodLabel(0.0))
	assert.Equal(t, "bearish", MoodLabel(-0.3))
	assert.Equal(t, "strongly bearish", MoodLabel(-0.8))
}

func TestTopMovers(t *testing.T) {
	items := []Item{
		scoredItem("big win", 0.9, 4, "bullish"),
		scoredItem("small win", 0.2, 2, "bullish"),
		scoredItem("flat", 0.0, 1, "neutral"),
		scoredItem("loss", -0.7, 3, "bearish"),
		{Kind: KindNews, Title: "unscored"},
	}

	bullish, bearish := TopMovers(items, 2)

	require.Len(t, bullish, 2)
	assert.Equal(t, "big win", bullish[0].Title)
	require.Len(t, bearish, 1)
	assert.Equal(t, "loss", bearish[0].Title)
}

func TestBuildReportRenders(t *testing.T) {
	items := []Item{
		scoredItem("beat", 0.8, 5, "bullish"),
		scoredItem("miss", -0.4, 1, "bearish"),
	}
	r := Build(items, 7)

	assert.NotEmpty(t, r.ID)
	md := r.Markdown()
	assert.Contains(t, md, "TSLA Sentiment Digest")
	assert.Contains(t, md, "Top bullish")

	html, err := r.HTML()
	require.NoError(t, err)
	assert.Contains(t, html, "Mood:")
	assert.Contains(t, html, "beat")

	raw, err := r.JSON()
	require.NoError(t, err)
	assert.Contains(t, string(raw), "weighted_sentiment")
}
