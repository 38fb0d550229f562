package instances

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodfeed/tslamood/collector"
	"github.com/moodfeed/tslamood/config"
)

func TestTwitterAgentCollectorBuildsAdvancedSearch(t *testing.T) {
	payload := `{"tweets": [{
		"id": "1690001122334455667",
		"text": "Tesla FSD v13 rollout",
		"url": "https://x.com/a/status/1690001122334455667",
		"createdAt": "2024-05-01T10:00:00Z",
		"replies": 30, "likes": 200, "retweets": 40
	}]}`
	runner := &fakeRunner{result: &collector.RunResult{
		Steps: []collector.RunStep{{StructuredOutput: json.RawMessage(payload)}},
	}}
	c := NewTwitterAgentCollector(runner, config.TwitterConfig{
		Query: "TSLA OR Tesla", Lang: "en",
		MinReplies: 10, MinFaves: 50, MinRetweets: 10, TargetCount: 75,
	})

	window := collector.CollectWindow{
		Since: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Until: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
	}
	batch, err := c.CollectTweets(context.Background(), "", window)
	require.NoError(t, err)

	assert.Equal(t, "twitter", runner.lastTask.Platform)
	assert.Contains(t, runner.lastTask.StartURL, "x.com/search")
	assert.Contains(t, runner.lastTask.StartURL, "min_replies%3A10")
	assert.Contains(t, runner.lastTask.StartURL, "since%3A2024-05-01")

	require.Len(t, batch.Tweets, 1)
	assert.Equal(t, "1690001122334455667", batch.Tweets[0].ID)
}
