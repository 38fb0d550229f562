package instances

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodfeed/tslamood/collector"
	"github.com/moodfeed/tslamood/collector/clients"
	"github.com/moodfeed/tslamood/config"
)

const webhookBatchJSON = `[
	{
		"id": "1690001122334455667",
		"text": "Tesla beats delivery estimates",
		"url": "https://x.com/a/status/1690001122334455667",
		"createdAt": "2024-05-01T10:00:00Z",
		"replies": 30, "likes": 200, "retweets": 40
	},
	{
		"id": "1690001122334455667",
		"text": "Tesla beats delivery estimates",
		"url": "https://x.com/a/status/1690001122334455667",
		"createdAt": "2024-05-01T10:00:00Z",
		"replies": 30, "likes": 200, "retweets": 40
	},
	{
		"id": "1690001122334455668",
		"text": "low engagement take on TSLA",
		"url": "https://x.com/b/status/1690001122334455668",
		"createdAt": "2024-05-01T11:00:00Z",
		"replies": 1, "likes": 2, "retweets": 0
	},
	{
		"id": "xyz",
		"text": "hallucinated entry",
		"url": "https://x.com/c/status/1690001122334455669",
		"createdAt": "2024-05-01T11:30:00Z",
		"replies": 30, "likes": 200, "retweets": 40
	},
	{
		"id": "1690001122334455670",
		"text": "undatable tweet",
		"url": "https://x.com/d/status/1690001122334455670",
		"createdAt": "not a date",
		"replies": 30, "likes": 200, "retweets": 40
	}
]`

func webhookCollector(t *testing.T, body string) *TwitterWebhookCollector {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return NewTwitterWebhookCollector(
		clients.NewWebhookClient(server.URL, 5*time.Second),
		config.TwitterConfig{
			Query: "TSLA", Lang: "en",
			MinReplies: 10, MinFaves: 50, MinRetweets: 10,
			TargetCount: 75,
		},
	)
}

func TestTwitterWebhookCollectorFiltersValidatesDedupes(t *testing.T) {
	c := webhookCollector(t, webhookBatchJSON)

	window := collector.CollectWindow{
		Since: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Until: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
	}
	batch, err := c.CollectTweets(context.Background(), "", window)
	require.NoError(t, err)

	// One survivor: the duplicate is dropped, the low engagement tweet is
	// filtered before normalization, the placeholder id and the undatable
	// tweet are rejected.
	require.Len(t, batch.Tweets, 1)
	assert.Equal(t, "1690001122334455667", batch.Tweets[0].ID)

	reasons := map[string]bool{}
	for _, r := range batch.Rejections {
		reasons[r.ID] = true
	}
	assert.True(t, reasons["1690001122334455667"], "duplicate should be rejected")
	assert.True(t, reasons["xyz"], "placeholder id should be rejected")
	assert.True(t, reasons["1690001122334455670"], "undatable tweet should be rejected")
}

func TestTwitterWebhookCollectorEmptyUpstream(t *testing.T) {
	c := webhookCollector(t, `[]`)

	batch, err := c.CollectTweets(context.Background(), "", collector.CollectWindow{})
	require.NoError(t, err)
	assert.Empty(t, batch.Tweets)
	assert.Empty(t, batch.Rejections)
}

func TestTwitterWebhookCollectorWindowRejection(t *testing.T) {
	c := webhookCollector(t, `[{
		"id": "1690001122334455667",
		"text": "old tweet",
		"url": "https://x.com/a/status/1690001122334455667",
		"createdAt": "2023-01-01T10:00:00Z",
		"replies": 30, "likes": 200, "retweets": 40
	}]`)

	window := collector.CollectWindow{Since: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}
	batch, err := c.CollectTweets(context.Background(), "", window)
	require.NoError(t, err)
	assert.Empty(t, batch.Tweets)
	require.Len(t, batch.Rejections, 1)
	assert.Contains(t, batch.Rejections[0].Reason, "window")
}
