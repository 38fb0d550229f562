package instances

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const webhookTweetJSON = `{
	"tweetId": "1690001122334455667",
	"full_text": "Tesla delivery numbers are out and they beat the street.",
	"twitterUrl": "https://twitter.com/elonwatcher/status/1690001122334455667",
	"author": {"userName": "elonwatcher", "followers": 12000},
	"createdAt": "Wed Oct 10 20:19:24 +0000 2018",
	"replies": 25,
	"likes": 310,
	"retweets": 44
}`

func rawFromJSON(t *testing.T, payload string) map[string]interface{} {
	t.Helper()
	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))
	return raw
}

func TestParseRawTweetAliases(t *testing.T) {
	collectedAt := time.Now().UTC()
	tweet, err := parseRawTweet(rawFromJSON(t, webhookTweetJSON), collectedAt)
	require.NoError(t, err)

	assert.Equal(t, "1690001122334455667", tweet.ID)
	assert.Equal(t, "elonwatcher", tweet.Author)
	assert.Equal(t, time.Date(2018, 10, 10, 20, 19, 24, 0, time.UTC), tweet.PostedAt)
	require.NotNil(t, tweet.Replies)
	assert.Equal(t, 25, *tweet.Replies)
	require.NotNil(t, tweet.Likes)
	assert.Equal(t, 310, *tweet.Likes)
	assert.Equal(t, collectedAt, tweet.CollectedAt)
}

func TestParseRawTweetMissingCountersStayNil(t *testing.T) {
	raw := rawFromJSON(t, `{
		"id": "1690001122334455667",
		"text": "tsla",
		"url": "https://x.com/a/status/1690001122334455667",
		"createdAt": "2024-05-01T10:00:00Z"
	}`)

	tweet, err := parseRawTweet(raw, time.Now().UTC())
	require.NoError(t, err)
	assert.Nil(t, tweet.Replies)
	assert.Nil(t, tweet.Likes)
	assert.Nil(t, tweet.Retweets)
	assert.Nil(t, tweet.Views)
}

func TestParseRawTweetUnparseableTimestampIsDropped(t *testing.T) {
	raw := rawFromJSON(t, `{
		"id": "1690001122334455667",
		"text": "tsla",
		"url": "https://x.com/a/status/1690001122334455667",
		"createdAt": "sometime last tuesday-ish"
	}`)

	_, err := parseRawTweet(raw, time.Now().UTC())
	assert.Error(t, err)
}

func TestParseRawTweetMissingRequiredField(t *testing.T) {
	raw := rawFromJSON(t, `{"text": "no id here", "createdAt": "2024-05-01T10:00:00Z"}`)

	_, err := parseRawTweet(raw, time.Now().UTC())
	assert.Error(t, err)
}
