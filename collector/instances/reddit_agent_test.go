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

type fakeRunner struct {
	result *collector.RunResult
	err    error

	lastTask collector.AgentTask
}

func (f *fakeRunner) Run(ctx context.Context, task collector.AgentTask) (*collector.RunResult, error) {
	f.lastTask = task
	return f.result, f.err
}

func redditCollectorWith(result *collector.RunResult) (*RedditAgentCollector, *fakeRunner) {
	return redditCollectorWithConfig(result, config.RedditConfig{
		Subreddit: "wallstreetbets", Query: "TSLA", SortBy: "top", TargetCount: 50,
	})
}

func redditCollectorWithConfig(result *collector.RunResult, cfg config.RedditConfig) (*RedditAgentCollector, *fakeRunner) {
	runner := &fakeRunner{result: result}
	return NewRedditAgentCollector(runner, cfg), runner
}

func TestRedditAgentCollectorNormalizes(t *testing.T) {
	payload := `{"posts": [
		{
			"id": "1ckx9ab",
			"title": "TSLA earnings megathread",
			"url": "https://old.reddit.com/r/wallstreetbets/comments/1ckx9ab/tsla_earnings/",
			"subreddit": "wallstreetbets",
			"upvotes": 900, "comments": 412, "upvote_ratio": 0.93,
			"posted_at": "2024-05-01T10:00:00Z"
		},
		{
			"id": "1ckxzzz",
			"title": "Tesla story from elsewhere",
			"url": "https://old.reddit.com/r/technology/comments/1ckxzzz/tesla_story/",
			"subreddit": "technology",
			"posted_at": "2024-05-01T11:00:00Z"
		}
	]}`
	c, runner := redditCollectorWith(&collector.RunResult{FinalResult: json.RawMessage(payload)})

	batch, err := c.CollectPosts(context.Background(), "", "", collector.CollectWindow{})
	require.NoError(t, err)
	assert.Equal(t, "reddit", runner.lastTask.Platform)
	assert.Contains(t, runner.lastTask.StartURL, "old.reddit.com/r/wallstreetbets/search")

	require.Len(t, batch.Posts, 1)
	assert.Equal(t, "1ckx9ab", batch.Posts[0].ID)
	require.NotNil(t, batch.Posts[0].Upvotes)
	assert.Equal(t, 900, *batch.Posts[0].Upvotes)
	require.NotNil(t, batch.Posts[0].UpvoteRatio)
	assert.Equal(t, 0.93, *batch.Posts[0].UpvoteRatio)

	// Cross community leakage is rejected, not silently kept.
	require.Len(t, batch.Rejections, 1)
	assert.Equal(t, "1ckxzzz", batch.Rejections[0].ID)
}

func TestRedditAgentCollectorMissingTimestampAssumesNow(t *testing.T) {
	payload := `{"posts": [{
		"id": "1ckx9ab",
		"title": "TSLA thread with unreadable age",
		"url": "https://old.reddit.com/r/wallstreetbets/comments/1ckx9ab/tsla_thread/",
		"subreddit": "wallstreetbets"
	}]}`
	c, _ := redditCollectorWith(&collector.RunResult{FinalResult: json.RawMessage(payload)})

	batch, err := c.CollectPosts(context.Background(), "", "", collector.CollectWindow{})
	require.NoError(t, err)
	require.Len(t, batch.Posts, 1)
	assert.WithinDuration(t, time.Now().UTC(), batch.Posts[0].PostedAt, 5*time.Second)
}

func TestRedditAgentCollectorEngagementFloor(t *testing.T) {
	payload := `{"posts": [
		{
			"id": "1ckaaa1",
			"title": "TSLA deep dive",
			"url": "https://old.reddit.com/r/wallstreetbets/comments/1ckaaa1/tsla_deep_dive/",
			"subreddit": "wallstreetbets",
			"upvotes": 500, "comments": 80,
			"posted_at": "2024-05-01T10:00:00Z"
		},
		{
			"id": "1ckbbb2",
			"title": "Tesla shower thought",
			"url": "https://old.reddit.com/r/wallstreetbets/comments/1ckbbb2/tesla_shower_thought/",
			"subreddit": "wallstreetbets",
			"upvotes": 3, "comments": 1,
			"posted_at": "2024-05-01T11:00:00Z"
		},
		{
			"id": "1ckccc3",
			"title": "Tesla post with unreadable counters",
			"url": "https://old.reddit.com/r/wallstreetbets/comments/1ckccc3/tesla_post/",
			"subreddit": "wallstreetbets",
			"posted_at": "2024-05-01T12:00:00Z"
		}
	]}`
	c, _ := redditCollectorWithConfig(&collector.RunResult{FinalResult: json.RawMessage(payload)}, config.RedditConfig{
		Subreddit: "wallstreetbets", Query: "TSLA", SortBy: "top",
		MinUpvotes: 100, MinComments: 10, TargetCount: 50,
	})

	batch, err := c.CollectPosts(context.Background(), "", "", collector.CollectWindow{})
	require.NoError(t, err)
	require.Len(t, batch.Posts, 1)
	assert.Equal(t, "1ckaaa1", batch.Posts[0].ID)

	// Low engagement and missing counters both fall below the floor.
	require.Len(t, batch.Rejections, 2)
	assert.Equal(t, "1ckbbb2", batch.Rejections[0].ID)
	assert.Equal(t, "1ckccc3", batch.Rejections[1].ID)
}

func TestRedditAgentCollectorEmptyRunResult(t *testing.T) {
	c, _ := redditCollectorWith(&collector.RunResult{FinalResult: json.RawMessage(`{"status": "nothing found"}`)})

	batch, err := c.CollectPosts(context.Background(), "", "", collector.CollectWindow{})
	require.NoError(t, err)
	assert.Empty(t, batch.Posts)
	assert.Empty(t, batch.Rejections)
}
