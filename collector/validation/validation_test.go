package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodfeed/tslamood/model"
)

func validTweet() *model.Tweet {
	return &model.Tweet{
		ID:       "1690001122334455667",
		Text:     "Tesla Q2 deliveries beat estimates",
		URL:      "https://x.com/elonwatcher/status/1690001122334455667",
		Author:   "elonwatcher",
		PostedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestValidateTweetAcceptsRealTweet(t *testing.T) {
	require.NoError(t, ValidateTweet(validTweet()))
}

func TestValidateTweetRejectsPlaceholderIDs(t *testing.T) {
	for _, id := range []string{"xyz", "abc456", "XYZ"} {
		tweet := validTweet()
		tweet.ID = id
		assert.Error(t, ValidateTweet(tweet), id)
	}
}

func TestValidateTweetRejectsShortNumericID(t *testing.T) {
	tweet := validTweet()
	tweet.ID = "123"
	assert.Error(t, ValidateTweet(tweet))
}

func TestValidateTweetRejectsBadURL(t *testing.T) {
	tweet := validTweet()
	tweet.URL = "https://example.com/not-a-tweet"
	assert.Error(t, ValidateTweet(tweet))

	tweet = validTweet()
	tweet.URL = "https://twitter.com/elonwatcher"
	assert.Error(t, ValidateTweet(tweet))

	tweet = validTweet()
	tweet.URL = "https://twitter.com/elonwatcher/status/1690001122334455667"
	assert.NoError(t, ValidateTweet(tweet))
}

func TestValidateTweetRejectsEmptyText(t *testing.T) {
	tweet := validTweet()
	tweet.Text = "   "
	assert.Error(t, ValidateTweet(tweet))
}

func validPost() *model.RedditPost {
	return &model.RedditPost{
		ID:        "1ckx9ab",
		Title:     "TSLA earnings megathread",
		URL:       "https://old.reddit.com/r/wallstreetbets/comments/1ckx9ab/tsla_earnings_megathread/",
		Subreddit: "wallstreetbets",
		PostedAt:  time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestValidateRedditPostAcceptsRealPost(t *testing.T) {
	require.NoError(t, ValidateRedditPost(validPost(), "wallstreetbets"))
}

func TestValidateRedditPostCommunityMatchIsCaseInsensitive(t *testing.T) {
	post := validPost()
	post.Subreddit = "WallStreetBets"
	assert.NoError(t, ValidateRedditPost(post, "wallstreetbets"))
}

func TestValidateRedditPostRejectsCrossCommunityLeakage(t *testing.T) {
	post := validPost()
	post.Subreddit = "technology"
	post.URL = "https://old.reddit.com/r/technology/comments/1ckx9ab/tesla_story/"
	assert.Error(t, ValidateRedditPost(post, "wallstreetbets"))
}

func TestValidateRedditPostRejectsNonPostURL(t *testing.T) {
	post := validPost()
	post.URL = "https://old.reddit.com/r/wallstreetbets/"
	assert.Error(t, ValidateRedditPost(post, "wallstreetbets"))
}

func TestValidateRedditPostRejectsPlaceholderID(t *testing.T) {
	post := validPost()
	post.ID = "abc456"
	assert.Error(t, ValidateRedditPost(post, "wallstreetbets"))
}
