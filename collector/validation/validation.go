package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/moodfeed/tslamood/collector"
	"github.com/moodfeed/tslamood/model"
	"github.com/moodfeed/tslamood/utils"
)

// Agent-harvested records sometimes contain hallucinated filler: placeholder
// ids like "xyz", URLs pointing nowhere near the platform, posts attributed
// to the wrong community. Validators reject these before anything downstream
// sees them. A failed validator produces a ValidationError; the caller
// records a Rejection and moves on.

// Placeholder values models emit when they cannot read the real id.
var placeholderIDs = []string{"xyz", "abc456", "123456", "tweet_id", "post_id", "unknown"}

var numericIDRe = regexp.MustCompile(`^\d+$`)

// Tweet status URLs live on twitter.com or x.com and contain "/status/".
var tweetURLRe = regexp.MustCompile(`^https?://(www\.)?(twitter\.com|x\.com)/[^/]+/status/\d+`)

// ValidateTweet runs every tweet validator and returns the first failure.
func ValidateTweet(tweet *model.Tweet) error {
	validators := []func(*model.Tweet) error{
		tweetIDValidation,
		tweetURLValidation,
		tweetTextValidation,
	}
	for _, v := range validators {
		if err := v(tweet); err != nil {
			return err
		}
	}
	return nil
}

func tweetIDValidation(tweet *model.Tweet) error {
	if tweet.ID == "" {
		return &collector.ValidationError{Reason: "tweet id is empty"}
	}
	if isPlaceholderID(tweet.ID) {
		return &collector.ValidationError{Reason: fmt.Sprintf("tweet id %q is a placeholder", tweet.ID)}
	}
	// Real snowflake ids are long; a 3 digit numeric id is fabricated.
	if numericIDRe.MatchString(tweet.ID) && len(tweet.ID) < 10 {
		return &collector.ValidationError{Reason: fmt.Sprintf("tweet id %q is implausibly short", tweet.ID)}
	}
	return nil
}

func tweetURLValidation(tweet *model.Tweet) error {
	if tweet.URL == "" {
		return &collector.ValidationError{Reason: "tweet url is empty"}
	}
	if !tweetURLRe.MatchString(tweet.URL) {
		return &collector.ValidationError{Reason: fmt.Sprintf("url %q is not a tweet status url", tweet.URL)}
	}
	return nil
}

func tweetTextValidation(tweet *model.Tweet) error {
	if strings.TrimSpace(tweet.Text) == "" {
		return &collector.ValidationError{Reason: "tweet text is empty"}
	}
	return nil
}

// ValidateRedditPost runs every reddit validator. expectedSubreddit, when non
// empty, additionally rejects posts the agent pulled from some other
// community.
func ValidateRedditPost(post *model.RedditPost, expectedSubreddit string) error {
	validators := []func(*model.RedditPost) error{
		redditIDValidation,
		redditTitleValidation,
	}
	for _, v := range validators {
		if err := v(post); err != nil {
			return err
		}
	}
	if err := redditURLValidation(post, expectedSubreddit); err != nil {
		return err
	}
	if expectedSubreddit != "" && post.Subreddit != "" &&
		!strings.EqualFold(post.Subreddit, expectedSubreddit) {
		return &collector.ValidationError{
			Reason: fmt.Sprintf("post %s belongs to r/%s, expected r/%s", post.ID, post.Subreddit, expectedSubreddit),
		}
	}
	return nil
}

func redditIDValidation(post *model.RedditPost) error {
	if post.ID == "" {
		return &collector.ValidationError{Reason: "post id is empty"}
	}
	if isPlaceholderID(post.ID) {
		return &collector.ValidationError{Reason: fmt.Sprintf("post id %q is a placeholder", post.ID)}
	}
	return nil
}

func redditTitleValidation(post *model.RedditPost) error {
	if strings.TrimSpace(post.Title) == "" {
		return &collector.ValidationError{Reason: "post title is empty"}
	}
	return nil
}

func redditURLValidation(post *model.RedditPost, expectedSubreddit string) error {
	if post.URL == "" {
		return &collector.ValidationError{Reason: "post url is empty"}
	}
	lowered := strings.ToLower(post.URL)
	if !strings.Contains(lowered, "reddit.com/r/") || !strings.Contains(lowered, "/comments/") {
		return &collector.ValidationError{Reason: fmt.Sprintf("url %q is not a reddit post url", post.URL)}
	}
	if expectedSubreddit != "" {
		prefix := "/r/" + strings.ToLower(expectedSubreddit) + "/comments/"
		if !strings.Contains(lowered, prefix) {
			return &collector.ValidationError{
				Reason: fmt.Sprintf("url %q does not point into r/%s", post.URL, expectedSubreddit),
			}
		}
	}
	return nil
}

func isPlaceholderID(id string) bool {
	return utils.ContainsString(placeholderIDs, strings.ToLower(id))
}
