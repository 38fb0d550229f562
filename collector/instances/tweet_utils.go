package instances

import (
	"fmt"
	"time"

	"github.com/moodfeed/tslamood/collector"
	"github.com/moodfeed/tslamood/model"
)

var (
	tweetIdKeys   = []string{"id", "tweetId", "tweet_id", "id_str"}
	tweetTextKeys = []string{"text", "full_text", "fullText", "tweet", "content"}
	tweetURLKeys  = []string{"url", "twitterUrl", "tweet_url", "tweetUrl", "link", "permalink"}
	tweetTimeKeys = []string{"createdAt", "created_at", "timestamp", "posted_at", "date", "time"}
	authorKeys    = []string{"author", "user", "username", "userName", "screen_name", "handle"}
	followerKeys  = []string{"followers", "followers_count", "followersCount"}
	viewKeys      = []string{"views", "view_count", "viewCount"}
	langKeys      = []string{"lang", "language"}
)

// parseRawTweet normalizes one raw tweet record. A missing id, text or URL is
// an error; a missing or unparseable timestamp is an error too, because an
// undatable tweet cannot be placed in a collection window and gets dropped.
func parseRawTweet(raw map[string]interface{}, collectedAt time.Time) (*model.Tweet, error) {
	id, err := collector.ExtractString(raw, "id", tweetIdKeys...)
	if err != nil {
		return nil, err
	}
	text, err := collector.ExtractString(raw, "text", tweetTextKeys...)
	if err != nil {
		return nil, err
	}
	url, err := collector.ExtractString(raw, "url", tweetURLKeys...)
	if err != nil {
		return nil, err
	}

	rawTime, err := collector.ExtractString(raw, "posted_at", tweetTimeKeys...)
	if err != nil {
		return nil, err
	}
	postedAt, err := collector.ParseTimestamp(rawTime)
	if err != nil {
		return nil, fmt.Errorf("tweet %s: %v", id, err)
	}

	tweet := &model.Tweet{
		ID:          id,
		Text:        text,
		URL:         url,
		Author:      extractAuthor(raw),
		Lang:        collector.ExtractStringOr(raw, "", langKeys...),
		PostedAt:    postedAt,
		CollectedAt: collectedAt,
		Raw:         raw,
	}

	setOptionalCount(raw, &tweet.Replies, replyAliasKeys)
	setOptionalCount(raw, &tweet.Likes, likeAliasKeys)
	setOptionalCount(raw, &tweet.Retweets, retweetAliasKeys)
	setOptionalCount(raw, &tweet.Views, viewKeys)
	setOptionalCount(raw, &tweet.AuthorFollowers, followerKeys)
	return tweet, nil
}

var (
	replyAliasKeys   = []string{"replies", "reply_count", "replyCount"}
	likeAliasKeys    = []string{"likes", "favorite_count", "likeCount", "favoriteCount"}
	retweetAliasKeys = []string{"retweets", "retweet_count", "retweetCount"}
)

// extractAuthor handles both a flat author string and a nested author object.
func extractAuthor(raw map[string]interface{}) string {
	if obj, err := collector.ExtractMap(raw, "author", "author", "user"); err == nil {
		return collector.ExtractStringOr(obj, "", "userName", "username", "screen_name", "name", "handle")
	}
	return collector.ExtractStringOr(raw, "", authorKeys...)
}

// setOptionalCount leaves the pointer nil when no alias key is present, so
// "not reported" stays distinguishable from zero.
func setOptionalCount(raw map[string]interface{}, dst **int, keys []string) {
	if val, err := collector.ExtractInt(raw, "", keys...); err == nil {
		*dst = &val
	}
}
