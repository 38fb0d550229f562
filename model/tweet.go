package model

import "time"

// Tweet is a normalized tweet from either the browser agent or the webhook
// scraper. Counters are pointers: nil means the upstream never reported the
// counter, which is distinct from a reported zero.
type Tweet struct {
	ID              string                 `json:"id"`
	Text            string                 `json:"text"`
	URL             string                 `json:"url"`
	Author          string                 `json:"author"`
	AuthorFollowers *int                   `json:"author_followers,omitempty"`
	Replies         *int                   `json:"replies,omitempty"`
	Likes           *int                   `json:"likes,omitempty"`
	Retweets        *int                   `json:"retweets,omitempty"`
	Views           *int                   `json:"views,omitempty"`
	Lang            string                 `json:"lang,omitempty"`
	PostedAt        time.Time              `json:"posted_at"`
	CollectedAt     time.Time              `json:"collected_at"`
	Raw             map[string]interface{} `json:"-"`
}

// RedditPost is a normalized submission from a subreddit search.
type RedditPost struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Body        string                 `json:"body,omitempty"`
	URL         string                 `json:"url"`
	Subreddit   string                 `json:"subreddit"`
	Author      string                 `json:"author,omitempty"`
	Upvotes     *int                   `json:"upvotes,omitempty"`
	Comments    *int                   `json:"comments,omitempty"`
	UpvoteRatio *float64               `json:"upvote_ratio,omitempty"`
	PostedAt    time.Time              `json:"posted_at"`
	CollectedAt time.Time              `json:"collected_at"`
	Raw         map[string]interface{} `json:"-"`
}

// Text returns the post's title and body joined for classification.
func (p *RedditPost) Text() string {
	if p.Body == "" {
		return p.Title
	}
	return p.Title + "\n\n" + p.Body
}
