package storage

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/moodfeed/tslamood/model"
)

// Row types for the three record streams. Each carries the normalized record
// plus the sentiment columns filled in after scoring. Raw upstream payloads
// are kept as JSON for reprocessing without recollection.

type NewsItemRow struct {
	ID          string    `gorm:"primaryKey;type:uuid"`
	Title       string    `gorm:"not null"`
	URL         string    `gorm:"uniqueIndex;not null"`
	Source      string    `gorm:"index"`
	Summary     string
	Content     string
	PublishedAt time.Time `gorm:"index"`
	CollectedAt time.Time
	Raw         datatypes.JSON

	SentimentColumns

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (NewsItemRow) TableName() string { return "news_items" }

type TweetRow struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	TweetID     string `gorm:"uniqueIndex;not null"`
	Text        string `gorm:"not null"`
	URL         string `gorm:"not null"`
	Author      string
	Replies     *int
	Likes       *int
	Retweets    *int
	Views       *int
	Lang        string
	PostedAt    time.Time `gorm:"index"`
	CollectedAt time.Time
	Raw         datatypes.JSON

	SentimentColumns

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (TweetRow) TableName() string { return "tweets" }

type RedditPostRow struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	PostID      string `gorm:"uniqueIndex;not null"`
	Title       string `gorm:"not null"`
	Body        string
	URL         string `gorm:"not null"`
	Subreddit   string `gorm:"index"`
	Author      string
	Upvotes     *int
	Comments    *int
	UpvoteRatio *float64
	PostedAt    time.Time `gorm:"index"`
	CollectedAt time.Time
	Raw         datatypes.JSON

	SentimentColumns

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (RedditPostRow) TableName() string { return "reddit_posts" }

// SentimentColumns are shared by every scored row. Nullable pointers keep
// "not yet scored" distinguishable from a neutral score.
type SentimentColumns struct {
	Category           string
	CategoryConfidence *float64
	Sentiment          *float64
	Impact             *int
	Confidence         *float64
	Stance             string
	Rationale          string
	KeyFactors         datatypes.JSON
	ScoreSummary       string
}

func (c *SentimentColumns) applyScores(classification *model.Classification, score *model.SentimentScore) error {
	if classification != nil {
		c.Category = classification.Category
		c.CategoryConfidence = &classification.Confidence
	}
	if score != nil {
		c.Sentiment = &score.Sentiment
		c.Impact = &score.Impact
		c.Confidence = &score.Confidence
		c.Stance = score.Stance
		c.Rationale = score.Rationale
		c.ScoreSummary = score.Summary
		if len(score.KeyFactors) > 0 {
			raw, err := json.Marshal(score.KeyFactors)
			if err != nil {
				return err
			}
			c.KeyFactors = datatypes.JSON(raw)
		}
	}
	return nil
}

func newRowID() string { return uuid.New().String() }

func marshalRaw(raw map[string]interface{}) datatypes.JSON {
	if raw == nil {
		return nil
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil
	}
	return datatypes.JSON(encoded)
}

// NewsItemRowFrom flattens a document and its scores into a row.
func NewsItemRowFrom(doc *model.Document, classification *model.Classification, score *model.SentimentScore) (*NewsItemRow, error) {
	row := &NewsItemRow{ID: newRowID(), Raw: marshalRaw(doc.Raw)}
	if err := copier.Copy(row, doc); err != nil {
		return nil, errors.Wrap(err, "failed to flatten document")
	}
	if err := row.applyScores(classification, score); err != nil {
		return nil, err
	}
	return row, nil
}

func TweetRowFrom(tweet *model.Tweet, classification *model.Classification, score *model.SentimentScore) (*TweetRow, error) {
	row := &TweetRow{ID: newRowID(), TweetID: tweet.ID, Raw: marshalRaw(tweet.Raw)}
	if err := copier.Copy(row, tweet); err != nil {
		return nil, errors.Wrap(err, "failed to flatten tweet")
	}
	// copier maps tweet.ID onto row.ID; restore the surrogate key.
	row.ID = newRowID()
	if err := row.applyScores(classification, score); err != nil {
		return nil, err
	}
	return row, nil
}

func RedditPostRowFrom(post *model.RedditPost, classification *model.Classification, score *model.SentimentScore) (*RedditPostRow, error) {
	row := &RedditPostRow{PostID: post.ID, Raw: marshalRaw(post.Raw)}
	if err := copier.Copy(row, post); err != nil {
		return nil, errors.Wrap(err, "failed to flatten reddit post")
	}
	row.ID = newRowID()
	if err := row.applyScores(classification, score); err != nil {
		return nil, err
	}
	return row, nil
}

// BeforeCreate guards rows built by hand without the From helpers.
func (r *NewsItemRow) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = newRowID()
	}
	return nil
}

func (r *TweetRow) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = newRowID()
	}
	return nil
}

func (r *RedditPostRow) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = newRowID()
	}
	return nil
}
