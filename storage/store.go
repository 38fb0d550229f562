package storage

import (
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/moodfeed/tslamood/utils"
	Logger "github.com/moodfeed/tslamood/utils/log"
)

// Store wraps the Postgres connection. All writes are idempotent upserts
// keyed on the platform identity column, so re-running a collection window
// updates engagement counters instead of duplicating rows.
type Store struct {
	db *gorm.DB
}

func NewStore(dsn string) (*Store, error) {
	if dsn == "" {
		return nil, errors.New("database DSN is empty")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	return &Store{db: db}, nil
}

func NewStoreWithDB(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the schema.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&NewsItemRow{}, &TweetRow{}, &RedditPostRow{})
}

func (s *Store) UpsertNewsItems(rows []*NewsItemRow) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	res := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "url"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "summary", "content", "published_at", "collected_at", "raw",
			"category", "category_confidence", "sentiment", "impact", "confidence",
			"stance", "rationale", "key_factors", "score_summary", "updated_at",
		}),
	}).Create(rows)
	if res.Error != nil {
		return 0, utils.ImmediatePrintError(errors.Wrap(res.Error, "failed to upsert news items"))
	}
	Logger.Log.WithField("rows", res.RowsAffected).Info("news items upserted")
	return int(res.RowsAffected), nil
}

func (s *Store) UpsertTweets(rows []*TweetRow) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	res := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tweet_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"text", "url", "author", "replies", "likes", "retweets", "views",
			"collected_at", "raw", "category", "category_confidence", "sentiment",
			"impact", "confidence", "stance", "rationale", "key_factors",
			"score_summary", "updated_at",
		}),
	}).Create(rows)
	if res.Error != nil {
		return 0, utils.ImmediatePrintError(errors.Wrap(res.Error, "failed to upsert tweets"))
	}
	Logger.Log.WithField("rows", res.RowsAffected).Info("tweets upserted")
	return int(res.RowsAffected), nil
}

func (s *Store) UpsertRedditPosts(rows []*RedditPostRow) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	res := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "post_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "body", "url", "author", "upvotes", "comments", "upvote_ratio",
			"collected_at", "raw", "category", "category_confidence", "sentiment",
			"impact", "confidence", "stance", "rationale", "key_factors",
			"score_summary", "updated_at",
		}),
	}).Create(rows)
	if res.Error != nil {
		return 0, utils.ImmediatePrintError(errors.Wrap(res.Error, "failed to upsert reddit posts"))
	}
	Logger.Log.WithField("rows", res.RowsAffected).Info("reddit posts upserted")
	return int(res.RowsAffected), nil
}

// RecentNewsItems returns scored news rows published in the last `days` days,
// newest first.
func (s *Store) RecentNewsItems(days int) ([]*NewsItemRow, error) {
	var rows []*NewsItemRow
	err := s.db.
		Where("published_at >= now() - make_interval(days => ?)", days).
		Order("published_at desc").
		Find(&rows).Error
	if err != nil {
		return nil, utils.ImmediatePrintError(errors.Wrap(err, "failed to load recent news items"))
	}
	return rows, nil
}

func (s *Store) RecentTweets(days int) ([]*TweetRow, error) {
	var rows []*TweetRow
	err := s.db.
		Where("posted_at >= now() - make_interval(days => ?)", days).
		Order("posted_at desc").
		Find(&rows).Error
	if err != nil {
		return nil, utils.ImmediatePrintError(errors.Wrap(err, "failed to load recent tweets"))
	}
	return rows, nil
}

func (s *Store) RecentRedditPosts(days int) ([]*RedditPostRow, error) {
	var rows []*RedditPostRow
	err := s.db.
		Where("posted_at >= now() - make_interval(days => ?)", days).
		Order("posted_at desc").
		Find(&rows).Error
	if err != nil {
		return nil, utils.ImmediatePrintError(errors.Wrap(err, "failed to load recent reddit posts"))
	}
	return rows, nil
}
