package pipeline

import (
	"context"
	"time"

	"github.com/moodfeed/tslamood/collector"
	"github.com/moodfeed/tslamood/collector/enrich"
	"github.com/moodfeed/tslamood/collector/sink"
	"github.com/moodfeed/tslamood/model"
	"github.com/moodfeed/tslamood/sentiment"
	"github.com/moodfeed/tslamood/storage"
	Logger "github.com/moodfeed/tslamood/utils/log"
	"github.com/moodfeed/tslamood/utils/statusstore"
)

// RecordStore persists scored rows. *storage.Store is the production
// implementation.
type RecordStore interface {
	UpsertNewsItems(rows []*storage.NewsItemRow) (int, error)
	UpsertTweets(rows []*storage.TweetRow) (int, error)
	UpsertRedditPosts(rows []*storage.RedditPostRow) (int, error)
}

// StatusStore tracks cross-run collection state.
// *statusstore.RedisStatusStore is the production implementation.
type StatusStore interface {
	IsSeen(ctx context.Context, sourceId, recordId string) (bool, error)
	MarkSeen(ctx context.Context, sourceId, recordId string) error
	MarkRun(ctx context.Context, sourceId string, at time.Time) error
}

var _ StatusStore = (*statusstore.RedisStatusStore)(nil)

// Pipeline ties collection, enrichment, scoring and persistence together.
// Store and Scorer are optional: without a store the run is collect-and-log
// only, without a scorer records are persisted unscored.
type Pipeline struct {
	Store      RecordStore
	Classifier *sentiment.Classifier
	Scorer     sentiment.Scorer
	Enricher   *enrich.ArticleFetcher
	// Sink, when set, additionally receives every accepted record. Dry runs
	// use it with a stderr sink instead of a store.
	Sink sink.CollectedDataSink
	// Status, when set, suppresses records already pushed by earlier runs
	// and tracks per-source run times.
	Status StatusStore
}

// seenMark is a deferred status store write. Records are marked seen only
// once persistence succeeded, so a failed upsert does not suppress them on
// the next run.
type seenMark struct {
	source string
	id     string
}

func (p *Pipeline) markAllSeen(ctx context.Context, marks []seenMark) {
	for _, m := range marks {
		p.markSeen(ctx, m.source, m.id)
	}
}

// seenBefore consults the status store; on any Redis error the record is
// treated as unseen, trading duplicate work for availability.
func (p *Pipeline) seenBefore(ctx context.Context, sourceId, recordId string) bool {
	if p.Status == nil || recordId == "" {
		return false
	}
	seen, err := p.Status.IsSeen(ctx, sourceId, recordId)
	if err != nil {
		Logger.Log.Warnf("status store lookup failed: %v", err)
		return false
	}
	return seen
}

func (p *Pipeline) markSeen(ctx context.Context, sourceId, recordId string) {
	if p.Status == nil || recordId == "" {
		return
	}
	if err := p.Status.MarkSeen(ctx, sourceId, recordId); err != nil {
		Logger.Log.Warnf("status store update failed: %v", err)
	}
}

func (p *Pipeline) markRun(ctx context.Context, sourceId string) {
	if p.Status == nil {
		return
	}
	if err := p.Status.MarkRun(ctx, sourceId, time.Now().UTC()); err != nil {
		Logger.Log.Warnf("status store update failed: %v", err)
	}
}

// RunResult summarizes one pipeline run for logging and CLI output.
type RunResult struct {
	Source   string
	Accepted int
	Rejected int
	Stored   int
}

// CollectNews runs every news collector, merges and dedups across sources,
// optionally enriches article bodies, scores, and persists. The stored count
// is returned separately because the merged batch spans sources.
func (p *Pipeline) CollectNews(ctx context.Context, collectors []collector.NewsCollector, query string, window collector.CollectWindow, limit int) ([]RunResult, int, error) {
	var results []RunResult
	var docs []*model.Document
	var marks []seenMark
	dedup := collector.NewDeduplicator()

	for _, c := range collectors {
		batch, err := c.CollectNews(ctx, query, window, limit)
		if err != nil {
			// One failed source must not sink the others.
			Logger.Log.WithField("source", c.SourceId()).Errorf("news collection failed: %v", err)
			results = append(results, RunResult{Source: c.SourceId()})
			continue
		}

		accepted := 0
		for _, doc := range batch.Documents {
			if !dedup.Observe(doc.Hash()) {
				continue
			}
			if p.seenBefore(ctx, c.SourceId(), doc.Hash()) {
				continue
			}
			docs = append(docs, doc)
			accepted++
			marks = append(marks, seenMark{source: c.SourceId(), id: doc.Hash()})
		}
		results = append(results, RunResult{
			Source:   c.SourceId(),
			Accepted: accepted,
			Rejected: len(batch.Rejections),
		})
		p.markRun(ctx, c.SourceId())
	}

	if p.Enricher != nil {
		p.Enricher.EnrichDocuments(docs)
	}

	stored, err := p.scoreAndStoreNews(ctx, docs)
	if err != nil {
		return results, 0, err
	}
	p.markAllSeen(ctx, marks)
	return results, stored, nil
}

func (p *Pipeline) scoreAndStoreNews(ctx context.Context, docs []*model.Document) (int, error) {
	rows := make([]*storage.NewsItemRow, 0, len(docs))
	for _, doc := range docs {
		classification, score := p.analyze(ctx, doc.Text())
		row, err := storage.NewsItemRowFrom(doc, classification, score)
		if err != nil {
			Logger.Log.Warnf("failed to flatten document %s: %v", doc.URL, err)
			continue
		}
		rows = append(rows, row)
		p.push(&sink.CollectedMessage{SourceId: doc.Source, Document: doc})
	}
	if p.Store == nil {
		return 0, nil
	}
	return p.Store.UpsertNewsItems(rows)
}

func (p *Pipeline) push(msg *sink.CollectedMessage) {
	if p.Sink == nil {
		return
	}
	if err := p.Sink.Push(msg); err != nil {
		Logger.Log.Warnf("sink push failed: %v", err)
	}
}

// CollectTweets runs one tweet collector end to end.
func (p *Pipeline) CollectTweets(ctx context.Context, c collector.TweetCollector, query string, window collector.CollectWindow) (RunResult, error) {
	result := RunResult{Source: c.SourceId()}

	batch, err := c.CollectTweets(ctx, query, window)
	if err != nil {
		return result, err
	}
	result.Accepted = len(batch.Tweets)
	result.Rejected = len(batch.Rejections)
	logRejections(c.SourceId(), batch.Rejections)

	rows := make([]*storage.TweetRow, 0, len(batch.Tweets))
	var marks []seenMark
	for _, tweet := range batch.Tweets {
		if p.seenBefore(ctx, c.SourceId(), tweet.ID) {
			continue
		}
		classification, score := p.analyze(ctx, tweet.Text)
		row, err := storage.TweetRowFrom(tweet, classification, score)
		if err != nil {
			Logger.Log.Warnf("failed to flatten tweet %s: %v", tweet.ID, err)
			continue
		}
		rows = append(rows, row)
		p.push(&sink.CollectedMessage{SourceId: c.SourceId(), Tweet: tweet})
		marks = append(marks, seenMark{source: c.SourceId(), id: tweet.ID})
	}
	p.markRun(ctx, c.SourceId())
	if p.Store != nil {
		result.Stored, err = p.Store.UpsertTweets(rows)
		if err != nil {
			return result, err
		}
	}
	p.markAllSeen(ctx, marks)
	return result, nil
}

// CollectRedditPosts runs one reddit collector end to end.
func (p *Pipeline) CollectRedditPosts(ctx context.Context, c collector.RedditCollector, subreddit, query string, window collector.CollectWindow) (RunResult, error) {
	result := RunResult{Source: c.SourceId()}

	batch, err := c.CollectPosts(ctx, subreddit, query, window)
	if err != nil {
		return result, err
	}
	result.Accepted = len(batch.Posts)
	result.Rejected = len(batch.Rejections)
	logRejections(c.SourceId(), batch.Rejections)

	rows := make([]*storage.RedditPostRow, 0, len(batch.Posts))
	var marks []seenMark
	for _, post := range batch.Posts {
		if p.seenBefore(ctx, c.SourceId(), post.ID) {
			continue
		}
		classification, score := p.analyze(ctx, post.Text())
		row, err := storage.RedditPostRowFrom(post, classification, score)
		if err != nil {
			Logger.Log.Warnf("failed to flatten post %s: %v", post.ID, err)
			continue
		}
		rows = append(rows, row)
		p.push(&sink.CollectedMessage{SourceId: c.SourceId(), Post: post})
		marks = append(marks, seenMark{source: c.SourceId(), id: post.ID})
	}
	p.markRun(ctx, c.SourceId())
	if p.Store != nil {
		result.Stored, err = p.Store.UpsertRedditPosts(rows)
		if err != nil {
			return result, err
		}
	}
	p.markAllSeen(ctx, marks)
	return result, nil
}

// analyze classifies and scores one text. Both steps are best effort; a
// record is worth storing even when the model is down.
func (p *Pipeline) analyze(ctx context.Context, text string) (*model.Classification, *model.SentimentScore) {
	var classification *model.Classification
	var score *model.SentimentScore

	if p.Classifier != nil {
		c, err := p.Classifier.Classify(ctx, text)
		if err != nil {
			Logger.Log.Warnf("classification failed: %v", err)
		} else {
			classification = c
		}
	}
	if p.Scorer != nil {
		s, err := p.Scorer.ScoreText(ctx, text)
		if err != nil {
			Logger.Log.Warnf("scoring failed: %v", err)
		} else {
			score = s
		}
	}
	return classification, score
}

func logRejections(sourceId string, rejections []collector.Rejection) {
	for _, r := range rejections {
		Logger.Log.WithFields(map[string]interface{}{
			"source": sourceId,
			"id":     r.ID,
		}).Debugf("record rejected: %s", r.Reason)
	}
}
