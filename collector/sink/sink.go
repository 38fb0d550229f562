package sink

import (
	"github.com/moodfeed/tslamood/model"
)

// CollectedMessage is one normalized record on its way out of a collection
// run. Exactly one of Document, Tweet, Post is set.
type CollectedMessage struct {
	SourceId string
	Document *model.Document
	Tweet    *model.Tweet
	Post     *model.RedditPost
}

// CollectedDataSink is where a collection run pushes its accepted records.
type CollectedDataSink interface {
	Push(msg *CollectedMessage) error
}
