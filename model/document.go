package model

import (
	"time"

	"github.com/moodfeed/tslamood/utils"
)

// Document is a normalized news article from any news source.
type Document struct {
	Title       string                 `json:"title"`
	URL         string                 `json:"url"`
	Source      string                 `json:"source"`
	Summary     string                 `json:"summary,omitempty"`
	Content     string                 `json:"content,omitempty"`
	PublishedAt time.Time              `json:"published_at"`
	CollectedAt time.Time              `json:"collected_at"`
	Raw         map[string]interface{} `json:"-"`
}

// Hash is the document's identity key, derived from the URL when present and
// the title otherwise.
func (d *Document) Hash() string {
	if d.URL != "" {
		return utils.TextToSha256Hash(d.URL)
	}
	return utils.TextToSha256Hash(d.Title)
}

// Text returns the richest text available for classification.
func (d *Document) Text() string {
	if d.Content != "" {
		return d.Title + "\n\n" + d.Content
	}
	if d.Summary != "" {
		return d.Title + "\n\n" + d.Summary
	}
	return d.Title
}
