package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Report is one rendered sentiment digest.
type Report struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`
	WindowDays  int       `json:"window_days"`
	Stats       Stats     `json:"stats"`
	TopBullish  []Item    `json:"top_bullish"`
	TopBearish  []Item    `json:"top_bearish"`
	Items       []Item    `json:"items"`
}

const topMoverCount = 5

// Build assembles a report over the given items.
func Build(items []Item, windowDays int) *Report {
	bullish, bearish := TopMovers(items, topMoverCount)
	return &Report{
		ID:          uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		WindowDays:  windowDays,
		Stats:       ComputeStats(items),
		TopBullish:  bullish,
		TopBearish:  bearish,
		Items:       items,
	}
}

// JSON renders the report for machine consumers.
func (r *Report) JSON() ([]byte, error) {
	raw, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode report")
	}
	return raw, nil
}

// Markdown renders a terminal friendly digest.
func (r *Report) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# TSLA Sentiment Digest (%d day window)\n\n", r.WindowDays)
	fmt.Fprintf(&b, "Generated %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&b, "**Overall mood: %s** (weighted sentiment %+.2f across %d scored of %d items)\n\n",
		r.Stats.Mood, r.Stats.WeightedSentiment, r.Stats.Scored, r.Stats.Total)

	if len(r.Stats.StanceCounts) > 0 {
		fmt.Fprintf(&b, "Stances: %d bullish / %d bearish / %d neutral\n\n",
			r.Stats.StanceCounts["bullish"], r.Stats.StanceCounts["bearish"], r.Stats.StanceCounts["neutral"])
	}

	writeMoverSection(&b, "Top bullish", r.TopBullish)
	writeMoverSection(&b, "Top bearish", r.TopBearish)

	if len(r.Stats.CategoryCounts) > 0 {
		b.WriteString("## Coverage by category\n\n")
		for category, count := range r.Stats.CategoryCounts {
			fmt.Fprintf(&b, "- %s: %d\n", category, count)
		}
	}
	return b.String()
}

func writeMoverSection(b *strings.Builder, title string, items []Item) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "- [%+.2f] %s (%s)\n  %s\n", *item.Sentiment, item.Title, item.Source, item.URL)
	}
	b.WriteString("\n")
}

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"deref": func(f *float64) float64 {
		if f == nil {
			return 0
		}
		return *f
	},
}).Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>TSLA Sentiment Digest</title></head>
<body style="font-family: -apple-system, Helvetica, Arial, sans-serif; max-width: 720px; margin: 0 auto; color: #1a1a1a;">
  <h1>TSLA Sentiment Digest</h1>
  <p>{{.GeneratedAt.Format "January 2, 2006 15:04 MST"}} &middot; {{.WindowDays}} day window</p>
  <h2>Mood: {{.Stats.Mood}}</h2>
  <p>Weighted sentiment <b>{{printf "%+.2f" .Stats.WeightedSentiment}}</b>
     across {{.Stats.Scored}} scored of {{.Stats.Total}} items.</p>

  {{if .TopBullish}}
  <h3>Top bullish</h3>
  <ul>
  {{range .TopBullish}}
    <li><b>{{printf "%+.2f" (deref .Sentiment)}}</b> &mdash; <a href="{{.URL}}">{{.Title}}</a> <i>({{.Source}})</i>{{if .Summary}}<br>{{.Summary}}{{end}}</li>
  {{end}}
  </ul>
  {{end}}

  {{if .TopBearish}}
  <h3>Top bearish</h3>
  <ul>
  {{range .TopBearish}}
    <li><b>{{printf "%+.2f" (deref .Sentiment)}}</b> &mdash; <a href="{{.URL}}">{{.Title}}</a> <i>({{.Source}})</i>{{if .Summary}}<br>{{.Summary}}{{end}}</li>
  {{end}}
  </ul>
  {{end}}

  {{if .Stats.CategoryCounts}}
  <h3>Coverage by category</h3>
  <ul>
  {{range $category, $count := .Stats.CategoryCounts}}
    <li>{{$category}}: {{$count}}</li>
  {{end}}
  </ul>
  {{end}}
</body>
</html>`))

// HTML renders the report for email delivery.
func (r *Report) HTML() (string, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, r); err != nil {
		return "", errors.Wrap(err, "failed to render report html")
	}
	return buf.String(), nil
}
