package instances

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"time"

	"github.com/moodfeed/tslamood/collector"
	"github.com/moodfeed/tslamood/collector/clients"
	"github.com/moodfeed/tslamood/model"
	Logger "github.com/moodfeed/tslamood/utils/log"
)

const (
	duckduckgoHomeURL = "https://duckduckgo.com/"
	duckduckgoNewsURL = "https://duckduckgo.com/news.js"
)

// The news endpoint requires a vqd token minted on the search page.
var vqdRe = regexp.MustCompile(`vqd=['"]?([\d-]+)`)

type ddgNewsResponse struct {
	Results []ddgNewsResult `json:"results"`
}

type ddgNewsResult struct {
	Date    int64  `json:"date"`
	Excerpt string `json:"excerpt"`
	Source  string `json:"source"`
	Title   string `json:"title"`
	URL     string `json:"url"`
}

// DuckDuckGoNewsCollector queries DuckDuckGo's news vertical. No API key, no
// quota, which makes it the default news source.
type DuckDuckGoNewsCollector struct {
	client *clients.HttpClient
}

func NewDuckDuckGoNewsCollector(client *clients.HttpClient) *DuckDuckGoNewsCollector {
	return &DuckDuckGoNewsCollector{client: client}
}

func (c *DuckDuckGoNewsCollector) SourceId() string {
	return collector.DuckDuckGoSourceId
}

func (c *DuckDuckGoNewsCollector) CollectNews(ctx context.Context, query string, window collector.CollectWindow, limit int) (*collector.NewsBatch, error) {
	vqd, err := c.fetchVqd(ctx, query)
	if err != nil {
		return nil, err
	}

	uri := fmt.Sprintf("%s?l=us-en&o=json&noamp=1&q=%s&vqd=%s&p=-2",
		duckduckgoNewsURL, url.QueryEscape(query), vqd)
	res, err := c.client.Get(ctx, uri)
	if err != nil {
		return nil, collector.NewTransportError(collector.TransportNetwork, c.SourceId(), "news query failed", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, collector.NewTransportError(collector.TransportNetwork, c.SourceId(), "failed to read news response", err)
	}

	var parsed ddgNewsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, collector.NewTransportError(collector.TransportInvalidJSON, c.SourceId(), "undecodable news response", err)
	}

	batch := c.normalizeResults(parsed.Results, window, limit)
	Logger.Log.WithFields(map[string]interface{}{
		"source":   c.SourceId(),
		"accepted": len(batch.Documents),
		"rejected": len(batch.Rejections),
	}).Info("news collection finished")
	return batch, nil
}

func (c *DuckDuckGoNewsCollector) fetchVqd(ctx context.Context, query string) (string, error) {
	res, err := c.client.Get(ctx, duckduckgoHomeURL+"?q="+url.QueryEscape(query)+"&ia=news")
	if err != nil {
		return "", collector.NewTransportError(collector.TransportNetwork, c.SourceId(), "vqd token request failed", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", collector.NewTransportError(collector.TransportNetwork, c.SourceId(), "failed to read vqd response", err)
	}
	m := vqdRe.FindSubmatch(body)
	if m == nil {
		return "", collector.NewTransportError(collector.TransportUnexpectedStatus, c.SourceId(), "no vqd token in search page", nil)
	}
	return string(m[1]), nil
}

func (c *DuckDuckGoNewsCollector) normalizeResults(results []ddgNewsResult, window collector.CollectWindow, limit int) *collector.NewsBatch {
	batch := &collector.NewsBatch{}
	dedup := collector.NewDeduplicator()
	collectedAt := time.Now().UTC()

	for _, r := range results {
		if r.URL == "" || r.Title == "" {
			batch.Rejections = append(batch.Rejections, collector.Rejection{ID: r.URL, Reason: "result missing url or title"})
			continue
		}
		publishedAt := collectedAt
		if r.Date > 0 {
			publishedAt = time.Unix(r.Date, 0).UTC()
		}
		if !window.Contains(publishedAt) {
			batch.Rejections = append(batch.Rejections, collector.Rejection{ID: r.URL, Reason: "published outside collection window"})
			continue
		}
		if !dedup.Observe(collector.URLKey(r.URL)) {
			batch.Rejections = append(batch.Rejections, collector.Rejection{ID: r.URL, Reason: "duplicate url"})
			continue
		}

		batch.Documents = append(batch.Documents, &model.Document{
			Title:       r.Title,
			URL:         r.URL,
			Source:      r.Source,
			Summary:     r.Excerpt,
			PublishedAt: publishedAt,
			CollectedAt: collectedAt,
		})
		if limit > 0 && len(batch.Documents) >= limit {
			break
		}
	}
	return batch
}
