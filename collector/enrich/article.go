package enrich

import (
	"bytes"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly"
	"github.com/pkg/errors"

	"github.com/moodfeed/tslamood/model"
	Logger "github.com/moodfeed/tslamood/utils/log"
)

const (
	fetchUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// Paragraphs shorter than this are navigation chrome, bylines, cookie
	// banners.
	minParagraphChars = 60

	maxBodyChars = 8000
)

// ArticleFetcher downloads article pages and pulls the readable body text
// out, so classification sees more than a headline and a two line excerpt.
type ArticleFetcher struct {
	base *colly.Collector
}

func NewArticleFetcher() *ArticleFetcher {
	c := colly.NewCollector(
		colly.UserAgent(fetchUserAgent),
		colly.MaxDepth(1),
	)
	c.SetRequestTimeout(20 * time.Second)
	return &ArticleFetcher{base: c}
}

// FetchBody returns the extracted article text for url.
func (f *ArticleFetcher) FetchBody(url string) (string, error) {
	var body string
	var fetchErr error

	c := f.base.Clone()
	c.OnResponse(func(r *colly.Response) {
		body, fetchErr = extractBody(r.Body)
	})
	c.OnError(func(r *colly.Response, err error) {
		fetchErr = err
	})

	if err := c.Visit(url); err != nil {
		return "", errors.Wrapf(err, "failed to fetch article %s", url)
	}
	c.Wait()

	if fetchErr != nil {
		return "", errors.Wrapf(fetchErr, "failed to extract article %s", url)
	}
	return body, nil
}

// EnrichDocuments fills in Content for documents that only have a summary.
// Fetch failures are logged and skipped; enrichment is best effort.
func (f *ArticleFetcher) EnrichDocuments(docs []*model.Document) {
	for _, doc := range docs {
		if doc.Content != "" || doc.URL == "" {
			continue
		}
		body, err := f.FetchBody(doc.URL)
		if err != nil {
			Logger.Log.WithField("url", doc.URL).Debugf("article enrichment skipped: %v", err)
			continue
		}
		doc.Content = body
	}
}

// extractBody prefers paragraphs inside article/main containers and falls
// back to all paragraphs when the page uses neither.
func extractBody(html []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", err
	}

	for _, selector := range []string{"article p", "main p", "p"} {
		if body := collectParagraphs(doc, selector); body != "" {
			return body, nil
		}
	}
	return "", nil
}

func collectParagraphs(doc *goquery.Document, selector string) string {
	var parts []string
	total := 0
	doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if len(text) < minParagraphChars {
			return true
		}
		parts = append(parts, text)
		total += len(text)
		return total < maxBodyChars
	})
	return strings.Join(parts, "\n\n")
}
