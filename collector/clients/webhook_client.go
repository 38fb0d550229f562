package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/moodfeed/tslamood/collector"
	Logger "github.com/moodfeed/tslamood/utils/log"
)

const twitterScraperPath = "/webhook/twitter-scraper"

// TwitterScrapeRequest is the payload the n8n Twitter scraper workflow
// expects. Since and Until are YYYY-MM-DD dates.
type TwitterScrapeRequest struct {
	SearchTerms []string `json:"searchTerms"`
	Since       string   `json:"since,omitempty"`
	Until       string   `json:"until,omitempty"`
	Lang        string   `json:"lang,omitempty"`
	QueryType   string   `json:"queryType"`
	MinReplies  int      `json:"min_replies,omitempty"`
	MinFaves    int      `json:"min_faves,omitempty"`
	MinRetweets int      `json:"min_retweets,omitempty"`
	MaxItems    int      `json:"maxItems,omitempty"`
}

// WebhookClient drives the n8n Twitter scraper workflow over HTTP. Every
// failure mode is mapped to a TransportError so adapters never see raw
// net/http errors.
type WebhookClient struct {
	baseURL string
	client  *http.Client
}

func NewWebhookClient(baseURL string, timeout time.Duration) *WebhookClient {
	return &WebhookClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// ScrapeTweets posts the request to the workflow and returns the raw tweet
// records. The workflow's response shape varies with its version; see
// unwrapTweetRecords.
func (c *WebhookClient) ScrapeTweets(ctx context.Context, scrape TwitterScrapeRequest) ([]map[string]interface{}, error) {
	if scrape.QueryType == "" {
		scrape.QueryType = "Top"
	}
	payload, err := json.Marshal(scrape)
	if err != nil {
		return nil, collector.NewTransportError(collector.TransportUnexpectedStatus, "twitter_webhook", "failed to encode request", err)
	}

	uri := c.baseURL + twitterScraperPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uri, bytes.NewReader(payload))
	if err != nil {
		return nil, collector.NewTransportError(collector.TransportNetwork, "twitter_webhook", "failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	Logger.Log.WithField("url", uri).Info("calling twitter scraper workflow")
	res, err := c.client.Do(req)
	if err != nil {
		return nil, classifyRequestError(err)
	}
	defer res.Body.Close()

	if err := classifyStatus(res.StatusCode, uri); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, collector.NewTransportError(collector.TransportNetwork, "twitter_webhook", "failed to read response body", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, collector.NewTransportError(collector.TransportEmptyResponse, "twitter_webhook", "workflow returned an empty body", nil)
	}

	records, err := unwrapTweetRecords(body)
	if err != nil {
		return nil, collector.NewTransportError(collector.TransportInvalidJSON, "twitter_webhook", "workflow returned undecodable JSON", err)
	}
	return records, nil
}

func classifyRequestError(err error) *collector.TransportError {
	if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
		return collector.NewTransportError(collector.TransportTimeout, "twitter_webhook", "workflow call timed out", err)
	}
	return collector.NewTransportError(collector.TransportNetwork, "twitter_webhook", "workflow call failed", err)
}

func classifyStatus(status int, uri string) *collector.TransportError {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return collector.NewTransportError(collector.TransportAuth, "twitter_webhook", "workflow rejected credentials", nil)
	case status == http.StatusNotFound:
		// The URL in the message is the whole diagnosis here: a 404 almost
		// always means the workflow is not activated or the path moved.
		return collector.NewTransportError(collector.TransportNotFound, "twitter_webhook",
			fmt.Sprintf("no workflow listening at %s", uri), nil)
	case status >= 500:
		return collector.NewTransportError(collector.TransportServer, "twitter_webhook",
			fmt.Sprintf("workflow failed with status %d", status), nil)
	default:
		return collector.NewTransportError(collector.TransportUnexpectedStatus, "twitter_webhook",
			fmt.Sprintf("unexpected status %d", status), nil)
	}
}

// unwrapTweetRecords handles the response shapes different workflow versions
// produce: a bare array, or the array nested under data.tweets, data, or
// tweets.
func unwrapTweetRecords(body []byte) ([]map[string]interface{}, error) {
	var direct []map[string]interface{}
	if err := json.Unmarshal(body, &direct); err == nil {
		return direct, nil
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, err
	}

	if data, ok := wrapped["data"]; ok {
		var nested []map[string]interface{}
		if err := json.Unmarshal(data, &nested); err == nil {
			return nested, nil
		}
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(data, &inner); err == nil {
			if tweets, ok := inner["tweets"]; ok {
				if err := json.Unmarshal(tweets, &nested); err == nil {
					return nested, nil
				}
			}
		}
	}
	if tweets, ok := wrapped["tweets"]; ok {
		var nested []map[string]interface{}
		if err := json.Unmarshal(tweets, &nested); err == nil {
			return nested, nil
		}
	}
	return nil, fmt.Errorf("no tweet array found in response")
}
