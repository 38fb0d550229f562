package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodfeed/tslamood/collector"
)

func scrapeViaServer(t *testing.T, handler http.HandlerFunc) ([]map[string]interface{}, error) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewWebhookClient(server.URL, 5*time.Second)
	return client.ScrapeTweets(context.Background(), TwitterScrapeRequest{
		SearchTerms: []string{"TSLA OR Tesla"},
		Since:       "2024-05-01",
		Until:       "2024-05-02",
		Lang:        "en",
	})
}

func TestScrapeTweetsDirectArray(t *testing.T) {
	records, err := scrapeViaServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/webhook/twitter-scraper", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req TwitterScrapeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"TSLA OR Tesla"}, req.SearchTerms)
		assert.Equal(t, "Top", req.QueryType)

		w.Write([]byte(`[{"id": "1", "text": "tsla"}]`))
	})

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "1", records[0]["id"])
}

func TestScrapeTweetsNestedShapes(t *testing.T) {
	for name, body := range map[string]string{
		"data_tweets": `{"data": {"tweets": [{"id": "1"}]}}`,
		"data":        `{"data": [{"id": "1"}]}`,
		"tweets":      `{"tweets": [{"id": "1"}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			records, err := scrapeViaServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			})
			require.NoError(t, err)
			require.Len(t, records, 1)
		})
	}
}

func TestScrapeTweetsNotFoundIncludesURL(t *testing.T) {
	_, err := scrapeViaServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	var terr *collector.TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, collector.TransportNotFound, terr.Kind)
	assert.Contains(t, terr.Message, "/webhook/twitter-scraper")
}

func TestScrapeTweetsStatusMapping(t *testing.T) {
	cases := map[int]collector.TransportErrorKind{
		http.StatusUnauthorized:        collector.TransportAuth,
		http.StatusForbidden:           collector.TransportAuth,
		http.StatusInternalServerError: collector.TransportServer,
		http.StatusBadGateway:          collector.TransportServer,
		http.StatusTeapot:              collector.TransportUnexpectedStatus,
	}
	for status, kind := range cases {
		_, err := scrapeViaServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		})

		var terr *collector.TransportError
		require.ErrorAs(t, err, &terr, status)
		assert.Equal(t, kind, terr.Kind, status)
	}
}

func TestScrapeTweetsEmptyBody(t *testing.T) {
	_, err := scrapeViaServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("  "))
	})

	var terr *collector.TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, collector.TransportEmptyResponse, terr.Kind)
}

func TestScrapeTweetsInvalidJSON(t *testing.T) {
	_, err := scrapeViaServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway error</html>"))
	})

	var terr *collector.TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, collector.TransportInvalidJSON, terr.Kind)
}

func TestScrapeTweetsTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(server.Close)

	client := NewWebhookClient(server.URL, 20*time.Millisecond)
	_, err := client.ScrapeTweets(context.Background(), TwitterScrapeRequest{SearchTerms: []string{"TSLA"}})

	var terr *collector.TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, collector.TransportTimeout, terr.Kind)
}
