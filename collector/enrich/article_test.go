package enrich

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodfeed/tslamood/model"
)

const articleHTML = `<html><body>
<nav><p>Home</p></nav>
<article>
<p>Tesla reported quarterly deliveries well above consensus estimates on Tuesday, sending the stock higher in premarket trading as analysts scrambled to revise their models.</p>
<p>Short.</p>
<p>The company attributed the beat to strong Model Y demand in Europe and China, alongside the first meaningful contribution from the refreshed Model 3 production lines in Fremont and Shanghai.</p>
</article>
<footer><p>Subscribe to our newsletter for more coverage of electric vehicles and markets.</p></footer>
</body></html>`

func TestFetchBodyExtractsArticleParagraphs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(articleHTML))
	}))
	t.Cleanup(server.Close)

	body, err := NewArticleFetcher().FetchBody(server.URL)
	require.NoError(t, err)

	assert.Contains(t, body, "quarterly deliveries")
	assert.Contains(t, body, "Model Y demand")
	assert.NotContains(t, body, "Short.")
	assert.NotContains(t, body, "Home")
}

func TestEnrichDocumentsBestEffort(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "broken") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(articleHTML))
	}))
	t.Cleanup(server.Close)

	docs := []*model.Document{
		{Title: "ok", URL: server.URL + "/ok"},
		{Title: "broken", URL: server.URL + "/broken"},
		{Title: "already has content", URL: server.URL + "/ok", Content: "existing"},
	}

	NewArticleFetcher().EnrichDocuments(docs)

	assert.Contains(t, docs[0].Content, "quarterly deliveries")
	assert.Empty(t, docs[1].Content)
	assert.Equal(t, "existing", docs[2].Content)
}
