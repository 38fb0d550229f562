package collector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeduplicatorFirstOccurrenceWins(t *testing.T) {
	d := NewDeduplicator()

	assert.True(t, d.Observe("tweet-1"))
	assert.True(t, d.Observe("tweet-2"))
	assert.False(t, d.Observe("tweet-1"))
	assert.Equal(t, 2, d.Count())
}

func TestDeduplicatorIgnoresEmptyKeys(t *testing.T) {
	d := NewDeduplicator()

	assert.True(t, d.Observe(""))
	assert.True(t, d.Observe(""))
	assert.Equal(t, 0, d.Count())
}

func TestURLKeyNormalizes(t *testing.T) {
	a := URLKey("  HTTPS://Example.com/tesla-story ")
	b := URLKey("https://example.com/tesla-story")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, URLKey("https://example.com/other-story"))
	assert.Empty(t, URLKey(""))
}
