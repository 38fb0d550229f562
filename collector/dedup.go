package collector

import "github.com/moodfeed/tslamood/utils"

// Deduplicator tracks identity keys seen within one collection batch. The
// first record with a given key wins; later duplicates are dropped. It is not
// goroutine safe, matching its per-batch use.
type Deduplicator struct {
	seen map[string]bool
}

func NewDeduplicator() *Deduplicator {
	return &Deduplicator{seen: map[string]bool{}}
}

// Observe records the key and reports whether it was new. Empty keys are
// never deduplicated; a record with no identity cannot collide.
func (d *Deduplicator) Observe(key string) bool {
	if key == "" {
		return true
	}
	if d.seen[key] {
		return false
	}
	d.seen[key] = true
	return true
}

func (d *Deduplicator) Count() int { return len(d.seen) }

// URLKey derives a stable identity key from a URL. Hashing the trimmed,
// lower-cased form makes "HTTPS://Example.com/a " and "https://example.com/a"
// collapse to one key.
func URLKey(url string) string {
	if url == "" {
		return ""
	}
	return utils.TextToSha256Hash(url)
}
