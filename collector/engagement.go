package collector

// EngagementThresholds are minimum counter values a raw record must reach to
// survive filtering. Zero values pass everything.
type EngagementThresholds struct {
	MinReplies  int
	MinLikes    int
	MinRetweets int
}

var (
	replyCountKeys   = []string{"replies", "reply_count", "replyCount"}
	likeCountKeys    = []string{"likes", "favorite_count", "likeCount", "favoriteCount"}
	retweetCountKeys = []string{"retweets", "retweet_count", "retweetCount"}
)

// FilterByEngagement drops records below the thresholds and truncates the
// remainder to maxItems, preserving input order. A counter that is absent
// counts as zero rather than failing the record: scraped payloads routinely
// omit counters that happen to be zero.
func FilterByEngagement(records []map[string]interface{}, thresholds EngagementThresholds, maxItems int) []map[string]interface{} {
	filtered := make([]map[string]interface{}, 0, len(records))
	for _, record := range records {
		if ExtractIntOr(record, 0, replyCountKeys...) < thresholds.MinReplies {
			continue
		}
		if ExtractIntOr(record, 0, likeCountKeys...) < thresholds.MinLikes {
			continue
		}
		if ExtractIntOr(record, 0, retweetCountKeys...) < thresholds.MinRetweets {
			continue
		}
		filtered = append(filtered, record)
	}

	if maxItems > 0 && len(filtered) > maxItems {
		filtered = filtered[:maxItems]
	}
	return filtered
}
