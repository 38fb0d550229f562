package collector

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/pkg/errors"
)

// Twitter's legacy created_at format, e.g. "Mon Jan 02 15:04:05 -0700 2006".
const twitterTimeLayout = "Mon Jan 02 15:04:05 -0700 2006"

var relativeTimeRe = regexp.MustCompile(`(?i)^(\d+)\s*(s|sec|second|seconds|m|min|minute|minutes|h|hr|hour|hours|d|day|days|w|week|weeks)\s*(ago)?$`)

// ParseTimestamp normalizes the timestamp formats the upstreams actually emit
// into a UTC time:
//
//	"Mon Jan 02 15:04:05 -0700 2006"   Twitter created_at
//	"2024-01-02T15:04:05Z"             ISO-8601 with or without Z
//	"2 hours ago", "3d", "5 min"       relative phrases from scraped pages
//	anything else                      best effort via dateparse
func ParseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New("empty timestamp")
	}

	// Twitter layout first: dateparse misreads the trailing year as a zone.
	if looksLikeTwitterTime(raw) {
		if ts, err := time.Parse(twitterTimeLayout, raw); err == nil {
			return ts.UTC(), nil
		}
	}

	if ts, ok := parseRelative(raw, time.Now().UTC()); ok {
		return ts, nil
	}

	ts, err := dateparse.ParseAny(raw)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "unparseable timestamp %q", raw)
	}
	return ts.UTC(), nil
}

func looksLikeTwitterTime(raw string) bool {
	tokens := strings.Fields(raw)
	if len(tokens) != 6 {
		return false
	}
	return strings.HasPrefix(tokens[4], "+") || strings.HasPrefix(tokens[4], "-")
}

func parseRelative(raw string, now time.Time) (time.Time, bool) {
	m := relativeTimeRe.FindStringSubmatch(raw)
	if m == nil {
		return time.Time{}, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, false
	}

	var unit time.Duration
	switch strings.ToLower(m[2])[0] {
	case 's':
		unit = time.Second
	case 'm':
		unit = time.Minute
	case 'h':
		unit = time.Hour
	case 'd':
		unit = 24 * time.Hour
	case 'w':
		unit = 7 * 24 * time.Hour
	default:
		return time.Time{}, false
	}
	return now.Add(-time.Duration(n) * unit), true
}
