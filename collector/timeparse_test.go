package collector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestampTwitterFormat(t *testing.T) {
	ts, err := ParseTimestamp("Wed Oct 10 20:19:24 +0000 2018")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2018, 10, 10, 20, 19, 24, 0, time.UTC), ts)

	// Non-UTC offset is converted, not dropped.
	ts, err = ParseTimestamp("Wed Oct 10 20:19:24 -0400 2018")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2018, 10, 11, 0, 19, 24, 0, time.UTC), ts)
}

func TestParseTimestampISO(t *testing.T) {
	ts, err := ParseTimestamp("2024-05-01T09:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC), ts)

	ts, err = ParseTimestamp("2024-05-01T09:30:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 7, 30, 0, 0, time.UTC), ts)
	assert.Equal(t, time.UTC, ts.Location())
}

func TestParseTimestampRelative(t *testing.T) {
	now := time.Now().UTC()

	for _, raw := range []string{"2 hours ago", "2h", "2 hr ago"} {
		ts, err := ParseTimestamp(raw)
		require.NoError(t, err, raw)
		assert.WithinDuration(t, now.Add(-2*time.Hour), ts, 5*time.Second, raw)
	}

	ts, err := ParseTimestamp("3 days ago")
	require.NoError(t, err)
	assert.WithinDuration(t, now.Add(-72*time.Hour), ts, 5*time.Second)

	ts, err = ParseTimestamp("1 week ago")
	require.NoError(t, err)
	assert.WithinDuration(t, now.Add(-7*24*time.Hour), ts, 5*time.Second)
}

func TestParseTimestampRelativeIsInThePast(t *testing.T) {
	ts, err := ParseTimestamp("45 min ago")
	require.NoError(t, err)
	assert.True(t, ts.Before(time.Now().UTC()))
}

func TestParseTimestampBadInput(t *testing.T) {
	_, err := ParseTimestamp("")
	assert.Error(t, err)

	_, err = ParseTimestamp("not a timestamp")
	assert.Error(t, err)
}
