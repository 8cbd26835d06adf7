package worker

import (
	"testing"
	"time"

	"github.com/insightfinder/arris-agent/pkg/dedup"
	"github.com/insightfinder/arris-agent/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logEntry(minute int, message string) models.LogEntry {
	return models.LogEntry{
		Timestamp: time.Date(2023, time.February, 1, 8, minute, 0, 0, time.UTC),
		Level:     models.LevelInfo,
		Message:   message,
	}
}

func TestFilterNewEntriesForwardsOnce(t *testing.T) {
	seen := dedup.New[models.LogEntry](10)
	entries := []models.LogEntry{logEntry(1, "a"), logEntry(2, "b")}

	fresh := filterNewEntries(seen, entries)
	require.Len(t, fresh, 2)

	// The modem re-reports the whole log on every poll; a second pass
	// over the same entries forwards nothing
	fresh = filterNewEntries(seen, entries)
	assert.Empty(t, fresh)

	// A new entry mixed into the old ones is the only one forwarded
	entries = append(entries, logEntry(3, "c"))
	fresh = filterNewEntries(seen, entries)
	require.Len(t, fresh, 1)
	assert.Equal(t, "c", fresh[0].Message)
}

func TestFilterNewEntriesBoundedWindow(t *testing.T) {
	seen := dedup.New[models.LogEntry](2)

	filterNewEntries(seen, []models.LogEntry{logEntry(1, "a"), logEntry(2, "b"), logEntry(3, "c")})
	assert.Equal(t, 2, seen.Len())

	// "a" fell out of the window, so it would be forwarded again
	fresh := filterNewEntries(seen, []models.LogEntry{logEntry(1, "a")})
	require.Len(t, fresh, 1)
	assert.Equal(t, "a", fresh[0].Message)
}

func TestFilterNewEntriesSameMessageDifferentTimestamp(t *testing.T) {
	seen := dedup.New[models.LogEntry](10)

	filterNewEntries(seen, []models.LogEntry{logEntry(1, "ranging complete")})

	// Equality covers all three fields; the same text at a new time is new
	fresh := filterNewEntries(seen, []models.LogEntry{logEntry(2, "ranging complete")})
	require.Len(t, fresh, 1)
}
