package parser

import (
	"slices"
	"strings"
	"time"

	"github.com/Egor213/LogiStat/internal/domain"
)

// Layouts without a zone are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999 -0700",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	time.DateOnly,
	time.RFC1123,
	time.RFC1123Z,
	time.RFC850,
	time.RFC822,
	time.RFC822Z,
	time.ANSIC,
	time.UnixDate,
	time.RubyDate,
	"02/Jan/2006:15:04:05 -0700",
}

// ParseTimestamp reads s as a calendar date/time.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

type sortKey struct {
	at time.Time
	ok bool
}

func (k sortKey) compare(o sortKey) int {
	switch {
	case k.ok && o.ok:
		return k.at.Compare(o.at)
	case k.ok:
		return -1
	case o.ok:
		return 1
	default:
		return 0
	}
}

// SortTimeline orders entries ascending by parsed timestamp. Unparseable
// timestamps sort after every parseable one. The sort is stable, so equal
// keys keep their input order.
func SortTimeline(entries []domain.TimelineEntry) {
	type keyed struct {
		key   sortKey
		entry domain.TimelineEntry
	}

	items := make([]keyed, len(entries))
	for i, e := range entries {
		var k sortKey
		if e.Timestamp != nil {
			k.at, k.ok = ParseTimestamp(*e.Timestamp)
		}
		items[i] = keyed{key: k, entry: e}
	}

	slices.SortStableFunc(items, func(a, b keyed) int {
		return a.key.compare(b.key)
	})

	for i := range items {
		entries[i] = items[i].entry
	}
}
