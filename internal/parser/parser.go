// Package parser turns the raw text of a server log into aggregate statistics.
//
// A line is classified by plain substring matching: the first bracketed group
// is its timestamp, the first of ERROR, WARN, DEBUG, INFO it contains is its
// level, and the word after "User " is its user. Lines that match nothing
// still count towards the total.
package parser

import (
	"strings"
	"unicode"

	"github.com/Egor213/LogiStat/internal/domain"
)

// Parse never fails. Blank lines are ignored entirely.
// The result does not share memory with raw.
func Parse(raw string) *domain.Stats {
	b := newBuilder()
	for _, line := range strings.Split(raw, "\n") {
		if isBlank(line) {
			continue
		}
		b.add(strings.Clone(line))
	}
	return b.build()
}

// isBlank also treats a byte order mark as whitespace.
func isBlank(line string) bool {
	return strings.TrimFunc(line, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	}) == ""
}

type builder struct {
	stats *domain.Stats
}

func newBuilder() *builder {
	return &builder{stats: domain.NewStats()}
}

func (b *builder) add(line string) {
	st := b.stats
	st.TotalLines++

	ts, hasTS := ExtractTimestamp(line)
	stamp := func() *string {
		if !hasTS {
			return nil
		}
		v := ts
		return &v
	}

	level := ClassifyLevel(line)
	switch level {
	case domain.LevelError:
		st.ErrorCount++
		st.Errors = append(st.Errors, domain.ErrorEntry{Timestamp: stamp(), Message: line})
	case domain.LevelWarn:
		st.WarnCount++
	case domain.LevelDebug:
		st.DebugCount++
	case domain.LevelInfo:
		st.InfoCount++
	}

	if user, ok := ExtractUser(line); ok {
		st.Users[user]++
		st.UserActivity[user] = append(st.UserActivity[user], domain.UserActivity{
			Timestamp: stamp(),
			Action:    ClassifyAction(line),
			Details:   line,
		})
	}

	// empty brackets stay on errors and activity, not on the timeline
	if hasTS && ts != "" {
		st.Timeline = append(st.Timeline, domain.TimelineEntry{
			Timestamp: stamp(),
			Level:     level,
			Message:   line,
		})
	}
}

func (b *builder) build() *domain.Stats {
	SortTimeline(b.stats.Timeline)
	return b.stats
}
