// Package render draws a terminal summary of parsed statistics.
package render

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/Egor213/LogiStat/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const (
	DefaultTop = 5

	tileWidth  = 14
	maxMessage = 80
)

var (
	errorColor = lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#F87171"}
	warnColor  = lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#FBBF24"}
	debugColor = lipgloss.AdaptiveColor{Light: "#8B5CF6", Dark: "#A78BFA"}
	infoColor  = lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"}
	mutedColor = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(infoColor).MarginTop(1)
	mutedStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	tileStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Width(tileWidth).
			Align(lipgloss.Center)
)

type tile struct {
	title string
	value int
	color lipgloss.AdaptiveColor
}

// Summary writes count tiles, the most active users and the first errors.
// top <= 0 uses DefaultTop.
func Summary(w io.Writer, stats *domain.Stats, top int) error {
	if top <= 0 {
		top = DefaultTop
	}

	tiles := []tile{
		{"Lines", stats.TotalLines, mutedColor},
		{"Errors", stats.ErrorCount, errorColor},
		{"Warnings", stats.WarnCount, warnColor},
		{"Debug", stats.DebugCount, debugColor},
		{"Info", stats.InfoCount, infoColor},
		{"Users", stats.UniqueUsers(), infoColor},
	}

	rendered := make([]string, 0, len(tiles))
	for _, t := range tiles {
		value := lipgloss.NewStyle().Bold(true).Foreground(t.color).Render(strconv.Itoa(t.value))
		rendered = append(rendered, tileStyle.Render(lipgloss.JoinVertical(lipgloss.Center, t.title, value)))
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	b.WriteString("\n")

	b.WriteString(headerStyle.Render("Top users"))
	b.WriteString("\n")
	users := TopUsers(stats.Users, top)
	if len(users) == 0 {
		b.WriteString(mutedStyle.Render("  none"))
		b.WriteString("\n")
	}
	for _, u := range users {
		fmt.Fprintf(&b, "  %-20s %d\n", u.Name, u.Count)
	}

	b.WriteString(headerStyle.Render(fmt.Sprintf("Errors (%d)", len(stats.Errors))))
	b.WriteString("\n")
	if len(stats.Errors) == 0 {
		b.WriteString(mutedStyle.Render("  none"))
		b.WriteString("\n")
	}
	for _, e := range stats.Errors[:min(top, len(stats.Errors))] {
		ts := "-"
		if e.Timestamp != nil {
			ts = *e.Timestamp
		}
		fmt.Fprintf(&b, "  %s %s\n", mutedStyle.Render(ts), truncate(e.Message, maxMessage))
	}
	if rest := len(stats.Errors) - top; rest > 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  ... %d more", rest)))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

type UserCount struct {
	Name  string
	Count int
}

// TopUsers orders users by line count, then by name.
func TopUsers(users map[string]int, n int) []UserCount {
	out := make([]UserCount, 0, len(users))
	for name, count := range users {
		out = append(out, UserCount{Name: name, Count: count})
	}
	slices.SortFunc(out, func(a, b UserCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out[:min(n, len(out))]
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
