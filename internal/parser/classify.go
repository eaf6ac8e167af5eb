package parser

import (
	"regexp"
	"strings"

	"github.com/Egor213/LogiStat/internal/domain"
)

var (
	timestampRe = regexp.MustCompile(`\[(.*?)\]`)
	userRe      = regexp.MustCompile(`User (\w+)`)
)

type levelRule struct {
	marker string
	level  domain.Level
}

type actionRule struct {
	marker string
	action domain.Action
}

// First match wins, so the order is the priority.
var levelRules = []levelRule{
	{"ERROR", domain.LevelError},
	{"WARN", domain.LevelWarn},
	{"DEBUG", domain.LevelDebug},
	{"INFO", domain.LevelInfo},
}

var actionRules = []actionRule{
	{"logged in", domain.ActionLogin},
	{"logged out", domain.ActionLogout},
	{"requested", domain.ActionRequest},
	{"updated", domain.ActionUpdate},
}

// ClassifyLevel returns LevelNone when the line carries no known marker.
func ClassifyLevel(line string) domain.Level {
	for _, r := range levelRules {
		if strings.Contains(line, r.marker) {
			return r.level
		}
	}
	return domain.LevelNone
}

func ClassifyAction(line string) domain.Action {
	for _, r := range actionRules {
		if strings.Contains(line, r.marker) {
			return r.action
		}
	}
	return domain.ActionOther
}

// ExtractTimestamp returns the content of the first bracketed group.
func ExtractTimestamp(line string) (string, bool) {
	m := timestampRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ExtractUser returns the word following the first "User " in the line.
func ExtractUser(line string) (string, bool) {
	m := userRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}
