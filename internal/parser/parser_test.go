package parser_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/Egor213/LogiStat/internal/domain"
	"github.com/Egor213/LogiStat/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

const sampleLog = `[2024-01-01T10:05:00Z] INFO User alice logged in
[2024-01-01T10:01:00Z] ERROR Database connection failed
[2024-01-01T10:02:00Z] WARN User bob requested /admin

[2024-01-01T10:03:00Z] DEBUG User alice updated profile
no brackets ERROR here
[not a date] User carol logged out

[2024-01-01T10:00:00Z] something without a level
`

func TestParse_SingleLoginLine(t *testing.T) {
	line := "[2024-01-01T10:00:00Z] INFO User alice logged in"

	got := parser.Parse(line + "\n")

	assert.Equal(t, 1, got.TotalLines)
	assert.Equal(t, 1, got.InfoCount)
	assert.Equal(t, 0, got.ErrorCount)
	assert.Equal(t, map[string]int{"alice": 1}, got.Users)
	assert.Equal(t, map[string][]domain.UserActivity{
		"alice": {{Timestamp: strPtr("2024-01-01T10:00:00Z"), Action: domain.ActionLogin, Details: line}},
	}, got.UserActivity)
	require.Len(t, got.Timeline, 1)
	assert.Equal(t, domain.LevelInfo, got.Timeline[0].Level)
	assert.Empty(t, got.Errors)
}

func TestParse_TimelineSortedAscending(t *testing.T) {
	first := "[2024-01-01T12:00:00Z] INFO later"
	second := "[2024-01-01T08:00:00Z] INFO earlier"

	got := parser.Parse(first + "\n" + second)

	require.Len(t, got.Timeline, 2)
	assert.Equal(t, second, got.Timeline[0].Message)
	assert.Equal(t, first, got.Timeline[1].Message)
}

func TestParse_ErrorWinsOverWarn(t *testing.T) {
	got := parser.Parse("[2024-01-01T10:00:00Z] WARN retry exhausted, ERROR raised")

	assert.Equal(t, 1, got.ErrorCount)
	assert.Equal(t, 0, got.WarnCount)
	require.Len(t, got.Errors, 1)
	assert.Equal(t, domain.LevelError, got.Timeline[0].Level)
}

func TestParse_LineWithoutTimestampOrUser(t *testing.T) {
	got := parser.Parse("WARN disk almost full")

	assert.Equal(t, 1, got.TotalLines)
	assert.Equal(t, 1, got.WarnCount)
	assert.Empty(t, got.Timeline)
	assert.Empty(t, got.Users)
	assert.Empty(t, got.UserActivity)
}

func TestParse_EmptyInput(t *testing.T) {
	for _, in := range []string{"", "\n\n", "   \n\t\n"} {
		got := parser.Parse(in)

		assert.Equal(t, 0, got.TotalLines)
		assert.Equal(t, 0, got.ErrorCount+got.WarnCount+got.DebugCount+got.InfoCount)
		assert.NotNil(t, got.Users)
		assert.NotNil(t, got.Errors)
		assert.NotNil(t, got.Timeline)
		assert.NotNil(t, got.UserActivity)
		assert.Empty(t, got.Timeline)
	}
}

func TestParse_Sample(t *testing.T) {
	got := parser.Parse(sampleLog)

	assert.Equal(t, 7, got.TotalLines)
	assert.Equal(t, 2, got.ErrorCount)
	assert.Equal(t, 1, got.WarnCount)
	assert.Equal(t, 1, got.DebugCount)
	assert.Equal(t, 1, got.InfoCount)
	assert.Equal(t, map[string]int{"alice": 2, "bob": 1, "carol": 1}, got.Users)

	require.Len(t, got.Errors, 2)
	assert.Equal(t, strPtr("2024-01-01T10:01:00Z"), got.Errors[0].Timestamp)
	assert.Nil(t, got.Errors[1].Timestamp)
	assert.Equal(t, "no brackets ERROR here", got.Errors[1].Message)

	assert.Equal(t, []domain.Action{domain.ActionLogin, domain.ActionUpdate},
		[]domain.Action{got.UserActivity["alice"][0].Action, got.UserActivity["alice"][1].Action})
	assert.Equal(t, domain.ActionRequest, got.UserActivity["bob"][0].Action)
	assert.Equal(t, domain.ActionLogout, got.UserActivity["carol"][0].Action)

	var order []string
	for _, e := range got.Timeline {
		order = append(order, *e.Timestamp)
	}
	assert.Equal(t, []string{
		"2024-01-01T10:00:00Z",
		"2024-01-01T10:01:00Z",
		"2024-01-01T10:02:00Z",
		"2024-01-01T10:03:00Z",
		"2024-01-01T10:05:00Z",
		"not a date",
	}, order)
	assert.Equal(t, domain.LevelNone, got.Timeline[0].Level)
}

func TestParse_Invariants(t *testing.T) {
	inputs := []string{
		sampleLog,
		"User a\nUser a\nUser b ERROR\n[x] User c INFO WARN",
		"[2024-01-01] INFO\n\n[2023-12-31] DEBUG User z requested\n[] ERROR",
	}

	for _, in := range inputs {
		got := parser.Parse(in)

		nonBlank := 0
		for _, l := range strings.Split(in, "\n") {
			if strings.TrimSpace(l) != "" {
				nonBlank++
			}
		}
		assert.Equal(t, nonBlank, got.TotalLines)
		assert.LessOrEqual(t, got.ErrorCount+got.WarnCount+got.DebugCount+got.InfoCount, got.TotalLines)

		total, activity := 0, 0
		for u, n := range got.Users {
			total += n
			require.Contains(t, got.UserActivity, u)
			assert.Len(t, got.UserActivity[u], n)
			activity += len(got.UserActivity[u])
		}
		assert.Len(t, got.UserActivity, len(got.Users))
		assert.Equal(t, total, activity)
		assert.LessOrEqual(t, total, got.TotalLines)

		for _, e := range got.Errors {
			if e.Timestamp == nil || *e.Timestamp == "" {
				continue
			}
			found := false
			for _, tl := range got.Timeline {
				if tl.Message == e.Message && tl.Level == domain.LevelError {
					found = true
				}
			}
			assert.True(t, found, "error %q missing from timeline", e.Message)
		}
	}
}

func TestParse_EmptyBracketsStayOffTimeline(t *testing.T) {
	got := parser.Parse("[] ERROR empty brackets\n[] User ann logged in\n")

	require.Len(t, got.Errors, 1)
	assert.Equal(t, strPtr(""), got.Errors[0].Timestamp)
	require.Len(t, got.UserActivity["ann"], 1)
	assert.Equal(t, strPtr(""), got.UserActivity["ann"][0].Timestamp)
	assert.Empty(t, got.Timeline)
}

func TestParse_ByteOrderMarkLineIsBlank(t *testing.T) {
	got := parser.Parse("\uFEFF\n[2024-01-01T10:00:00Z] INFO ready\n \uFEFF \n")

	assert.Equal(t, 1, got.TotalLines)
	assert.Equal(t, 1, got.InfoCount)
}

func TestParse_Idempotent(t *testing.T) {
	assert.Equal(t, parser.Parse(sampleLog), parser.Parse(sampleLog))
}

func TestParse_UserTokenStopsAtNonWordChar(t *testing.T) {
	got := parser.Parse("[2024-01-01T10:00:00Z] INFO User john.doe logged in")

	assert.Equal(t, map[string]int{"john": 1}, got.Users)
}

func TestParse_JSONShape(t *testing.T) {
	got := parser.Parse("ERROR no stamp\n[2024-01-01T10:00:00Z] plain")

	data, err := json.Marshal(got)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"totalLines": 2,
		"errorCount": 1, "warnCount": 0, "debugCount": 0, "infoCount": 0,
		"users": {},
		"errors": [{"timestamp": null, "message": "ERROR no stamp"}],
		"timeline": [{"timestamp": "2024-01-01T10:00:00Z", "level": null, "message": "[2024-01-01T10:00:00Z] plain"}],
		"userActivity": {}
	}`, string(data))
}
