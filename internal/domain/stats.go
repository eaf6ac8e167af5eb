package domain

// Stats is the aggregate produced for one log file. Its JSON form is the
// artifact stored for the dashboard, so field names must not change.
type Stats struct {
	TotalLines   int                       `json:"totalLines" yaml:"totalLines"`
	ErrorCount   int                       `json:"errorCount" yaml:"errorCount"`
	WarnCount    int                       `json:"warnCount" yaml:"warnCount"`
	DebugCount   int                       `json:"debugCount" yaml:"debugCount"`
	InfoCount    int                       `json:"infoCount" yaml:"infoCount"`
	Users        map[string]int            `json:"users" yaml:"users"`
	Errors       []ErrorEntry              `json:"errors" yaml:"errors"`
	Timeline     []TimelineEntry           `json:"timeline" yaml:"timeline"`
	UserActivity map[string][]UserActivity `json:"userActivity" yaml:"userActivity"`
}

type ErrorEntry struct {
	Timestamp *string `json:"timestamp" yaml:"timestamp"`
	Message   string  `json:"message" yaml:"message"`
}

type TimelineEntry struct {
	Timestamp *string `json:"timestamp" yaml:"timestamp"`
	Level     Level   `json:"level" yaml:"level"`
	Message   string  `json:"message" yaml:"message"`
}

type UserActivity struct {
	Timestamp *string `json:"timestamp" yaml:"timestamp"`
	Action    Action  `json:"action" yaml:"action"`
	Details   string  `json:"details" yaml:"details"`
}

func NewStats() *Stats {
	return &Stats{
		Users:        map[string]int{},
		Errors:       []ErrorEntry{},
		Timeline:     []TimelineEntry{},
		UserActivity: map[string][]UserActivity{},
	}
}

func (s *Stats) UniqueUsers() int {
	return len(s.Users)
}

// Unclassified is the number of lines that matched none of the levels.
func (s *Stats) Unclassified() int {
	return s.TotalLines - s.ErrorCount - s.WarnCount - s.DebugCount - s.InfoCount
}
