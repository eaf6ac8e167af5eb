package domain

import "encoding/json"

type Level string

const (
	LevelNone  Level = ""
	LevelError Level = "ERROR"
	LevelWarn  Level = "WARN"
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
)

// LevelNoneLabel names unclassified lines where an empty label is not allowed,
// e.g. metric labels.
const LevelNoneLabel = "NONE"

func (l Level) String() string {
	if l == LevelNone {
		return LevelNoneLabel
	}
	return string(l)
}

// MarshalJSON encodes LevelNone as null.
func (l Level) MarshalJSON() ([]byte, error) {
	if l == LevelNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(l))
}

func (l *Level) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = LevelNone
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*l = Level(s)
	return nil
}

// MarshalYAML encodes LevelNone as null.
func (l Level) MarshalYAML() (any, error) {
	if l == LevelNone {
		return nil, nil
	}
	return string(l), nil
}

type Action string

const (
	ActionLogin   Action = "login"
	ActionLogout  Action = "logout"
	ActionRequest Action = "request"
	ActionUpdate  Action = "update"
	ActionOther   Action = "other"
)
