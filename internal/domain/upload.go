package domain

import "time"

// Upload is the history row kept for every processed log file.
type Upload struct {
	Id          int       `db:"id" json:"id"`
	Filename    string    `db:"filename" json:"filename"`
	ObjectKey   string    `db:"object_key" json:"objectKey"`
	TotalLines  int       `db:"total_lines" json:"totalLines"`
	ErrorCount  int       `db:"error_count" json:"errorCount"`
	WarnCount   int       `db:"warn_count" json:"warnCount"`
	DebugCount  int       `db:"debug_count" json:"debugCount"`
	InfoCount   int       `db:"info_count" json:"infoCount"`
	UniqueUsers int       `db:"unique_users" json:"uniqueUsers"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

func NewUploadFromStats(filename, objectKey string, stats *Stats) *Upload {
	return &Upload{
		Filename:    filename,
		ObjectKey:   objectKey,
		TotalLines:  stats.TotalLines,
		ErrorCount:  stats.ErrorCount,
		WarnCount:   stats.WarnCount,
		DebugCount:  stats.DebugCount,
		InfoCount:   stats.InfoCount,
		UniqueUsers: stats.UniqueUsers(),
	}
}

type UploadInput struct {
	Filename    string
	StagingPath string
}

type UploadResult struct {
	Stats     *Stats
	Filename  string
	JSONFile  string
	ObjectKey string
}

// ParsedEvent is published to the broker after an upload has been stored.
type ParsedEvent struct {
	Filename    string    `json:"filename"`
	ObjectKey   string    `json:"objectKey"`
	TotalLines  int       `json:"totalLines"`
	ErrorCount  int       `json:"errorCount"`
	WarnCount   int       `json:"warnCount"`
	DebugCount  int       `json:"debugCount"`
	InfoCount   int       `json:"infoCount"`
	UniqueUsers int       `json:"uniqueUsers"`
	ParsedAt    time.Time `json:"parsedAt"`
}
