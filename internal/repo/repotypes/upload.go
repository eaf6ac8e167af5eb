package repotypes

import "time"

type UploadFilter struct {
	Filename string
	From     time.Time
	To       time.Time
	Limit    int
}
