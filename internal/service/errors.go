package service

import "fmt"

var (
	ErrEmptyFilename     = fmt.Errorf("filename must be specified")
	ErrCannotReadUpload  = fmt.Errorf("cannot read uploaded file")
	ErrCannotStoreResult = fmt.Errorf("cannot store statistics")
	ErrCannotSaveUpload  = fmt.Errorf("cannot save upload")
	ErrCannotIssueURL    = fmt.Errorf("cannot issue read url")
	ErrCannotListUploads = fmt.Errorf("cannot list uploads")
)
