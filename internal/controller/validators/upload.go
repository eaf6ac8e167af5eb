package validators

import (
	"errors"
	"net/http"
	"path/filepath"
	"slices"
	"strings"
)

// SniffLen is how many leading bytes ValidateContent needs.
const SniffLen = 512

var (
	ErrEmptyFilename        = errors.New("filename must be specified")
	ErrUnsupportedExtension = errors.New("file is not a log file")
	ErrFileTooLarge         = errors.New("file too large")
	ErrNotText              = errors.New("file content is not plain text")
)

type UploadRules struct {
	MaxSize           int64
	AllowedExtensions []string
}

// ValidateFile checks what is known before the body is read.
func (r UploadRules) ValidateFile(filename string, size int64) error {
	if strings.TrimSpace(filename) == "" {
		return ErrEmptyFilename
	}
	if !r.AllowedName(filename) {
		return ErrUnsupportedExtension
	}
	if r.MaxSize > 0 && size > r.MaxSize {
		return ErrFileTooLarge
	}
	return nil
}

func (r UploadRules) AllowedName(filename string) bool {
	if len(r.AllowedExtensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(filename))
	return slices.ContainsFunc(r.AllowedExtensions, func(allowed string) bool {
		return strings.EqualFold(allowed, ext)
	})
}

// ValidateContent rejects content that does not sniff as text. Empty files pass.
func ValidateContent(head []byte) error {
	if len(head) == 0 {
		return nil
	}
	if !strings.HasPrefix(http.DetectContentType(head), "text/") {
		return ErrNotText
	}
	return nil
}
