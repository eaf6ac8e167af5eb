// Package storage holds the object storage abstraction that stores
// statistics artifacts and hands out time-limited read URLs for them.
package storage

import (
	"context"
	"errors"
	"time"
)

const ContentTypeJSON = "application/json"

var (
	ErrInvalidKey   = errors.New("invalid object key")
	ErrURLExpired   = errors.New("read url expired")
	ErrBadSignature = errors.New("read url signature mismatch")
)

type ObjectStorage interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	ReadURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}
