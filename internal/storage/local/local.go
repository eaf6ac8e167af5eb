package localstorage

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Egor213/LogiStat/internal/storage"
	errorsUtils "github.com/Egor213/LogiStat/pkg/errors"
)

// RoutePrefix is where the HTTP API serves signed artifacts.
const RoutePrefix = "/api/artifacts/"

// Storage keeps artifacts on local disk and signs read URLs with HMAC-SHA256.
type Storage struct {
	root      string
	publicURL string
	key       []byte
	now       func() time.Time
}

type Option func(*Storage)

func WithClock(now func() time.Time) Option {
	return func(s *Storage) {
		s.now = now
	}
}

// New generates a random signing key when signingKey is empty; URLs issued
// with it stop working after a restart.
func New(root, publicURL, signingKey string, opts ...Option) (*Storage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	key := []byte(signingKey)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, errorsUtils.WrapPathErr(err)
		}
	}

	s := &Storage{
		root:      root,
		publicURL: strings.TrimRight(publicURL, "/"),
		key:       key,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Storage) Put(_ context.Context, key string, body []byte, _ string) error {
	path, err := s.Path(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errorsUtils.WrapPathErr(err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".put-*")
	if err != nil {
		return errorsUtils.WrapPathErr(err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return errorsUtils.WrapPathErr(err)
	}
	if err := tmp.Close(); err != nil {
		return errorsUtils.WrapPathErr(err)
	}

	return errorsUtils.WrapPathErr(os.Rename(tmp.Name(), path))
}

func (s *Storage) ReadURL(_ context.Context, key string, ttl time.Duration) (string, error) {
	if _, err := s.Path(key); err != nil {
		return "", err
	}

	expires := strconv.FormatInt(s.now().Add(ttl).Unix(), 10)

	base, err := url.JoinPath(s.publicURL, RoutePrefix, key)
	if err != nil {
		return "", errorsUtils.WrapPathErr(err)
	}

	q := url.Values{}
	q.Set("expires", expires)
	q.Set("signature", s.sign(key, expires))

	return base + "?" + q.Encode(), nil
}

// Verify checks a signature issued by ReadURL.
func (s *Storage) Verify(key, expires, signature string) error {
	exp, err := strconv.ParseInt(expires, 10, 64)
	if err != nil {
		return storage.ErrBadSignature
	}

	want := s.sign(key, expires)
	if !hmac.Equal([]byte(want), []byte(signature)) {
		return storage.ErrBadSignature
	}

	if s.now().Unix() > exp {
		return storage.ErrURLExpired
	}
	return nil
}

// Path maps key to a file under root, refusing keys that escape it.
func (s *Storage) Path(key string) (string, error) {
	clean := filepath.Clean("/" + filepath.FromSlash(key))
	if key == "" || clean == string(filepath.Separator) || strings.Contains(key, "..") {
		return "", storage.ErrInvalidKey
	}
	return filepath.Join(s.root, clean), nil
}

func (s *Storage) sign(key, expires string) string {
	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte(key))
	mac.Write([]byte{'\n'})
	mac.Write([]byte(expires))
	return hex.EncodeToString(mac.Sum(nil))
}
