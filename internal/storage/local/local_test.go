package localstorage_test

import (
	"context"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/Egor213/LogiStat/internal/storage"
	localstorage "github.com/Egor213/LogiStat/internal/storage/local"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_PutAndRead(t *testing.T) {
	ctx := context.Background()
	st, err := localstorage.New(t.TempDir(), "http://localhost:3001/", "secret")
	require.NoError(t, err)

	require.NoError(t, st.Put(ctx, "results/app.json", []byte(`{"totalLines":1}`), storage.ContentTypeJSON))

	path, err := st.Path("results/app.json")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"totalLines":1}`, string(data))
}

func TestStorage_ReadURLRoundTrip(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	clock := func() time.Time { return now }

	st, err := localstorage.New(t.TempDir(), "http://localhost:3001", "secret", localstorage.WithClock(clock))
	require.NoError(t, err)

	raw, err := st.ReadURL(context.Background(), "results/app.json", time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/api/artifacts/results/app.json", u.Path)

	key := strings.TrimPrefix(u.Path, localstorage.RoutePrefix)
	expires := u.Query().Get("expires")
	sig := u.Query().Get("signature")

	assert.NoError(t, st.Verify(key, expires, sig))
	assert.ErrorIs(t, st.Verify("results/other.json", expires, sig), storage.ErrBadSignature)
	assert.ErrorIs(t, st.Verify(key, "garbage", sig), storage.ErrBadSignature)

	now = now.Add(2 * time.Minute)
	assert.ErrorIs(t, st.Verify(key, expires, sig), storage.ErrURLExpired)
}

func TestStorage_InvalidKey(t *testing.T) {
	st, err := localstorage.New(t.TempDir(), "http://localhost:3001", "")
	require.NoError(t, err)

	for _, key := range []string{"", "/", "../escape.json", "results/../../x"} {
		_, err := st.Path(key)
		assert.ErrorIs(t, err, storage.ErrInvalidKey, key)
	}

	err = st.Put(context.Background(), "../escape.json", nil, storage.ContentTypeJSON)
	assert.ErrorIs(t, err, storage.ErrInvalidKey)
}
