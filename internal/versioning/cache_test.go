package versioning

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/tns/internal/npm"
)

type countingSource struct {
	calls   int
	version string
	err     error
}

func (s *countingSource) Latest(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.version, s.err
}

func TestCache_LatestFrameworkVersionMemoised(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		_, _ = w.Write([]byte(`{"dist-tags":{"latest":"0.4.2"}}`))
	}))
	defer srv.Close()

	c, err := NewCache(npm.NewClient(srv.URL), t.TempDir())
	require.NoError(t, err)

	for range 2 {
		v, err := c.LatestFrameworkVersion(context.Background(), "tns-ios")
		require.NoError(t, err)
		assert.Equal(t, "0.4.2", v)
	}
	assert.Equal(t, int32(1), requests.Load())
}

func TestCache_CachedFrameworkDir(t *testing.T) {
	profile := t.TempDir()
	src := &countingSource{version: "1.2.0"}

	c, err := NewCache(src, profile)
	require.NoError(t, err)

	dir, err := c.CachedFrameworkDir(context.Background(), "tns-ios")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(profile, "tns-ios", "1.2.0"), dir)
	assert.DirExists(t, filepath.Join(profile, "tns-ios"))
	assert.NoDirExists(t, dir)

	again, err := c.CachedFrameworkDir(context.Background(), "tns-ios")
	require.NoError(t, err)
	assert.Equal(t, dir, again)

	_, err = c.LatestFrameworkVersion(context.Background(), "tns-ios")
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls)
}

func TestCache_PerPackage(t *testing.T) {
	src := &countingSource{version: "1.0.0"}
	c, err := NewCache(src, t.TempDir())
	require.NoError(t, err)

	_, err = c.LatestFrameworkVersion(context.Background(), "tns-ios")
	require.NoError(t, err)
	_, err = c.LatestFrameworkVersion(context.Background(), "tns-android")
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)
}

func TestCache_ErrorsAreNotCached(t *testing.T) {
	src := &countingSource{err: errors.New("offline")}
	c, err := NewCache(src, t.TempDir())
	require.NoError(t, err)

	_, err = c.CachedFrameworkDir(context.Background(), "tns-ios")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "offline")

	src.err = nil
	src.version = "2.0.0"
	v, err := c.LatestFrameworkVersion(context.Background(), "tns-ios")
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", v)
	assert.Equal(t, 2, src.calls)
}

func TestNewCache_RequiresProfileDir(t *testing.T) {
	_, err := NewCache(&countingSource{}, "")
	assert.Error(t, err)
}
