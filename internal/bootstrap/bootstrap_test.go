package bootstrap

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/tns/internal/logging"
)

type fakeCache struct {
	version string
	dir     string
}

func (c *fakeCache) LatestFrameworkVersion(context.Context, string) (string, error) {
	return c.version, nil
}

func (c *fakeCache) CachedFrameworkDir(context.Context, string) (string, error) {
	return c.dir, nil
}

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestBootstrapper_Run(t *testing.T) {
	payload := buildZip(t, map[string]string{
		"include/TNSBridge.h": "#pragma once",
		"libTNSBridge.a":      "binary",
	})

	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	dir := filepath.Join(t.TempDir(), "tns-ios", "0.4.2")
	b := New(&fakeCache{version: "0.4.2", dir: dir}, srv.URL+"/ios/%s/libTNSBridge.zip",
		WithHostOS("darwin"), WithLogger(logging.ForTest(t)))

	downloaded, err := b.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, downloaded)
	assert.Equal(t, "/ios/0.4.2/libTNSBridge.zip", gotPath)

	assert.FileExists(t, filepath.Join(dir, "libTNSBridge.zip"))
	data, err := os.ReadFile(filepath.Join(dir, "include", "TNSBridge.h"))
	require.NoError(t, err)
	assert.Equal(t, "#pragma once", string(data))
}

func TestBootstrapper_SkipsWhenCached(t *testing.T) {
	dir := t.TempDir()
	b := New(&fakeCache{version: "0.4.2", dir: dir}, "http://127.0.0.1:0/%s", WithHostOS("darwin"))

	downloaded, err := b.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, downloaded)
}

func TestBootstrapper_SkipsOffDarwin(t *testing.T) {
	for _, goos := range []string{"linux", "windows"} {
		t.Run(goos, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "missing")
			b := New(&fakeCache{version: "1.0.0", dir: dir}, "http://127.0.0.1:0/%s", WithHostOS(goos))

			downloaded, err := b.Run(context.Background())
			require.NoError(t, err)
			assert.False(t, downloaded)
			assert.NoDirExists(t, dir)
		})
	}
}

func TestBootstrapper_DownloadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	dir := filepath.Join(t.TempDir(), "0.4.2")
	b := New(&fakeCache{version: "0.4.2", dir: dir}, srv.URL+"/%s", WithHostOS("darwin"))

	_, err := b.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.NoDirExists(t, dir)
}

func TestBootstrapper_RetriesAfterBadArchive(t *testing.T) {
	good := buildZip(t, map[string]string{"libTNSBridge.a": "binary"})
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			_, _ = w.Write([]byte("not a zip"))
			return
		}
		_, _ = w.Write(good)
	}))
	defer srv.Close()

	parent := t.TempDir()
	dir := filepath.Join(parent, "0.4.2")
	b := New(&fakeCache{version: "0.4.2", dir: dir}, srv.URL+"/%s", WithHostOS("darwin"))

	_, err := b.Run(context.Background())
	require.Error(t, err)
	assert.NoDirExists(t, dir)
	entries, err := os.ReadDir(parent)
	require.NoError(t, err)
	assert.Empty(t, entries, "staging directory left behind")

	downloaded, err := b.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, downloaded)
	assert.FileExists(t, filepath.Join(dir, "libTNSBridge.a"))
	assert.Equal(t, 2, calls)
}

func TestUnzip_RejectsTraversal(t *testing.T) {
	tmp := t.TempDir()
	archive := filepath.Join(tmp, "evil.zip")
	require.NoError(t, os.WriteFile(archive, buildZip(t, map[string]string{"../escape.txt": "x"}), 0o644))

	dest := filepath.Join(tmp, "out")
	require.NoError(t, os.MkdirAll(dest, 0o755))

	err := Unzip(archive, dest)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsafeArchivePath))
	assert.NoFileExists(t, filepath.Join(tmp, "escape.txt"))
}

func TestUnzip_NotAZip(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "broken.zip")
	require.NoError(t, os.WriteFile(archive, []byte("not a zip"), 0o644))
	assert.Error(t, Unzip(archive, t.TempDir()))
}
