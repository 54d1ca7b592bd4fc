// Package bootstrap performs the one-time post-install provisioning of the
// iOS bridge library into the user's profile directory.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/tns/internal/logging"
	"github.com/thoreinstein/tns/internal/paths"
)

// FrameworkPackage is the package whose versions key the bridge cache.
const FrameworkPackage = "tns-ios"

// FrameworkCache resolves the versioned framework directory.
type FrameworkCache interface {
	LatestFrameworkVersion(ctx context.Context, pkg string) (string, error)
	CachedFrameworkDir(ctx context.Context, pkg string) (string, error)
}

// Bootstrapper downloads and unpacks the bridge library.
type Bootstrapper struct {
	cache      FrameworkCache
	bridgeURL  string
	httpClient *http.Client
	hostOS     string
	logger     *slog.Logger
}

// Option configures a Bootstrapper.
type Option func(*Bootstrapper)

// WithHTTPClient replaces the client used for the download.
func WithHTTPClient(hc *http.Client) Option {
	return func(b *Bootstrapper) { b.httpClient = hc }
}

// WithHostOS overrides runtime.GOOS.
func WithHostOS(goos string) Option {
	return func(b *Bootstrapper) { b.hostOS = goos }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bootstrapper) { b.logger = logger }
}

// New creates a Bootstrapper. bridgeURL must contain a single %s that is
// replaced by the framework version.
func New(cache FrameworkCache, bridgeURL string, opts ...Option) *Bootstrapper {
	b := &Bootstrapper{
		cache:      cache,
		bridgeURL:  bridgeURL,
		httpClient: http.DefaultClient,
		hostOS:     runtime.GOOS,
		logger:     logging.NewDiscard(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run provisions the bridge library. It is a no-op off darwin and when
// the version directory already exists. It returns whether anything was
// downloaded.
func (b *Bootstrapper) Run(ctx context.Context) (bool, error) {
	if b.hostOS != "darwin" {
		b.logger.Debug("skipping bridge bootstrap", "os", b.hostOS)
		return false, nil
	}

	dir, err := b.cache.CachedFrameworkDir(ctx, FrameworkPackage)
	if err != nil {
		return false, err
	}
	exists, err := paths.Exists(dir)
	if err != nil {
		return false, err
	}
	if exists {
		b.logger.Debug("bridge already cached", "dir", dir)
		return false, nil
	}

	version, err := b.cache.LatestFrameworkVersion(ctx, FrameworkPackage)
	if err != nil {
		return false, err
	}

	// Stage next to dir and rename into place so a failed download never
	// leaves a directory that later runs would treat as cached.
	parent := filepath.Dir(dir)
	if err := paths.EnsureDir(parent, paths.DefaultDirPerm); err != nil {
		return false, errors.Wrapf(err, "creating %s", parent)
	}
	staging, err := os.MkdirTemp(parent, "."+filepath.Base(dir)+"-*")
	if err != nil {
		return false, errors.Wrap(err, "creating staging directory")
	}
	defer os.RemoveAll(staging)

	archive := filepath.Join(staging, paths.IOSBridgeFileName)
	url := fmt.Sprintf(b.bridgeURL, version)
	b.logger.Info("downloading bridge", "url", url, "dest", dir)
	if err := b.download(ctx, url, archive); err != nil {
		return false, err
	}
	if err := Unzip(archive, staging); err != nil {
		return false, err
	}

	if err := os.Chmod(staging, paths.DefaultDirPerm); err != nil {
		return false, errors.Wrapf(err, "setting permissions on %s", staging)
	}
	if err := os.Rename(staging, dir); err != nil {
		return false, errors.Wrapf(err, "moving bridge into %s", dir)
	}
	return true, nil
}

func (b *Bootstrapper) download(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "building download request")
	}
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "downloading %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Newf("downloading %s: %s", url, resp.Status)
	}

	f, err := os.Create(dest)
	if err != nil {
		return errors.Wrapf(err, "creating %s", dest)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "writing %s", dest)
	}
	return errors.Wrapf(f.Close(), "closing %s", dest)
}
