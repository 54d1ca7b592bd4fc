// Package versioning resolves the latest published framework version and
// the profile directory that caches its artifacts. Lookups are memoised
// for the lifetime of the Cache; nothing is ever invalidated.
package versioning

import (
	"context"
	"path/filepath"

	"github.com/cockroachdb/errors"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/thoreinstein/tns/internal/paths"
)

// cacheSize is far above the number of framework packages, so entries
// are never evicted.
const cacheSize = 64

// VersionSource returns the latest published version of a package.
type VersionSource interface {
	Latest(ctx context.Context, name string) (string, error)
}

// Cache memoises framework versions and their cache directories.
type Cache struct {
	source     VersionSource
	profileDir string
	versions   *lru.Cache[string, string]
	dirs       *lru.Cache[string, string]
}

// NewCache creates a cache backed by source, placing framework
// directories under profileDir.
func NewCache(source VersionSource, profileDir string) (*Cache, error) {
	if profileDir == "" {
		return nil, errors.New("profile directory is required")
	}
	versions, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "creating version cache")
	}
	dirs, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "creating directory cache")
	}
	return &Cache{
		source:     source,
		profileDir: profileDir,
		versions:   versions,
		dirs:       dirs,
	}, nil
}

// LatestFrameworkVersion returns the registry's latest version of pkg.
// The registry is queried at most once per package.
func (c *Cache) LatestFrameworkVersion(ctx context.Context, pkg string) (string, error) {
	if v, ok := c.versions.Get(pkg); ok {
		return v, nil
	}
	v, err := c.source.Latest(ctx, pkg)
	if err != nil {
		return "", errors.Wrapf(err, "resolving latest %s version", pkg)
	}
	c.versions.Add(pkg, v)
	return v, nil
}

// CachedFrameworkDir ensures <profileDir>/<pkg> exists and returns
// <profileDir>/<pkg>/<latest version>. The version directory itself is
// not created.
func (c *Cache) CachedFrameworkDir(ctx context.Context, pkg string) (string, error) {
	if d, ok := c.dirs.Get(pkg); ok {
		return d, nil
	}

	version, err := c.LatestFrameworkVersion(ctx, pkg)
	if err != nil {
		return "", err
	}

	pkgDir := filepath.Join(c.profileDir, pkg)
	if err := paths.EnsureDir(pkgDir, paths.DefaultDirPerm); err != nil {
		return "", errors.Wrapf(err, "creating %s", pkgDir)
	}

	dir := filepath.Join(pkgDir, version)
	c.dirs.Add(pkg, dir)
	return dir, nil
}
