// Package platformfile resolves the <base>.<platform>.<ext> naming
// convention that marks app files as belonging to a single platform.
//
// A file named icon.android.png is shipped to Android as icon.png and
// removed from every other platform's staged copy. Files without a
// platform tag are shared and left untouched.
package platformfile

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/tns/internal/logging"
	"github.com/thoreinstein/tns/pkg/fileutil"
)

// Match describes a platform-tagged file name.
type Match struct {
	// Platform is the lowercase platform key found in the name.
	Platform string
	// OnDeviceName is the name with the platform segment removed.
	OnDeviceName string
}

// Resolver matches file names against a fixed set of platform keys.
type Resolver struct {
	pattern *regexp.Regexp
	logger  *slog.Logger
}

// NewResolver builds a resolver recognising keys. Matching is
// case-insensitive and the base name is matched non-greedily so that
// a.b.ios.png resolves to platform ios and on-device name a.b.png.
func NewResolver(keys []string) *Resolver {
	quoted := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(k))
	}
	r := &Resolver{logger: logging.NewDiscard()}
	if len(quoted) > 0 {
		r.pattern = regexp.MustCompile(`(?i)^(.+?)\.(` + strings.Join(quoted, "|") + `)(\..+?)$`)
	}
	return r
}

// WithLogger returns a copy of r that traces per-file decisions to logger.
func (r *Resolver) WithLogger(logger *slog.Logger) *Resolver {
	c := *r
	c.logger = logger
	return &c
}

// Resolve parses a base file name. The second result is false when the
// name carries no platform tag.
func (r *Resolver) Resolve(fileName string) (Match, bool) {
	if r.pattern == nil {
		return Match{}, false
	}
	m := r.pattern.FindStringSubmatch(fileName)
	if m == nil {
		return Match{}, false
	}
	return Match{
		Platform:     strings.ToLower(m[2]),
		OnDeviceName: m[1] + m[3],
	}, true
}

// Apply walks dir and prepares it for platform: files tagged for another
// platform are deleted and files tagged for platform are renamed to their
// on-device name. platform must already be lowercase.
func (r *Resolver) Apply(dir, platform string) error {
	files, err := fileutil.ListFiles(dir)
	if err != nil {
		return err
	}

	for _, path := range files {
		m, ok := r.Resolve(filepath.Base(path))
		if !ok {
			continue
		}

		if m.Platform != platform {
			r.logger.Log(context.Background(), logging.LevelTrace, "excluding file", "path", path, "platform", m.Platform)
			if err := os.Remove(path); err != nil {
				return errors.Wrapf(err, "removing %s", path)
			}
			continue
		}

		target := filepath.Join(filepath.Dir(path), m.OnDeviceName)
		r.logger.Log(context.Background(), logging.LevelTrace, "renaming file", "from", path, "to", target)
		if err := os.Rename(path, target); err != nil {
			return errors.Wrapf(err, "renaming %s", path)
		}
	}
	return nil
}
