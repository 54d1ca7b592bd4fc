package bootstrap

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/tns/internal/paths"
)

// ErrUnsafeArchivePath is returned for archive entries that would be
// written outside the destination directory.
var ErrUnsafeArchivePath = errors.New("archive entry escapes destination")

// Unzip extracts the zip archive at src into dest.
func Unzip(src, dest string) error {
	r, err := zip.OpenReader(src)
	if errors.Is(err, zip.ErrInsecurePath) {
		_ = r.Close()
		return errors.Wrapf(ErrUnsafeArchivePath, "%s", src)
	}
	if err != nil {
		return errors.Wrapf(err, "opening %s", src)
	}
	defer r.Close()

	root, err := filepath.Abs(dest)
	if err != nil {
		return errors.Wrap(err, "resolving destination")
	}

	for _, f := range r.File {
		target := filepath.Join(root, filepath.FromSlash(f.Name))
		if target != root && !strings.HasPrefix(target, root+string(filepath.Separator)) {
			return errors.Wrapf(ErrUnsafeArchivePath, "%s", f.Name)
		}

		if f.FileInfo().IsDir() {
			if err := paths.EnsureDir(target, paths.DefaultDirPerm); err != nil {
				return errors.Wrapf(err, "creating %s", target)
			}
			continue
		}
		if err := extractFile(f, target); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(f *zip.File, target string) error {
	if err := paths.EnsureDir(filepath.Dir(target), paths.DefaultDirPerm); err != nil {
		return errors.Wrapf(err, "creating %s", filepath.Dir(target))
	}

	rc, err := f.Open()
	if err != nil {
		return errors.Wrapf(err, "opening entry %s", f.Name)
	}
	defer rc.Close()

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return errors.Wrapf(err, "creating %s", target)
	}
	if _, err := io.Copy(out, rc); err != nil {
		_ = out.Close()
		return errors.Wrapf(err, "extracting %s", f.Name)
	}
	return errors.Wrapf(out.Close(), "closing %s", target)
}
