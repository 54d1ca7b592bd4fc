package fileutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

// ReplaceInFile replaces every occurrence of each old token in path with
// its new value in a single pass; where tokens overlap the earlier old/new
// pair wins. The file keeps its permissions. A token that does not occur
// is not an error.
func ReplaceInFile(path string, oldnew ...string) error {
	if len(oldnew)%2 != 0 {
		return errors.New("ReplaceInFile: odd argument count")
	}

	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "stating %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}

	content := strings.NewReplacer(oldnew...).Replace(string(data))
	if content == string(data) {
		return nil
	}
	return AtomicWriteFile(path, []byte(content), info.Mode().Perm())
}

// ListFiles returns the paths of all regular files below dir, sorted
// lexically. Directories are descended into but not returned.
func ListFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walking %s", dir)
	}
	sort.Strings(files)
	return files, nil
}
