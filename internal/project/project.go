// Package project loads and creates the .tnsproject descriptor that marks
// the root of an app.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/thoreinstein/tns/internal/errors"
	"github.com/thoreinstein/tns/internal/paths"
	"github.com/thoreinstein/tns/pkg/fileutil"
)

// DefaultIDPrefix is prepended to the project name when no ID is given.
const DefaultIDPrefix = "org.nativescript."

// Sentinel errors.
var (
	// ErrNotFound is returned when no descriptor exists at or above the
	// search directory, or when it has been removed since loading.
	ErrNotFound = errors.New("no project found")

	// ErrExists is returned by Create when the target directory exists.
	ErrExists = errors.New("project directory already exists")

	// ErrInvalidID is returned for an ID that is not reverse-DNS.
	ErrInvalidID = errors.New("invalid project id")

	// ErrInvalidName is returned for an empty or path-like project name.
	ErrInvalidName = errors.New("invalid project name")
)

var idPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*(\.[A-Za-z0-9_]+)+$`)

// Project describes an app on disk.
type Project struct {
	// Dir is the directory holding the descriptor.
	Dir string
	// Name is the base name of Dir.
	Name string
	// ID is the reverse-DNS application identifier.
	ID string
}

type descriptor struct {
	ID string `json:"id"`
}

// FilePath returns the descriptor's path.
func (p *Project) FilePath() string {
	return paths.ProjectFile(p.Dir)
}

// PlatformsDir returns the directory holding native platform projects.
func (p *Project) PlatformsDir() string {
	return paths.PlatformsDir(p.Dir)
}

// AppDir returns the directory holding the app's shared sources.
func (p *Project) AppDir() string {
	return paths.AppDir(p.Dir)
}

// Ensure fails with ErrNotFound when the descriptor no longer exists.
func (p *Project) Ensure() error {
	ok, err := paths.Exists(p.FilePath())
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(ErrNotFound, "%s", p.Dir)
	}
	return nil
}

// Load searches dir and its parents for a descriptor.
func Load(dir string) (*Project, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving %s", dir)
	}

	for cur := abs; ; {
		file := paths.ProjectFile(cur)
		data, err := os.ReadFile(file)
		switch {
		case err == nil:
			return parse(cur, data)
		case !os.IsNotExist(err):
			return nil, errors.Wrapf(err, "reading %s", file)
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return nil, errors.Wrapf(ErrNotFound, "searched from %s", abs)
		}
		cur = parent
	}
}

func parse(dir string, data []byte) (*Project, error) {
	var d descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", paths.ProjectFile(dir))
	}
	if err := ValidateID(d.ID); err != nil {
		return nil, errors.Wrapf(err, "in %s", paths.ProjectFile(dir))
	}
	return &Project{
		Dir:  dir,
		Name: filepath.Base(dir),
		ID:   d.ID,
	}, nil
}

// Create scaffolds <parent>/<name> with an empty app directory and a
// descriptor. An empty id defaults to DefaultIDPrefix + name.
func Create(parent, name, id string) (*Project, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if id == "" {
		id = DefaultIDPrefix + name
	}
	if err := ValidateID(id); err != nil {
		return nil, err
	}

	dir, err := filepath.Abs(filepath.Join(parent, name))
	if err != nil {
		return nil, errors.Wrapf(err, "resolving %s", name)
	}
	exists, err := paths.Exists(dir)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.Wrapf(ErrExists, "%s", dir)
	}

	p := &Project{Dir: dir, Name: name, ID: id}
	if err := paths.EnsureDir(p.AppDir(), paths.DefaultDirPerm); err != nil {
		return nil, err
	}
	if err := fileutil.AtomicWriteJSON(p.FilePath(), descriptor{ID: id}); err != nil {
		return nil, errors.Wrap(err, "writing project descriptor")
	}
	return p, nil
}

// ValidateName rejects empty names and names that are not a single path
// element.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.Wrap(ErrInvalidName, "name cannot be empty")
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return errors.Wrapf(ErrInvalidName, "%q", name)
	}
	return nil
}

// ValidateID checks the reverse-DNS grammar.
func ValidateID(id string) error {
	if !idPattern.MatchString(id) {
		return errors.Wrapf(ErrInvalidID, "%q must look like com.company.App", id)
	}
	return nil
}
