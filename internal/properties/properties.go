// Package properties reads Java-style .properties files such as the
// project.properties shipped with the Android framework.
package properties

import (
	"github.com/cockroachdb/errors"
	"github.com/magiconair/properties"
)

// File is a parsed properties file.
type File struct {
	path  string
	props *properties.Properties
}

// Load parses the properties file at path.
func Load(path string) (*File, error) {
	// Android tooling reads values verbatim, so ${key} references are
	// left unexpanded.
	loader := properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := loader.LoadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "loading properties %s", path)
	}
	return &File{path: path, props: p}, nil
}

// Path returns the file the properties were read from.
func (f *File) Path() string {
	return f.path
}

// Lookup returns the value for key and whether it was present.
func (f *File) Lookup(key string) (string, bool) {
	return f.props.Get(key)
}
