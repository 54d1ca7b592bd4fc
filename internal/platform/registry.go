package platform

import (
	"path/filepath"
	"slices"

	"github.com/thoreinstein/tns/internal/errors"
	"github.com/thoreinstein/tns/internal/paths"
)

// Sentinel errors for registry construction.
var (
	// ErrPlatformAlreadyRegistered is returned when two definitions share
	// a key.
	ErrPlatformAlreadyRegistered = errors.New("platform already registered")

	// ErrInvalidPlatformName is returned for an empty key.
	ErrInvalidPlatformName = errors.New("invalid platform name")

	// ErrMissingService is returned for a definition without a service.
	ErrMissingService = errors.New("platform definition has no project service")
)

// Framework package names.
const (
	IOSFrameworkPackage     = "tns-ios"
	AndroidFrameworkPackage = "tns-android"
)

// Registry is an ordered, immutable set of platform definitions.
type Registry struct {
	keys []string
	defs map[string]Definition
}

// NewRegistry creates a registry from defs, preserving their order.
func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{
		keys: make([]string, 0, len(defs)),
		defs: make(map[string]Definition, len(defs)),
	}

	for _, d := range defs {
		if d.Key == "" {
			return nil, ErrInvalidPlatformName
		}
		if d.Service == nil {
			return nil, errors.Wrapf(ErrMissingService, "%s", d.Key)
		}
		if _, exists := r.defs[d.Key]; exists {
			return nil, errors.Wrapf(ErrPlatformAlreadyRegistered, "%s", d.Key)
		}
		d.TargetedOS = slices.Clone(d.TargetedOS)
		r.keys = append(r.keys, d.Key)
		r.defs[d.Key] = d
	}

	return r, nil
}

// NewDefaultRegistry registers iOS and Android rooted under platformsDir.
func NewDefaultRegistry(platformsDir string, ios, android ProjectService) (*Registry, error) {
	iosRoot := paths.PlatformRoot(platformsDir, paths.PlatformIOS)
	androidRoot := paths.PlatformRoot(platformsDir, paths.PlatformAndroid)

	return NewRegistry(
		Definition{
			Key:                  paths.PlatformIOS,
			FrameworkPackageName: IOSFrameworkPackage,
			DisplayName:          "iOS",
			ProjectRoot:          iosRoot,
			BuildOutputPath:      filepath.Join(iosRoot, "build"),
			TargetedOS:           []string{"darwin"},
			Service:              ios,
		},
		Definition{
			Key:                  paths.PlatformAndroid,
			FrameworkPackageName: AndroidFrameworkPackage,
			DisplayName:          "Android",
			ProjectRoot:          androidRoot,
			BuildOutputPath:      filepath.Join(androidRoot, "bin"),
			Service:              android,
		},
	)
}

// Keys returns the registered keys in registration order.
func (r *Registry) Keys() []string {
	return slices.Clone(r.keys)
}

// Lookup returns the definition registered under key.
func (r *Registry) Lookup(key string) (Definition, bool) {
	d, ok := r.defs[key]
	if ok {
		d.TargetedOS = slices.Clone(d.TargetedOS)
	}
	return d, ok
}

// Supported reports whether key is registered and buildable on hostOS.
func (r *Registry) Supported(key, hostOS string) bool {
	d, ok := r.defs[key]
	return ok && d.SupportsOS(hostOS)
}
