package platform

import (
	"context"
	"slices"
)

// AnyOS marks a definition buildable on every host.
const AnyOS = "*"

// ProjectService implements the platform-specific steps of the add,
// prepare and build workflows.
type ProjectService interface {
	// Validate checks the project's identity and the platform toolchain.
	Validate(ctx context.Context) error

	// CreateProject scaffolds the native project into root from the
	// framework template at frameworkDir.
	CreateProject(ctx context.Context, root, frameworkDir string) error

	// InterpolateData substitutes the project's name and ID into the
	// scaffolded template.
	InterpolateData(ctx context.Context, root string) error

	// AfterCreateProject runs any post-scaffold step.
	AfterCreateProject(ctx context.Context, root string) error

	// PrepareProject stages the app's files into the native project and
	// returns where they were placed ("" when the platform stages
	// nothing). platformKeys lists every registered key.
	PrepareProject(ctx context.Context, displayName string, platformKeys []string) (string, error)

	// BuildProject runs the native build for the project at root.
	BuildProject(ctx context.Context, root string) error
}

// Definition describes a supported platform.
type Definition struct {
	// Key is the lowercase platform identifier.
	Key string
	// FrameworkPackageName is the npm package holding the project template.
	FrameworkPackageName string
	// DisplayName is the normalized name, e.g. "iOS".
	DisplayName string
	// ProjectRoot is <platformsDir>/<key>.
	ProjectRoot string
	// BuildOutputPath is where native build artifacts land.
	BuildOutputPath string
	// TargetedOS lists the GOOS values the platform builds on. Empty or
	// containing AnyOS means any host.
	TargetedOS []string
	// Service performs the platform's workflow steps.
	Service ProjectService
}

// SupportsOS reports whether the platform can be built on goos.
func (d Definition) SupportsOS(goos string) bool {
	if len(d.TargetedOS) == 0 {
		return true
	}
	return slices.Contains(d.TargetedOS, AnyOS) || slices.Contains(d.TargetedOS, goos)
}
