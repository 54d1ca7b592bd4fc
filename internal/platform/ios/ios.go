// Package ios implements platform.ProjectService for Xcode projects.
package ios

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/thoreinstein/tns/internal/errors"
	"github.com/thoreinstein/tns/internal/logging"
	"github.com/thoreinstein/tns/internal/paths"
	"github.com/thoreinstein/tns/internal/platform"
	"github.com/thoreinstein/tns/internal/project"
	"github.com/thoreinstein/tns/internal/toolchain"
	"github.com/thoreinstein/tns/pkg/fileutil"
)

// MinXcodeVersion is the oldest supported Xcode release.
const MinXcodeVersion = "5.0"

const xcodeProjectExt = ".xcodeproj"

// Validation errors.
var (
	// ErrXcodeNotInstalled is returned when xcodebuild is not on PATH.
	ErrXcodeNotInstalled = errors.New("Xcode is not installed. Make sure you have Xcode installed and added to your PATH")

	// ErrXcodeTooOld is returned when the installed Xcode is older than
	// MinXcodeVersion.
	ErrXcodeTooOld = errors.Newf("NativeScript can only run in Xcode version %s or greater", MinXcodeVersion)
)

// Service is the iOS platform.ProjectService.
type Service struct {
	project *project.Project
	runner  toolchain.Runner
	logger  *slog.Logger
}

var _ platform.ProjectService = (*Service)(nil)

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// New creates the iOS service for proj.
func New(proj *project.Project, runner toolchain.Runner, opts ...Option) *Service {
	s := &Service{project: proj, runner: runner, logger: logging.NewDiscard()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate implements platform.ProjectService.
func (s *Service) Validate(ctx context.Context) error {
	if _, err := s.runner.LookPath("xcodebuild"); err != nil {
		return ErrXcodeNotInstalled
	}

	res, err := s.runner.Output(ctx, "xcodebuild", "-version")
	if err != nil {
		return errors.Wrap(err, "reading Xcode version")
	}
	if res.ExitCode != 0 {
		return errors.WithDetail(
			errors.Newf("xcodebuild -version exited with code %d", res.ExitCode),
			strings.TrimSpace(res.Stderr),
		)
	}

	version := ParseXcodeVersion(res.Stdout)
	s.logger.Debug("xcode version", "version", version)
	if !AtLeast(version, MinXcodeVersion) {
		return errors.WithDetailf(ErrXcodeTooOld, "found Xcode %q", version)
	}
	return nil
}

// ParseXcodeVersion extracts the version from the first line of
// "xcodebuild -version" output ("Xcode 5.1.1").
func ParseXcodeVersion(output string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(output), "\n")
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(first), "Xcode"))
}

// AtLeast compares dotted numeric versions. Unparseable versions are
// never at least min.
func AtLeast(version, minimum string) bool {
	v, m := canonical(version), canonical(minimum)
	if v == "" || m == "" {
		return false
	}
	return semver.Compare(v, m) >= 0
}

// canonical maps "5", "5.1" or "5.1.1" to the semver form semver.Compare
// accepts, or "" when the version is not numeric.
func canonical(version string) string {
	v := "v" + strings.TrimSpace(version)
	if !semver.IsValid(v) {
		return ""
	}
	return semver.Canonical(v)
}

// CreateProject implements platform.ProjectService.
func (s *Service) CreateProject(_ context.Context, root, frameworkDir string) error {
	if err := paths.EnsureDir(root, paths.DefaultDirPerm); err != nil {
		return err
	}
	return fileutil.CopyDirContents(frameworkDir, root)
}

// InterpolateData implements platform.ProjectService.
func (s *Service) InterpolateData(_ context.Context, root string) error {
	placeholderDir := filepath.Join(root, paths.IOSProjectNamePlaceholder)

	for _, suffix := range []string{"-Info.plist", "-Prefix.pch"} {
		if err := s.renamePlaceholder(placeholderDir, suffix); err != nil {
			return err
		}
	}
	if err := s.renamePlaceholder(root, xcodeProjectExt); err != nil {
		return err
	}

	pbxproj := filepath.Join(root, s.project.Name+xcodeProjectExt, "project.pbxproj")
	return fileutil.ReplaceInFile(pbxproj, paths.IOSProjectNamePlaceholder, s.project.Name)
}

func (s *Service) renamePlaceholder(dir, suffix string) error {
	from := filepath.Join(dir, paths.IOSProjectNamePlaceholder+suffix)
	to := filepath.Join(dir, s.project.Name+suffix)
	if err := os.Rename(from, to); err != nil {
		return errors.Wrapf(err, "renaming %s", from)
	}
	return nil
}

// AfterCreateProject implements platform.ProjectService.
func (s *Service) AfterCreateProject(_ context.Context, root string) error {
	from := filepath.Join(root, paths.IOSProjectNamePlaceholder)
	to := filepath.Join(root, s.project.Name)
	if err := os.Rename(from, to); err != nil {
		return errors.Wrapf(err, "renaming %s", from)
	}
	return nil
}

// PrepareProject implements platform.ProjectService. iOS stages nothing.
func (s *Service) PrepareProject(context.Context, string, []string) (string, error) {
	return "", nil
}

// BuildProject implements platform.ProjectService.
func (s *Service) BuildProject(ctx context.Context, root string) error {
	return s.runner.Stream(ctx, "xcodebuild", BuildArgs(root, s.project.Name)...)
}

// BuildArgs returns the xcodebuild argv for a device release build.
func BuildArgs(root, name string) []string {
	return []string{
		"-xcconfig", filepath.Join(root, "build.xcconfig"),
		"-project", filepath.Join(root, name+xcodeProjectExt),
		"-target", name,
		"-configuration", "Release",
		"-sdk", "iphoneos",
		"build",
		"ARCHS=armv7 armv7s arm64",
		"VALID_ARCHS=armv7 armv7s arm64",
		"CONFIGURATION_BUILD_DIR=" + filepath.Join(root, "build"),
	}
}
