package platformsvc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/thoreinstein/tns/internal/errors"
	"github.com/thoreinstein/tns/internal/logging"
	"github.com/thoreinstein/tns/internal/npm"
	"github.com/thoreinstein/tns/internal/paths"
	"github.com/thoreinstein/tns/internal/platform"
	"github.com/thoreinstein/tns/internal/project"
)

// Sentinel errors. Each is wrapped with the user-facing message.
var (
	ErrNoPlatform          = errors.New("no platform specified")
	ErrInvalidPlatform     = errors.New("invalid platform")
	ErrUnsupportedPlatform = errors.New("platform not supported on this OS")
	ErrPlatformExists      = errors.New("platform already added")
	ErrNotImplemented      = errors.New("not implemented")
)

// Service runs platform workflows for one project.
type Service struct {
	project   *project.Project
	registry  *platform.Registry
	installer npm.Installer
	logger    *slog.Logger
	out       io.Writer
	hostOS    string
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for trace output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithOutput sets where user-facing progress lines are written.
func WithOutput(w io.Writer) Option {
	return func(s *Service) { s.out = w }
}

// WithHostOS overrides runtime.GOOS for support checks.
func WithHostOS(goos string) Option {
	return func(s *Service) { s.hostOS = goos }
}

// New creates a Service.
func New(proj *project.Project, registry *platform.Registry, installer npm.Installer, opts ...Option) *Service {
	s := &Service{
		project:   proj,
		registry:  registry,
		installer: installer,
		logger:    logging.NewDiscard(),
		out:       os.Stdout,
		hostOS:    runtime.GOOS,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddPlatforms adds each platform in order, stopping at the first
// failure. Platforms added before the failure are kept.
func (s *Service) AddPlatforms(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return errors.Mark(errors.New("No platform specified. Please specify a platform to add"), ErrNoPlatform)
	}

	if err := s.project.Ensure(); err != nil {
		return err
	}
	if err := paths.EnsureDir(s.project.PlatformsDir(), paths.DefaultDirPerm); err != nil {
		return err
	}

	for _, key := range keys {
		if err := s.AddPlatform(ctx, strings.ToLower(key)); err != nil {
			return err
		}
	}
	return nil
}

// AddPlatform fetches the platform's framework package and scaffolds its
// native project. key may carry an @version suffix, which is parsed and
// ignored.
func (s *Service) AddPlatform(ctx context.Context, key string) error {
	key, version := splitVersion(key)
	if version != "" {
		s.logger.Debug("platform version requested, using latest", "platform", key, "version", version)
	}

	def, err := s.validate(key)
	if err != nil {
		return err
	}

	exists, err := paths.Exists(def.ProjectRoot)
	if err != nil {
		return err
	}
	if exists {
		return errors.Mark(errors.Newf("Platform %s already added", key), ErrPlatformExists)
	}

	svc := def.Service
	if err := svc.Validate(ctx); err != nil {
		return err
	}

	s.logger.Log(ctx, logging.LevelTrace, "creating native project",
		"platform", key,
		"path", def.ProjectRoot,
		"package", s.project.ID,
		"name", s.project.Name,
	)
	s.println("Copying template files...")

	pkgDir, err := s.installer.Install(ctx, def.FrameworkPackageName, def.ProjectRoot)
	if err != nil {
		return err
	}
	frameworkDir := filepath.Join(pkgDir, paths.FrameworkDirName)
	artifacts := snapshotNpmArtifacts(def.ProjectRoot)

	if err := svc.CreateProject(ctx, def.ProjectRoot, frameworkDir); err != nil {
		return err
	}
	if err := removePackage(pkgDir, artifacts); err != nil {
		return err
	}
	if err := svc.InterpolateData(ctx, def.ProjectRoot); err != nil {
		return err
	}
	if err := svc.AfterCreateProject(ctx, def.ProjectRoot); err != nil {
		return err
	}

	s.println("Project successfully created.")
	return nil
}

// npmArtifacts are the bookkeeping files npm 7+ writes under --prefix,
// relative to the prefix.
var npmArtifacts = []string{
	"package.json",
	"package-lock.json",
	filepath.Join("node_modules", ".package-lock.json"),
}

// snapshotNpmArtifacts records the npm bookkeeping files present under
// root right after the install, with their contents.
func snapshotNpmArtifacts(root string) map[string][]byte {
	found := make(map[string][]byte)
	for _, rel := range npmArtifacts {
		path := filepath.Join(root, rel)
		if data, err := os.ReadFile(path); err == nil {
			found[path] = data
		}
	}
	return found
}

// removePackage deletes the fetched package, the npm bookkeeping files in
// artifacts that CreateProject left unchanged, and the node_modules
// parent once nothing else is left in it.
func removePackage(pkgDir string, artifacts map[string][]byte) error {
	if err := os.RemoveAll(pkgDir); err != nil {
		return errors.Wrapf(err, "removing %s", pkgDir)
	}

	for path, before := range artifacts {
		now, err := os.ReadFile(path)
		if err != nil || !bytes.Equal(now, before) {
			continue
		}
		if err := os.Remove(path); err != nil {
			return errors.Wrapf(err, "removing %s", path)
		}
	}

	parent := filepath.Dir(pkgDir)
	if filepath.Base(parent) != "node_modules" {
		return nil
	}
	entries, err := os.ReadDir(parent)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "reading %s", parent)
	}
	if len(entries) > 0 {
		return nil
	}
	return errors.Wrapf(os.Remove(parent), "removing %s", parent)
}

// InstalledPlatforms lists registered platforms with a project directory
// under the platforms directory, in directory order.
func (s *Service) InstalledPlatforms() ([]string, error) {
	entries, err := os.ReadDir(s.project.PlatformsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, errors.Wrap(err, "reading platforms directory")
	}

	keys := s.registry.Keys()
	installed := []string{}
	for _, e := range entries {
		if slices.Contains(keys, e.Name()) {
			installed = append(installed, e.Name())
		}
	}
	return installed, nil
}

// AvailablePlatforms lists registered platforms that are neither
// installed nor unsupported on the host, in registry order.
func (s *Service) AvailablePlatforms() ([]string, error) {
	installed, err := s.InstalledPlatforms()
	if err != nil {
		return nil, err
	}

	available := []string{}
	for _, key := range s.registry.Keys() {
		if !slices.Contains(installed, key) && s.registry.Supported(key, s.hostOS) {
			available = append(available, key)
		}
	}
	return available, nil
}

// PreparePlatform stages the app's files into the platform's project and
// returns where they were placed.
func (s *Service) PreparePlatform(ctx context.Context, key string) (string, error) {
	def, err := s.validate(strings.ToLower(key))
	if err != nil {
		return "", err
	}
	return def.Service.PrepareProject(ctx, def.DisplayName, s.registry.Keys())
}

// BuildPlatform runs the platform's native build.
func (s *Service) BuildPlatform(ctx context.Context, key string) error {
	def, err := s.validate(strings.ToLower(key))
	if err != nil {
		return err
	}
	if err := def.Service.BuildProject(ctx, def.ProjectRoot); err != nil {
		return err
	}
	s.println("Project successfully built")
	return nil
}

// RunPlatform validates key. Deploying to a device is not supported yet.
func (s *Service) RunPlatform(_ context.Context, key string) error {
	if _, err := s.validate(strings.ToLower(key)); err != nil {
		return err
	}
	return errors.Wrapf(ErrNotImplemented, "run %s", key)
}

// Definition returns the validated definition for key.
func (s *Service) Definition(key string) (platform.Definition, error) {
	return s.validate(strings.ToLower(key))
}

func (s *Service) validate(key string) (platform.Definition, error) {
	def, ok := s.registry.Lookup(key)
	if !ok {
		return platform.Definition{}, errors.Mark(
			errors.Newf("Invalid platform %s. Valid platforms are %s.", key, FormatList(s.registry.Keys())),
			ErrInvalidPlatform,
		)
	}
	if !def.SupportsOS(s.hostOS) {
		return platform.Definition{}, errors.Mark(
			errors.Newf("Applications for platform %s can not be built on this OS - %s", key, s.hostOS),
			ErrUnsupportedPlatform,
		)
	}
	return def, nil
}

func (s *Service) println(msg string) {
	_, _ = fmt.Fprintln(s.out, msg)
}

// splitVersion separates "android@1.0.0" into its key and version.
func splitVersion(key string) (string, string) {
	name, version, _ := strings.Cut(key, "@")
	return name, version
}

// FormatList joins names as "a", "a and b" or "a, b and c".
func FormatList(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}
