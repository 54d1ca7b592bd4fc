package android

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/thoreinstein/tns/internal/errors"
	"github.com/thoreinstein/tns/internal/logging"
	"github.com/thoreinstein/tns/internal/paths"
	"github.com/thoreinstein/tns/internal/platform"
	"github.com/thoreinstein/tns/internal/platformfile"
	"github.com/thoreinstein/tns/internal/project"
	"github.com/thoreinstein/tns/internal/properties"
	"github.com/thoreinstein/tns/internal/toolchain"
	"github.com/thoreinstein/tns/pkg/fileutil"
)

// ErrMissingTarget is returned when the framework's API target is not
// installed in the local SDK.
var ErrMissingTarget = errors.New("android target not installed")

// Template entries copied from the framework package.
var (
	templateDirs  = []string{"assets", "gen", "libs", "res"}
	templateFiles = []string{".project", "AndroidManifest.xml", "project.properties"}
)

const (
	placeholderName          = "__NAME__"
	placeholderTitleActivity = "__TITLE_ACTIVITY__"
	placeholderPackage       = "__PACKAGE__"
)

// Service is the Android platform.ProjectService.
type Service struct {
	project *project.Project
	runner  toolchain.Runner
	release bool
	hostOS  string
	logger  *slog.Logger
}

var _ platform.ProjectService = (*Service)(nil)

// Option configures a Service.
type Option func(*Service)

// WithRelease selects the release build configuration.
func WithRelease(release bool) Option {
	return func(s *Service) { s.release = release }
}

// WithHostOS overrides runtime.GOOS.
func WithHostOS(goos string) Option {
	return func(s *Service) { s.hostOS = goos }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// New creates the Android service for proj.
func New(proj *project.Project, runner toolchain.Runner, opts ...Option) *Service {
	s := &Service{
		project: proj,
		runner:  runner,
		hostOS:  runtime.GOOS,
		logger:  logging.NewDiscard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateProject implements platform.ProjectService.
func (s *Service) CreateProject(ctx context.Context, root, frameworkDir string) error {
	if err := s.validateTarget(ctx, frameworkDir); err != nil {
		return err
	}

	if err := paths.EnsureDir(root, paths.DefaultDirPerm); err != nil {
		return err
	}

	for _, name := range templateDirs {
		src := filepath.Join(frameworkDir, name)
		ok, err := paths.Exists(src)
		if err != nil {
			return err
		}
		if !ok {
			s.logger.Debug("framework directory absent, skipping", "dir", src)
			continue
		}
		if err := fileutil.CopyDir(src, filepath.Join(root, name)); err != nil {
			return err
		}
	}

	for _, name := range templateFiles {
		if err := fileutil.CopyFile(filepath.Join(frameworkDir, name), filepath.Join(root, name)); err != nil {
			return err
		}
	}

	activityDir := filepath.Join(append([]string{root, "src"}, strings.Split(s.project.ID, ".")...)...)
	return paths.EnsureDir(activityDir, paths.DefaultDirPerm)
}

// validateTarget checks that the framework's API target appears in the
// SDK's installed targets.
func (s *Service) validateTarget(ctx context.Context, frameworkDir string) error {
	target, err := s.readTarget(ctx, frameworkDir)
	if err != nil {
		return err
	}

	installed, err := s.listTargets(ctx)
	if err != nil {
		return err
	}
	if strings.Contains(installed, target) {
		return nil
	}

	api := target
	if _, after, ok := strings.Cut(target, "-"); ok {
		api = after
	}
	return errors.Mark(errors.Newf(
		"Please install Android target %s (the Android newest SDK). Make sure you have the latest Android tools "+
			"installed as well. Run \"android\" from your command-line to install/update any missing SDKs or tools.",
		api), ErrMissingTarget)
}

// InterpolateData implements platform.ProjectService.
func (s *Service) InterpolateData(_ context.Context, root string) error {
	name := s.project.Name

	stringsFile := filepath.Join(root, "res", "values", "strings.xml")
	if err := fileutil.ReplaceInFile(stringsFile, placeholderName, name, placeholderTitleActivity, name); err != nil {
		return err
	}
	if err := fileutil.ReplaceInFile(filepath.Join(root, ".project"), placeholderName, name); err != nil {
		return err
	}
	return fileutil.ReplaceInFile(filepath.Join(root, "AndroidManifest.xml"), placeholderPackage, s.project.ID)
}

// AfterCreateProject implements platform.ProjectService.
func (s *Service) AfterCreateProject(ctx context.Context, root string) error {
	target, err := s.readTarget(ctx, root)
	if err != nil {
		return err
	}
	s.logger.Log(ctx, logging.LevelTrace, "android target", "target", target)

	return s.stream(ctx, "android", "update", "project", "--path", root, "--target", target)
}

// PrepareProject implements platform.ProjectService.
func (s *Service) PrepareProject(ctx context.Context, displayName string, platformKeys []string) (string, error) {
	key := strings.ToLower(displayName)
	platformRoot := paths.PlatformRoot(s.project.PlatformsDir(), key)
	stagedApp := filepath.Join(platformRoot, "assets", paths.AppDirName)

	if err := os.RemoveAll(stagedApp); err != nil {
		return "", errors.Wrapf(err, "clearing %s", stagedApp)
	}
	if err := fileutil.CopyDir(s.project.AppDir(), stagedApp); err != nil {
		return "", err
	}

	resources := filepath.Join(stagedApp, paths.AppResourcesDirName)
	ok, err := paths.Exists(resources)
	if err != nil {
		return "", err
	}
	if ok {
		if err := s.stageResources(filepath.Join(resources, displayName), filepath.Join(platformRoot, "res")); err != nil {
			return "", err
		}
		if err := os.RemoveAll(resources); err != nil {
			return "", errors.Wrapf(err, "removing %s", resources)
		}
	}

	resolver := platformfile.NewResolver(platformKeys).WithLogger(s.logger)
	if err := resolver.Apply(stagedApp, key); err != nil {
		return "", err
	}

	s.logger.Log(ctx, logging.LevelTrace, "app staged", "dir", stagedApp)
	return stagedApp, nil
}

func (s *Service) stageResources(src, dst string) error {
	ok, err := paths.Exists(src)
	if err != nil || !ok {
		return err
	}
	if err := paths.EnsureDir(dst, paths.DefaultDirPerm); err != nil {
		return err
	}
	return fileutil.CopyDirContents(src, dst)
}

// BuildProject implements platform.ProjectService.
func (s *Service) BuildProject(ctx context.Context, root string) error {
	configuration := "debug"
	if s.release {
		configuration = "release"
	}
	return s.stream(ctx, "ant", configuration, "-f", filepath.Join(root, "build.xml"))
}

// command returns the argv used to launch name on the host. On windows
// the SDK tools are batch files and are run through cmd.
func (s *Service) command(name string, args ...string) (string, []string) {
	if s.hostOS == "windows" {
		return "cmd", append([]string{"/s", "/c", name}, args...)
	}
	return name, args
}

func (s *Service) stream(ctx context.Context, name string, args ...string) error {
	cmd, argv := s.command(name, args...)
	return s.runner.Stream(ctx, cmd, argv...)
}

// readTarget returns the "target" entry of dir/project.properties, or ""
// when the file or the entry is absent.
func (s *Service) readTarget(ctx context.Context, dir string) (string, error) {
	file := filepath.Join(dir, "project.properties")
	ok, err := paths.Exists(file)
	if err != nil || !ok {
		return "", err
	}
	props, err := properties.Load(file)
	if err != nil {
		return "", err
	}
	target, ok := props.Lookup("target")
	if !ok {
		s.logger.DebugContext(ctx, "no android target set", "file", props.Path())
	}
	return target, nil
}
