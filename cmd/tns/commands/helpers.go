package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/tns/internal/config"
	"github.com/thoreinstein/tns/internal/errors"
	"github.com/thoreinstein/tns/internal/logging"
	"github.com/thoreinstein/tns/internal/npm"
	"github.com/thoreinstein/tns/internal/paths"
	"github.com/thoreinstein/tns/internal/platform"
	"github.com/thoreinstein/tns/internal/platform/android"
	"github.com/thoreinstein/tns/internal/platform/ios"
	"github.com/thoreinstein/tns/internal/platformsvc"
	"github.com/thoreinstein/tns/internal/project"
	"github.com/thoreinstein/tns/internal/toolchain"
)

// workDir returns --path, or the current directory when it is unset.
func workDir() (string, error) {
	if pathFlag != "" {
		return pathFlag, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "getting working directory")
	}
	return wd, nil
}

// loadProject finds the project enclosing the working directory.
func loadProject() (*project.Project, error) {
	dir, err := workDir()
	if err != nil {
		return nil, err
	}
	proj, err := project.Load(dir)
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			return nil, errors.NewUserError(err, "Run this command inside a project, or create one with: tns create <name>")
		}
		return nil, errors.NewUserError(err, "Check that "+paths.ProjectFileName+" contains a valid \"id\"")
	}
	return proj, nil
}

// newRunner returns a toolchain runner attached to the command's stdio.
func newRunner(cmd *cobra.Command) toolchain.Runner {
	return toolchain.NewExecRunner(
		toolchain.WithStdio(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()),
		toolchain.WithLogger(logging.FromContext(cmd.Context())),
	)
}

// newPlatformService wires the registry, the native project services and
// the npm installer for proj.
func newPlatformService(cmd *cobra.Command, proj *project.Project, cfg *config.Config) (*platformsvc.Service, error) {
	logger := logging.FromContext(cmd.Context())
	runner := newRunner(cmd)

	iosSvc := ios.New(proj, runner, ios.WithLogger(logger))
	androidSvc := android.New(proj, runner,
		android.WithRelease(cfg.Release),
		android.WithLogger(logger),
	)

	registry, err := platform.NewDefaultRegistry(proj.PlatformsDir(), iosSvc, androidSvc)
	if err != nil {
		return nil, err
	}

	return platformsvc.New(proj, registry, npm.NewCLIInstaller(runner, cfg.NpmPath),
		platformsvc.WithLogger(logger),
		platformsvc.WithOutput(cmd.OutOrStdout()),
	), nil
}

// setup loads the config and project and builds the platform service.
func setup(cmd *cobra.Command) (*platformsvc.Service, error) {
	cfg, err := config.Current()
	if err != nil {
		return nil, errors.NewConfigError(err)
	}
	proj, err := loadProject()
	if err != nil {
		return nil, err
	}
	return newPlatformService(cmd, proj, cfg)
}

// userErrorSentinels are failures caused by input or environment rather
// than a tns defect.
var userErrorSentinels = []error{
	platformsvc.ErrNoPlatform,
	platformsvc.ErrInvalidPlatform,
	platformsvc.ErrUnsupportedPlatform,
	platformsvc.ErrPlatformExists,
	platformsvc.ErrNotImplemented,
	android.ErrInvalidPackageName,
	android.ErrReservedWord,
	android.ErrInvalidProjectName,
	android.ErrToolchain,
	android.ErrMissingTarget,
	ios.ErrXcodeNotInstalled,
	ios.ErrXcodeTooOld,
	toolchain.ErrToolNotFound,
	project.ErrNotFound,
	project.ErrExists,
	project.ErrInvalidID,
	project.ErrInvalidName,
}

// classify maps workflow errors to exit codes: known user-facing
// failures exit 1 with a suggestion, anything else exits 2.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return errors.NewUserError(err, "")
	}
	for _, sentinel := range userErrorSentinels {
		if errors.Is(err, sentinel) {
			return errors.NewUserError(err, suggestionFor(sentinel))
		}
	}
	return errors.NewSystemError(err, "Re-run with -vv for details")
}

func suggestionFor(sentinel error) string {
	switch sentinel {
	case platformsvc.ErrNoPlatform, platformsvc.ErrInvalidPlatform:
		return "Run: tns platform list"
	case android.ErrToolchain, android.ErrMissingTarget, ios.ErrXcodeNotInstalled, ios.ErrXcodeTooOld, toolchain.ErrToolNotFound:
		return "Run: tns doctor"
	default:
		return ""
	}
}
