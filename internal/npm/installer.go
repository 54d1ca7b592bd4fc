package npm

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/tns/internal/toolchain"
)

// Installer downloads a package into a destination directory and returns
// the directory holding the package's contents.
type Installer interface {
	Install(ctx context.Context, name, destDir string) (string, error)
}

// CLIInstaller runs "npm install" through a toolchain.Runner.
type CLIInstaller struct {
	runner  toolchain.Runner
	npmPath string
}

var _ Installer = (*CLIInstaller)(nil)

// NewCLIInstaller creates an installer invoking the npm executable at
// npmPath (resolved on PATH when it is a bare name).
func NewCLIInstaller(runner toolchain.Runner, npmPath string) *CLIInstaller {
	if npmPath == "" {
		npmPath = "npm"
	}
	return &CLIInstaller{runner: runner, npmPath: npmPath}
}

// Install runs "npm install <name> --prefix <destDir>" and returns
// <destDir>/node_modules/<name>.
func (i *CLIInstaller) Install(ctx context.Context, name, destDir string) (string, error) {
	if name == "" {
		return "", errors.New("package name is required")
	}

	res, err := i.runner.Output(ctx, i.npmPath, "install", name, "--prefix", destDir)
	if err != nil {
		return "", errors.Wrapf(err, "installing %s", name)
	}
	if res.ExitCode != 0 {
		return "", errors.WithDetail(
			errors.Newf("npm install %s failed with exit code %d", name, res.ExitCode),
			strings.TrimSpace(res.Stderr),
		)
	}

	return filepath.Join(destDir, "node_modules", PackageDirName(name)), nil
}

// PackageDirName strips a trailing @version from a package spec, keeping
// the leading @ of a scoped package.
func PackageDirName(spec string) string {
	if i := strings.LastIndex(spec, "@"); i > 0 {
		return spec[:i]
	}
	return spec
}
