package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName names the per-user directories.
const AppName = "tns"

// Platform keys.
const (
	PlatformIOS     = "ios"
	PlatformAndroid = "android"
)

// Project layout names.
const (
	ProjectFileName     = ".tnsproject"
	PlatformsDirName    = "platforms"
	AppDirName          = "app"
	AppResourcesDirName = "App_Resources"
)

// FrameworkDirName is the folder inside a fetched framework package that
// holds the native project template.
const FrameworkDirName = "framework"

// IOSProjectNamePlaceholder is the token the iOS template uses for file
// names and pbxproj entries until the project name is substituted.
const IOSProjectNamePlaceholder = "__PROJECT_NAME__"

// IOSBridgeFileName is the archive downloaded by the legacy bootstrap.
const IOSBridgeFileName = "libTNSBridge.zip"

// ErrHomeDirNotFound indicates the user's home directory could not be determined.
var ErrHomeDirNotFound = errors.New("home directory not found")

// DefaultDirPerm is the permission used for directories tns creates.
const DefaultDirPerm = 0o755

// EnsureDir creates path and any missing parents. A zero perm means
// DefaultDirPerm. Existing directories are left untouched.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return errors.Wrapf(os.MkdirAll(path, perm), "creating directory %s", path)
}

// Exists reports whether path exists. Stat errors other than "not exist"
// are returned to the caller.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Wrapf(err, "checking %s", path)
}

// ResolveHome returns the user's home directory.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns <xdg config>/tns.
func ConfigHome() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ProfileDir returns the default profile directory, <xdg data>/tns.
// The framework version cache lives underneath it.
func ProfileDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// CacheHome returns <xdg cache>/tns.
func CacheHome() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Platforms returns the supported platform keys in registry order.
func Platforms() []string {
	return []string{PlatformIOS, PlatformAndroid}
}

// ValidPlatform reports whether key names a supported platform. The
// comparison is case-insensitive because keys are typed by users.
func ValidPlatform(key string) bool {
	key = strings.ToLower(key)
	for _, p := range Platforms() {
		if p == key {
			return true
		}
	}
	return false
}

// ProjectFile returns <projectDir>/.tnsproject.
func ProjectFile(projectDir string) string {
	return filepath.Join(projectDir, ProjectFileName)
}

// PlatformsDir returns <projectDir>/platforms.
func PlatformsDir(projectDir string) string {
	return filepath.Join(projectDir, PlatformsDirName)
}

// AppDir returns <projectDir>/app.
func AppDir(projectDir string) string {
	return filepath.Join(projectDir, AppDirName)
}

// PlatformRoot returns <platformsDir>/<key>.
func PlatformRoot(platformsDir, key string) string {
	return filepath.Join(platformsDir, key)
}
