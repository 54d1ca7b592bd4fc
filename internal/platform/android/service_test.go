package android

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/tns/internal/logging"
	"github.com/thoreinstein/tns/internal/project"
	"github.com/thoreinstein/tns/internal/toolchain/mocks"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func newProject(t *testing.T) *project.Project {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "Hello")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	return &project.Project{Dir: dir, Name: "Hello", ID: "com.example.hello"}
}

func frameworkFixture(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "framework")
	writeTree(t, dir, map[string]string{
		"assets/metadata/treeNodeStream.dat":  "nodes",
		"libs/armeabi-v7a/libNativeScript.so": "so",
		"res/values/strings.xml":              `<string name="app_name">__NAME__</string><string name="title">__TITLE_ACTIVITY__</string>`,
		".project":                            "<name>__NAME__</name>",
		"AndroidManifest.xml":                 `<manifest package="__PACKAGE__">`,
		"project.properties":                  "target=android-19\n",
	})
	return dir
}

func TestService_CreateProject(t *testing.T) {
	proj := newProject(t)
	framework := frameworkFixture(t)
	root := filepath.Join(proj.PlatformsDir(), "android")

	r := mocks.NewRunner(t)
	r.On("Output", mock.Anything, "android", []string{"list", "targets"}).
		Return(okResult("id: 1 or \"android-19\"\n"), nil)

	svc := New(proj, r, WithLogger(logging.ForTest(t)))
	require.NoError(t, svc.CreateProject(context.Background(), root, framework))

	assert.FileExists(t, filepath.Join(root, "assets", "metadata", "treeNodeStream.dat"))
	assert.FileExists(t, filepath.Join(root, "libs", "armeabi-v7a", "libNativeScript.so"))
	assert.FileExists(t, filepath.Join(root, "res", "values", "strings.xml"))
	assert.NoDirExists(t, filepath.Join(root, "gen"))
	for _, f := range []string{".project", "AndroidManifest.xml", "project.properties"} {
		assert.FileExists(t, filepath.Join(root, f))
	}
	assert.DirExists(t, filepath.Join(root, "src", "com", "example", "hello"))
}

func TestService_CreateProjectMissingTarget(t *testing.T) {
	proj := newProject(t)

	r := mocks.NewRunner(t)
	r.On("Output", mock.Anything, "android", []string{"list", "targets"}).
		Return(okResult("id: 1 or \"android-17\"\n"), nil)

	err := New(proj, r).CreateProject(context.Background(), t.TempDir(), frameworkFixture(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingTarget))
	assert.Contains(t, err.Error(), "Please install Android target 19")
}

func TestService_CreateProjectMissingFile(t *testing.T) {
	proj := newProject(t)
	framework := frameworkFixture(t)
	require.NoError(t, os.Remove(filepath.Join(framework, "AndroidManifest.xml")))

	r := mocks.NewRunner(t)
	r.On("Output", mock.Anything, "android", []string{"list", "targets"}).Return(okResult("android-19"), nil)

	err := New(proj, r).CreateProject(context.Background(), t.TempDir(), framework)
	assert.Error(t, err)
}

func TestService_InterpolateData(t *testing.T) {
	proj := newProject(t)
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"res/values/strings.xml": "__NAME__|__TITLE_ACTIVITY__|__NAME__",
		".project":               "<name>__NAME__</name>",
		"AndroidManifest.xml":    `package="__PACKAGE__"`,
	})

	require.NoError(t, New(proj, mocks.NewRunner(t)).InterpolateData(context.Background(), root))

	assert.Equal(t, "Hello|Hello|Hello", readFile(t, filepath.Join(root, "res", "values", "strings.xml")))
	assert.Equal(t, "<name>Hello</name>", readFile(t, filepath.Join(root, ".project")))
	assert.Equal(t, `package="com.example.hello"`, readFile(t, filepath.Join(root, "AndroidManifest.xml")))
}

func TestService_AfterCreateProject(t *testing.T) {
	proj := newProject(t)

	tests := []struct {
		name       string
		properties string
		wantTarget string
	}{
		{"target from properties", "target=android-19\n", "android-19"},
		{"no properties file", "", ""},
		{"properties without target", "sdk.dir=/opt/android\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			if tt.properties != "" {
				writeTree(t, root, map[string]string{"project.properties": tt.properties})
			}

			r := mocks.NewRunner(t)
			r.On("Stream", mock.Anything, "android",
				[]string{"update", "project", "--path", root, "--target", tt.wantTarget}).Return(nil)

			svc := New(proj, r, WithHostOS("linux"), WithLogger(logging.ForTest(t)))
			require.NoError(t, svc.AfterCreateProject(context.Background(), root))
		})
	}
}

func TestService_PrepareProject(t *testing.T) {
	proj := newProject(t)
	writeTree(t, proj.AppDir(), map[string]string{
		"x.ios.js":                                     "ios",
		"x.android.js":                                 "android",
		"y.js":                                         "shared",
		"App_Resources/Android/drawable-hdpi/icon.png": "android icon",
		"App_Resources/iOS/Default.png":                "ios splash",
	})
	platformRoot := filepath.Join(proj.PlatformsDir(), "android")
	require.NoError(t, os.MkdirAll(filepath.Join(platformRoot, "res"), 0o755))

	svc := New(proj, mocks.NewRunner(t), WithLogger(logging.ForTest(t)))
	got, err := svc.PrepareProject(context.Background(), "Android", []string{"ios", "android"})
	require.NoError(t, err)

	staged := filepath.Join(platformRoot, "assets", "app")
	assert.Equal(t, staged, got)

	entries, err := os.ReadDir(staged)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"x.js", "y.js"}, names)
	assert.Equal(t, "android", readFile(t, filepath.Join(staged, "x.js")))
	assert.Equal(t, "android icon", readFile(t, filepath.Join(platformRoot, "res", "drawable-hdpi", "icon.png")))
	assert.NoFileExists(t, filepath.Join(platformRoot, "res", "Default.png"))

	// The source app is untouched.
	assert.FileExists(t, filepath.Join(proj.AppDir(), "x.ios.js"))
}

func TestService_PrepareProjectRestages(t *testing.T) {
	proj := newProject(t)
	writeTree(t, proj.AppDir(), map[string]string{"old.js": "old"})

	svc := New(proj, mocks.NewRunner(t))
	_, err := svc.PrepareProject(context.Background(), "Android", []string{"ios", "android"})
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(proj.AppDir(), "old.js")))
	writeTree(t, proj.AppDir(), map[string]string{"new.js": "new"})

	staged, err := svc.PrepareProject(context.Background(), "Android", []string{"ios", "android"})
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(staged, "old.js"))
	assert.FileExists(t, filepath.Join(staged, "new.js"))
}

func TestService_BuildProject(t *testing.T) {
	root := filepath.Join("platforms", "android")
	buildXML := filepath.Join(root, "build.xml")

	tests := []struct {
		name     string
		release  bool
		hostOS   string
		wantCmd  string
		wantArgs []string
	}{
		{"debug", false, "linux", "ant", []string{"debug", "-f", buildXML}},
		{"release", true, "darwin", "ant", []string{"release", "-f", buildXML}},
		{"windows", false, "windows", "cmd", []string{"/s", "/c", "ant", "debug", "-f", buildXML}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mocks.NewRunner(t)
			r.On("Stream", mock.Anything, tt.wantCmd, tt.wantArgs).Return(nil)

			svc := New(newProject(t), r, WithRelease(tt.release), WithHostOS(tt.hostOS))
			require.NoError(t, svc.BuildProject(context.Background(), root))
		})
	}
}

func TestService_BuildProjectFailure(t *testing.T) {
	r := mocks.NewRunner(t)
	r.On("Stream", mock.Anything, "ant", mock.Anything).Return(errors.New("ant exited with code 1"))

	err := New(newProject(t), r, WithHostOS("linux")).BuildProject(context.Background(), "root")
	assert.ErrorContains(t, err, "exited with code 1")
}
