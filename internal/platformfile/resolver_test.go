package platformfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/tns/internal/logging"
)

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver([]string{"ios", "android"})

	tests := []struct {
		name      string
		file      string
		wantOK    bool
		wantMatch Match
	}{
		{
			name:      "android tagged",
			file:      "icon.android.png",
			wantOK:    true,
			wantMatch: Match{Platform: "android", OnDeviceName: "icon.png"},
		},
		{
			name:   "untagged",
			file:   "icon.png",
			wantOK: false,
		},
		{
			name:      "dotted base",
			file:      "a.b.ios.png",
			wantOK:    true,
			wantMatch: Match{Platform: "ios", OnDeviceName: "a.b.png"},
		},
		{
			name:      "uppercase tag keeps base case",
			file:      "Main.IOS.JS",
			wantOK:    true,
			wantMatch: Match{Platform: "ios", OnDeviceName: "Main.JS"},
		},
		{
			name:   "unknown platform",
			file:   "icon.wp8.png",
			wantOK: false,
		},
		{
			name:   "tag without extension",
			file:   "readme.ios",
			wantOK: false,
		},
		{
			name:   "tag without base",
			file:   ".ios.js",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Resolve(tt.file)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantMatch, got)
			}
		})
	}
}

func TestResolver_NoKeys(t *testing.T) {
	r := NewResolver(nil)
	_, ok := r.Resolve("icon.android.png")
	assert.False(t, ok)
}

func TestResolver_Apply(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"x.ios.js", "x.android.js", "y.js"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
	}

	r := NewResolver([]string{"ios", "android"}).WithLogger(logging.ForTest(t))
	require.NoError(t, r.Apply(dir, "android"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"x.js", "y.js"}, names)

	data, err := os.ReadFile(filepath.Join(dir, "x.js"))
	require.NoError(t, err)
	assert.Equal(t, "x.android.js", string(data))
}

func TestResolver_ApplyNested(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "App_Resources", "images")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(nested, "logo.ios.png"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(nested, "logo.android.png"), nil, 0o644))

	r := NewResolver([]string{"ios", "android"})
	require.NoError(t, r.Apply(dir, "ios"))

	assert.FileExists(t, filepath.Join(nested, "logo.png"))
	assert.NoFileExists(t, filepath.Join(nested, "logo.android.png"))
	assert.NoFileExists(t, filepath.Join(nested, "logo.ios.png"))
}

func TestResolver_ApplyMissingDir(t *testing.T) {
	r := NewResolver([]string{"ios"})
	err := r.Apply(filepath.Join(t.TempDir(), "missing"), "ios")
	assert.Error(t, err)
}
