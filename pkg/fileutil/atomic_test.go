package fileutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestAtomicWriteFile(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		perm os.FileMode
	}{
		{name: "text", data: []byte("target=android-19\n"), perm: 0o644},
		{name: "empty", data: []byte{}, perm: 0o644},
		{name: "executable", data: []byte("#!/bin/sh\n"), perm: 0o755},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "file")

			require.NoError(t, AtomicWriteFile(path, tt.data, tt.perm))

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.data, got)

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, tt.perm, info.Mode().Perm())
		})
	}
}

func TestAtomicWriteFile_NoTempFileLeftOnError(t *testing.T) {
	dir := t.TempDir()

	err := AtomicWriteFile(filepath.Join(dir, "missing", "file"), []byte("x"), 0o600)
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAtomicWriteFile_OverwriteExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "existing")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	require.NoError(t, AtomicWriteFile(path, []byte("new"), 0o600))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}

func TestAtomicWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".tnsproject")

	require.NoError(t, AtomicWriteJSON(path, map[string]string{"id": "com.example.App"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"id\": \"com.example.App\"\n}\n", string(raw))

	var back map[string]string
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, "com.example.App", back["id"])
}

func TestAtomicWriteJSON_Unmarshalable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")

	require.Error(t, AtomicWriteJSON(path, make(chan int)))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestAtomicWriteYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, AtomicWriteYAML(path, map[string]any{"release": true}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var back map[string]any
	require.NoError(t, yaml.Unmarshal(raw, &back))
	assert.Equal(t, true, back["release"])
}

func TestAtomicWriteYAML_RecoversPanic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")

	assert.Error(t, AtomicWriteYAML(path, map[string]any{"fn": func() {}}))
}
