package editor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/tns/internal/errors"
	"github.com/thoreinstein/tns/internal/toolchain"
	"github.com/thoreinstein/tns/internal/toolchain/mocks"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		editor  string
		visual  string
		hasNano bool
		want    string
	}{
		{name: "EDITOR wins", editor: "nvim", visual: "code", want: "nvim"},
		{name: "VISUAL next", visual: "code", want: "code"},
		{name: "nano on PATH", hasNano: true, want: "nano"},
		{name: "vi fallback", want: "vi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("EDITOR", tt.editor)
			t.Setenv("VISUAL", tt.visual)

			r := mocks.NewRunner(t)
			if tt.editor == "" && tt.visual == "" {
				if tt.hasNano {
					r.On("LookPath", "nano").Return("/usr/bin/nano", nil)
				} else {
					r.On("LookPath", "nano").Return("", toolchain.ErrToolNotFound)
				}
			}

			assert.Equal(t, tt.want, Detect(r))
		})
	}
}

func TestOpen(t *testing.T) {
	t.Setenv("EDITOR", "nvim")

	r := mocks.NewRunner(t)
	r.On("Stream", mock.Anything, "nvim", []string{"/tmp/config.yaml"}).Return(nil).Once()
	require.NoError(t, Open(context.Background(), r, "/tmp/config.yaml"))

	r.On("Stream", mock.Anything, "nvim", []string{"/tmp/config.yaml"}).Return(errors.New("exit 1")).Once()
	err := Open(context.Background(), r, "/tmp/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "running editor nvim")
}
