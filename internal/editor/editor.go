// Package editor launches the user's preferred text editor.
package editor

import (
	"context"
	"os"

	"github.com/thoreinstein/tns/internal/errors"
	"github.com/thoreinstein/tns/internal/toolchain"
)

// Open runs the editor chosen by Detect on path through runner, attached
// to the runner's stdio.
func Open(ctx context.Context, runner toolchain.Runner, path string) error {
	name := Detect(runner)
	if err := runner.Stream(ctx, name, path); err != nil {
		return errors.Wrapf(err, "running editor %s", name)
	}
	return nil
}

// Detect returns the editor command: $EDITOR, then $VISUAL, then nano
// when it resolves on PATH, then vi.
func Detect(runner toolchain.Runner) string {
	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}
	if v := os.Getenv("VISUAL"); v != "" {
		return v
	}
	if _, err := runner.LookPath("nano"); err == nil {
		return "nano"
	}
	return "vi"
}
