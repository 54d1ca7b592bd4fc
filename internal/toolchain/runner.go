package toolchain

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/tns/internal/logging"
)

// ErrToolNotFound is returned when a tool cannot be resolved on PATH.
var ErrToolNotFound = errors.New("tool not found")

// Result holds the captured output of a finished command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Combined returns stdout followed by stderr. Several JDK and SDK tools
// print their version banner on stderr.
func (r Result) Combined() string {
	return r.Stdout + r.Stderr
}

// Runner launches external tools.
type Runner interface {
	// LookPath resolves name on PATH. The error wraps ErrToolNotFound
	// when the tool is missing.
	LookPath(name string) (string, error)

	// Output runs the command and captures its output. A non-zero exit
	// is reported through Result.ExitCode, not as an error; errors are
	// reserved for launch failures and cancellation.
	Output(ctx context.Context, name string, args ...string) (Result, error)

	// Stream runs the command attached to the runner's stdio and returns
	// an error if it cannot start or exits non-zero.
	Stream(ctx context.Context, name string, args ...string) error
}

// ExecRunner is the os/exec implementation of Runner.
type ExecRunner struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

// Option configures an ExecRunner.
type Option func(*ExecRunner)

// WithStdio sets the streams used by Stream.
func WithStdio(in io.Reader, out, errOut io.Writer) Option {
	return func(r *ExecRunner) {
		r.stdin = in
		r.stdout = out
		r.stderr = errOut
	}
}

// WithLogger sets the logger used to trace child-process argv.
func WithLogger(logger *slog.Logger) Option {
	return func(r *ExecRunner) {
		r.logger = logger
	}
}

// NewExecRunner creates a runner bound to the process's stdio.
func NewExecRunner(opts ...Option) *ExecRunner {
	r := &ExecRunner{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: logging.NewDiscard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LookPath implements Runner.
func (r *ExecRunner) LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", errors.Mark(errors.Wrapf(err, "%s", name), ErrToolNotFound)
	}
	return path, nil
}

// Output implements Runner.
func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) (Result, error) {
	r.trace(ctx, name, args)

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, wrapLaunchError(err, name)
	}
	return result, nil
}

// Stream implements Runner.
func (r *ExecRunner) Stream(ctx context.Context, name string, args ...string) error {
	r.trace(ctx, name, args)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			return errors.Newf("%s exited with code %d", name, exitErr.ExitCode())
		}
		return wrapLaunchError(err, name)
	}
	return nil
}

func (r *ExecRunner) trace(ctx context.Context, name string, args []string) {
	r.logger.Log(ctx, logging.LevelTrace, "exec", "cmd", name, "args", strings.Join(args, " "))
}

func wrapLaunchError(err error, name string) error {
	if errors.Is(err, exec.ErrNotFound) {
		return errors.Mark(errors.Wrapf(err, "%s", name), ErrToolNotFound)
	}
	return errors.Wrapf(err, "running %s", name)
}
