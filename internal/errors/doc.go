// Package errors provides error handling conventions for the tns CLI.
//
// Construction and wrapping helpers are thin re-exports of
// [github.com/cockroachdb/errors], so callers get stack traces and
// detail annotations without importing two error packages.
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): Invalid input, unknown platform, missing project, etc.
//   - ExitSystem (2): Toolchain, network, or filesystem failure
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and an optional
// suggestion that the CLI prints below the error message:
//
//	err := tnserrors.NewUserError(err, "Run: tns platform list")
//	var exitErr *tnserrors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
