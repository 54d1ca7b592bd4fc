// Package toolchain runs the native build tools tns delegates to: ant,
// java and the Android SDK CLI on Android, xcodebuild on iOS, and npm for
// package fetches.
//
// Runner has two modes. Output captures stdout and stderr for probes such
// as "java -version". Stream attaches the child to the caller's terminal
// for long-running builds so their progress is visible.
//
// All commands take a context.Context; cancelling it kills the child.
package toolchain
