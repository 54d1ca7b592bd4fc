package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

type fder interface{ Fd() uintptr }

// IsTTY returns true if the given writer is a terminal.
func IsTTY(w io.Writer) bool {
	if f, ok := w.(fder); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// IsInteractive reports whether both in and out are attached to a
// terminal, which is the precondition for fuzzy selection prompts.
func IsInteractive(in io.Reader, out io.Writer) bool {
	f, ok := in.(fder)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return false
	}
	return IsTTY(out)
}

// SupportsColor returns true if the given writer supports ANSI colour codes.
// NO_COLOR and TERM=dumb disable colour even on a terminal.
func SupportsColor(w io.Writer) bool {
	return supportsColor(IsTTY(w))
}

func supportsColor(isTTY bool) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTTY
}
