package config

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// Validation errors for configuration fields.
var (
	ErrInvalidURL  = errors.New("invalid url")
	ErrInvalidPath = errors.New("invalid path")
	ErrMissingVerb = errors.New("bridge_url must contain a %s placeholder for the version")
)

// FieldError ties a validation error to a configuration key.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Validate checks cfg and returns every problem found.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if err := validateURL(cfg.RegistryURL); err != nil {
		errs = append(errs, &FieldError{Field: KeyRegistryURL, Value: cfg.RegistryURL, Err: err})
	}

	if err := validateURL(strings.ReplaceAll(cfg.BridgeURL, "%s", "0")); err != nil {
		errs = append(errs, &FieldError{Field: KeyBridgeURL, Value: cfg.BridgeURL, Err: err})
	} else if strings.Count(cfg.BridgeURL, "%s") != 1 {
		errs = append(errs, &FieldError{Field: KeyBridgeURL, Value: cfg.BridgeURL, Err: ErrMissingVerb})
	}

	if err := validatePath(cfg.ProfileDir); err != nil {
		errs = append(errs, &FieldError{Field: KeyProfileDir, Value: cfg.ProfileDir, Err: err})
	}

	if strings.TrimSpace(cfg.NpmPath) == "" {
		errs = append(errs, &FieldError{Field: KeyNpmPath, Value: cfg.NpmPath, Err: ErrInvalidPath})
	}

	return errs
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidURL
	}
	return nil
}

func validatePath(path string) error {
	if path == "" || strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}
	if cleaned := filepath.Clean(path); cleaned == "." {
		return ErrInvalidPath
	}
	return nil
}
