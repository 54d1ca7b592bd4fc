package doctor

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/tns/internal/config"
)

// ConfigCheck validates the config file syntax and the resolved values.
type ConfigCheck struct {
	cfg  *config.Config
	file string
}

var _ Check = (*ConfigCheck)(nil)

// NewConfigCheck creates a check over cfg as loaded from file. file may
// name a config file that does not exist.
func NewConfigCheck(cfg *config.Config, file string) *ConfigCheck {
	return &ConfigCheck{cfg: cfg, file: file}
}

// Name returns the unique identifier for this check.
func (c *ConfigCheck) Name() string {
	return "config"
}

// Category returns the grouping for this check.
func (c *ConfigCheck) Category() string {
	return "config"
}

// Run executes the configuration check.
func (c *ConfigCheck) Run(_ context.Context) *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Details:  c.details(),
	}

	if msg := c.syntaxError(); msg != "" {
		result.Status = SeverityError
		result.Message = msg
		result.FixHint = "fix the YAML syntax in " + c.file
		return result
	}

	errs := config.Validate(c.cfg)
	if len(errs) == 0 {
		result.Message = "configuration is valid"
		return result
	}

	problems := make([]string, 0, len(errs))
	for _, err := range errs {
		problems = append(problems, err.Error())
	}
	result.Details["problems"] = problems
	result.Status = SeverityError
	result.Message = fmt.Sprintf("%d configuration value(s) are invalid", len(errs))
	result.FixHint = "run: tns config set <key> <value>"
	return result
}

func (c *ConfigCheck) details() map[string]any {
	details := map[string]any{"file": c.file}
	if c.cfg == nil {
		return details
	}
	details[config.KeyRelease] = c.cfg.Release
	details[config.KeyProfileDir] = c.cfg.ProfileDir
	details[config.KeyRegistryURL] = MaskURL(c.cfg.RegistryURL)
	details[config.KeyBridgeURL] = MaskURL(c.cfg.BridgeURL)
	details[config.KeyNpmPath] = c.cfg.NpmPath
	return details
}

// syntaxError returns a description of a YAML syntax problem in the
// config file, or "" when the file parses or does not exist.
func (c *ConfigCheck) syntaxError() string {
	if c.file == "" {
		return ""
	}
	data, err := os.ReadFile(c.file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ""
		}
		return fmt.Sprintf("cannot read config file: %v", err)
	}

	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return formatYAMLError(err)
	}
	return ""
}

// formatYAMLError normalizes yaml.v3 errors, which already carry the
// line number, into a single line.
func formatYAMLError(err error) string {
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		return "YAML type error: " + strings.Join(typeErr.Errors, "; ")
	}
	return "YAML syntax error: " + strings.TrimPrefix(err.Error(), "yaml: ")
}
