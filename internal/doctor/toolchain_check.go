package doctor

import (
	"context"

	"github.com/thoreinstein/tns/internal/paths"
	"github.com/thoreinstein/tns/internal/platform"
	"github.com/thoreinstein/tns/internal/toolchain"
)

// toolchainValidator is implemented by services whose Validate also
// checks the project, such as android. The doctor only probes the tools.
type toolchainValidator interface {
	ValidateToolchain(ctx context.Context) error
}

// ToolchainCheck runs a platform's toolchain validation.
type ToolchainCheck struct {
	def platform.Definition
}

var _ Check = (*ToolchainCheck)(nil)

// NewToolchainCheck creates a check for def.
func NewToolchainCheck(def platform.Definition) *ToolchainCheck {
	return &ToolchainCheck{def: def}
}

// Name returns the unique identifier for this check.
func (c *ToolchainCheck) Name() string {
	return c.def.Key
}

// Category returns the grouping for this check.
func (c *ToolchainCheck) Category() string {
	return "toolchain"
}

// Run probes the platform's tools through ValidateToolchain when the
// service has it, and through Validate otherwise.
func (c *ToolchainCheck) Run(ctx context.Context) *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"framework": c.def.FrameworkPackageName},
	}

	validate := c.def.Service.Validate
	if tv, ok := c.def.Service.(toolchainValidator); ok {
		validate = tv.ValidateToolchain
	}
	if err := validate(ctx); err != nil {
		result.Status = SeverityError
		result.Message = err.Error()
		result.FixHint = toolchainHint(c.def.Key)
		return result
	}

	result.Status = SeverityPass
	result.Message = c.def.DisplayName + " toolchain is ready"
	return result
}

func toolchainHint(key string) string {
	switch key {
	case paths.PlatformAndroid:
		return "install Apache Ant, a JDK and the Android SDK tools, and add them to PATH"
	case paths.PlatformIOS:
		return "install Xcode 5.0 or later and its command-line tools"
	default:
		return ""
	}
}

// NpmCheck verifies that the npm executable used to fetch framework
// packages resolves.
type NpmCheck struct {
	runner  toolchain.Runner
	npmPath string
}

var _ Check = (*NpmCheck)(nil)

// NewNpmCheck creates a check resolving npmPath through runner.
func NewNpmCheck(runner toolchain.Runner, npmPath string) *NpmCheck {
	return &NpmCheck{runner: runner, npmPath: npmPath}
}

// Name returns the unique identifier for this check.
func (c *NpmCheck) Name() string {
	return "npm"
}

// Category returns the grouping for this check.
func (c *NpmCheck) Category() string {
	return "toolchain"
}

// Run executes the npm lookup.
func (c *NpmCheck) Run(_ context.Context) *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	path, err := c.runner.LookPath(c.npmPath)
	if err != nil {
		result.Status = SeverityError
		result.Message = "npm not found: " + c.npmPath
		result.FixHint = "install Node.js or set npm_path in the tns config"
		return result
	}

	result.Status = SeverityPass
	result.Message = "npm found at " + path
	result.Details = map[string]any{"path": path}
	return result
}
