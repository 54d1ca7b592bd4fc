package doctor

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/tns/internal/paths"
	"github.com/thoreinstein/tns/internal/project"
)

// ProjectCheck reports on the project enclosing a directory.
type ProjectCheck struct {
	dir string
}

var _ Check = (*ProjectCheck)(nil)

// NewProjectCheck creates a check that searches for a project from dir.
func NewProjectCheck(dir string) *ProjectCheck {
	return &ProjectCheck{dir: dir}
}

// Name returns the unique identifier for this check.
func (c *ProjectCheck) Name() string {
	return "project"
}

// Category returns the grouping for this check.
func (c *ProjectCheck) Category() string {
	return "project"
}

// Run executes the project check. Running outside a project is not a
// problem, so it is reported as info.
func (c *ProjectCheck) Run(_ context.Context) *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	proj, err := project.Load(c.dir)
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			result.Status = SeverityInfo
			result.Message = "not inside a tns project"
			result.FixHint = "run: tns create <name>"
			return result
		}
		result.Status = SeverityError
		result.Message = err.Error()
		result.FixHint = "check " + paths.ProjectFileName + " contains a valid \"id\""
		return result
	}

	installed := installedPlatforms(proj.PlatformsDir())
	result.Status = SeverityPass
	result.Message = fmt.Sprintf("project %s (%s), %d platform(s) added", proj.Name, proj.ID, len(installed))
	result.Details = map[string]any{
		"dir":       proj.Dir,
		"name":      proj.Name,
		"id":        proj.ID,
		"platforms": installed,
	}

	appOK, _ := paths.Exists(proj.AppDir())
	if !appOK {
		result.Status = SeverityWarning
		result.Message = "project has no " + paths.AppDirName + " directory"
		result.FixHint = "create " + proj.AppDir()
	}
	return result
}

func installedPlatforms(platformsDir string) []string {
	installed := []string{}
	entries, err := os.ReadDir(platformsDir)
	if err != nil {
		return installed
	}
	for _, e := range entries {
		if e.IsDir() && slices.Contains(paths.Platforms(), e.Name()) {
			installed = append(installed, e.Name())
		}
	}
	return installed
}
