package doctor

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Target names a path PathCheck inspects.
type Target struct {
	// Label describes the path in results, e.g. "profile_dir".
	Label string
	// Path is the file or directory to inspect.
	Path string
	// Dir marks the target as a directory.
	Dir bool
}

// PathCheck verifies that the directories tns writes to are usable and
// that none of its paths is world-writable. Missing paths are fine: tns
// creates them on demand.
type PathCheck struct {
	PermissionFixer
	targets []Target
}

var (
	_ Check = (*PathCheck)(nil)
	_ Fixer = (*PathCheck)(nil)
)

// NewPathCheck creates a check over targets.
func NewPathCheck(targets ...Target) *PathCheck {
	return &PathCheck{targets: targets}
}

// Name returns the unique identifier for this check.
func (c *PathCheck) Name() string {
	return "path-permissions"
}

// Category returns the grouping for this check.
func (c *PathCheck) Category() string {
	return "filesystem"
}

// pathIssue represents a single path or permission problem.
type pathIssue struct {
	Path        string
	Label       string
	Type        string // "file" or "directory"
	Problem     string
	Severity    Severity
	Permissions string
	Fixable     bool
	FixHint     string
	fixPerm     os.FileMode
}

// Run executes the path and permission check.
func (c *PathCheck) Run(_ context.Context) *CheckResult {
	var issues []pathIssue
	checked := 0

	for _, t := range c.targets {
		if t.Path == "" {
			continue
		}
		checked++
		issues = append(issues, c.inspect(t)...)
	}

	c.track(issues)
	return c.buildResult(issues, checked)
}

func (c *PathCheck) inspect(t Target) []pathIssue {
	kind := "file"
	if t.Dir {
		kind = "directory"
	}

	info, err := os.Stat(t.Path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return []pathIssue{{
			Path: t.Path, Label: t.Label, Type: kind,
			Problem:  fmt.Sprintf("cannot stat %s: %v", kind, err),
			Severity: SeverityError,
		}}
	}

	if t.Dir != info.IsDir() {
		return []pathIssue{{
			Path: t.Path, Label: t.Label, Type: kind,
			Problem:  "expected " + kind + " but found something else",
			Severity: SeverityError,
		}}
	}

	var issues []pathIssue
	if t.Dir && !isDirectoryWritable(t.Path) {
		issues = append(issues, pathIssue{
			Path: t.Path, Label: t.Label, Type: kind,
			Problem:     "directory is not writable",
			Severity:    SeverityWarning,
			Permissions: formatPermissions(info.Mode()),
			FixHint:     "chmod u+w " + t.Path,
		})
	}

	// Unix permission bits do not apply on windows.
	if runtime.GOOS != "windows" && info.Mode().Perm()&0o002 != 0 {
		target := secureFilePerm
		if t.Dir {
			target = secureDirPerm
		}
		issues = append(issues, pathIssue{
			Path: t.Path, Label: t.Label, Type: kind,
			Problem:     kind + " is world-writable (security risk)",
			Severity:    SeverityWarning,
			Permissions: formatPermissions(info.Mode()),
			Fixable:     true,
			FixHint:     fmt.Sprintf("chmod %o %s", target, t.Path),
			fixPerm:     target,
		})
	}
	return issues
}

// isDirectoryWritable tests if a directory is writable by creating a temp file.
func isDirectoryWritable(path string) bool {
	tmpFile, err := os.CreateTemp(path, ".tns-doctor-test-*")
	if err != nil {
		return false
	}
	tmpPath := tmpFile.Name()
	_ = tmpFile.Close()
	_ = os.Remove(tmpPath)
	return true
}

// buildResult constructs the final CheckResult from accumulated issues.
func (c *PathCheck) buildResult(issues []pathIssue, checked int) *CheckResult {
	if len(issues) == 0 {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityPass,
			Message:  fmt.Sprintf("all %d paths have valid permissions", checked),
		}
	}

	status := SeverityWarning
	fixable := false
	var fixHints []string
	issueDetails := make([]map[string]any, 0, len(issues))

	for _, issue := range issues {
		if issue.Severity == SeverityError {
			status = SeverityError
		}
		if issue.Fixable {
			fixable = true
			fixHints = append(fixHints, issue.FixHint)
		}

		m := map[string]any{
			"path":     issue.Path,
			"label":    issue.Label,
			"type":     issue.Type,
			"problem":  issue.Problem,
			"severity": issue.Severity.String(),
		}
		if issue.Permissions != "" {
			m["permissions"] = issue.Permissions
		}
		issueDetails = append(issueDetails, m)
	}

	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   status,
		Message:  fmt.Sprintf("found %d permission issue(s) across %d paths", len(issues), checked),
		Details: map[string]any{
			"checked_paths": checked,
			"issues":        issueDetails,
		},
		Fixable: fixable,
	}
	if len(fixHints) > 0 {
		result.FixHint = strings.Join(fixHints, "; ")
	}
	return result
}

// formatPermissions returns the octal permission string (e.g., "0644").
func formatPermissions(mode os.FileMode) string {
	return fmt.Sprintf("%04o", mode.Perm())
}
