package doctor

import (
	"fmt"
	"os"

	"github.com/thoreinstein/tns/internal/errors"
)

// Fixer is implemented by checks that can remediate what they found.
// CanFix and Fix only see the issues of the most recent Run.
type Fixer interface {
	CanFix() bool
	Fix() []FixResult
}

// FixResult is the outcome of one attempted fix.
type FixResult struct {
	Path        string `json:"path"`
	Fixed       bool   `json:"fixed"`
	Description string `json:"description"`
	Error       error  `json:"-"`
}

const (
	secureFilePerm os.FileMode = 0o644
	secureDirPerm  os.FileMode = 0o755
)

// PermissionFixer chmods world-writable paths found by PathCheck back to
// 0644 for files and 0755 for directories.
type PermissionFixer struct {
	pending []pathIssue
}

// CanFix reports whether the last run found a fixable issue.
func (f *PermissionFixer) CanFix() bool {
	return len(f.pending) > 0
}

// Fix applies every pending chmod. Issues are cleared once attempted.
func (f *PermissionFixer) Fix() []FixResult {
	results := make([]FixResult, 0, len(f.pending))
	for _, issue := range f.pending {
		res := FixResult{Path: issue.Path}
		if err := os.Chmod(issue.Path, issue.fixPerm); err != nil {
			res.Error = errors.Wrapf(err, "chmod %04o %s", issue.fixPerm, issue.Path)
			res.Description = res.Error.Error()
		} else {
			res.Fixed = true
			res.Description = fmt.Sprintf("chmod %04o", issue.fixPerm)
		}
		results = append(results, res)
	}
	f.pending = nil
	return results
}

// track keeps the fixable subset of issues.
func (f *PermissionFixer) track(issues []pathIssue) {
	f.pending = f.pending[:0]
	for _, issue := range issues {
		if issue.Fixable {
			f.pending = append(f.pending, issue)
		}
	}
}
