// Package doctor runs diagnostic checks over the tns configuration, the
// current project and the native toolchains each platform needs.
package doctor

// Severity grades a check outcome. Higher values are worse.
type Severity int

// Severities in increasing order.
const (
	SeverityPass Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

var severityNames = [...]string{
	SeverityPass:    "pass",
	SeverityInfo:    "info",
	SeverityWarning: "warning",
	SeverityError:   "error",
}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "unknown"
	}
	return severityNames[s]
}

// MarshalText renders the severity by name in JSON reports.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// CheckResult is the outcome of one check.
type CheckResult struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Status   Severity `json:"status"`
	Message  string   `json:"message"`

	// Details holds check-specific context such as resolved paths or
	// the config values that were validated.
	Details map[string]any `json:"details,omitempty"`

	// Fixable is set when `tns doctor --fix` can remediate the result.
	Fixable bool `json:"fixable,omitempty"`

	// FixHint is the command or action that resolves the problem.
	FixHint string `json:"fix_hint,omitempty"`
}

// problem reports whether r should be shown outside verbose output.
func (r *CheckResult) problem() bool {
	return r.Status >= SeverityWarning
}

// Summary counts results per severity.
type Summary struct {
	Passed   int `json:"passed"`
	Info     int `json:"info"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

func (s *Summary) record(sev Severity) {
	switch sev {
	case SeverityPass:
		s.Passed++
	case SeverityInfo:
		s.Info++
	case SeverityWarning:
		s.Warnings++
	case SeverityError:
		s.Errors++
	}
}
