package doctor

import (
	"context"
	"time"
)

// Check is a single diagnostic.
type Check interface {
	Name() string
	Category() string
	Run(ctx context.Context) *CheckResult
}

// Runner holds checks and runs them in registration order.
type Runner struct {
	checks []Check
}

// NewRunner returns an empty Runner.
func NewRunner() *Runner {
	return &Runner{}
}

// AddCheck appends c.
func (r *Runner) AddCheck(c Check) {
	r.checks = append(r.checks, c)
}

// Checks returns the registered checks in order.
func (r *Runner) Checks() []Check {
	return r.checks
}

// Run executes the checks one after another. A cancelled context stops
// the run before the next check; the report covers what already ran.
func (r *Runner) Run(ctx context.Context) *Report {
	report := &Report{
		Timestamp: time.Now().UTC(),
		Results:   make([]*CheckResult, 0, len(r.checks)),
	}

	for _, check := range r.checks {
		if ctx.Err() != nil {
			break
		}
		result := check.Run(ctx)
		report.Results = append(report.Results, result)
		report.Summary.record(result.Status)
	}

	return report
}

// Report is the output of a Runner.Run.
type Report struct {
	Timestamp time.Time      `json:"timestamp"`
	Results   []*CheckResult `json:"results"`
	Summary   Summary        `json:"summary"`
}

// HasErrors reports whether any check failed.
func (r *Report) HasErrors() bool {
	return r.Summary.Errors > 0
}

// HasWarnings reports whether any check warned.
func (r *Report) HasWarnings() bool {
	return r.Summary.Warnings > 0
}

// Problems returns the warning and error results in order.
func (r *Report) Problems() []*CheckResult {
	var out []*CheckResult
	for _, res := range r.Results {
		if res.problem() {
			out = append(out, res)
		}
	}
	return out
}
