package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/tns/internal/config"
	"github.com/thoreinstein/tns/internal/doctor"
	"github.com/thoreinstein/tns/internal/errors"
	"github.com/thoreinstein/tns/internal/paths"
	"github.com/thoreinstein/tns/internal/project"
)

var (
	doctorJSON    bool
	doctorQuiet   bool
	doctorVerbose bool
	doctorFix     bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorQuiet, "quiet", false,
		"suppress output, exit code only")
	doctorCmd.Flags().BoolVar(&doctorVerbose, "verbose", false,
		"show detailed check-by-check output")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false,
		"reset world-writable tns paths to safe permissions")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose configuration and toolchain issues",
	Long: `Run diagnostic checks on the tns configuration, the current project and
the native toolchains of every platform this OS can build.

Output modes (mutually exclusive):
  (default)   Show errors and warnings
  --verbose   Show all checks including passed ones
  --quiet     No output, exit code only
  --json      Machine-readable JSON output

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
	Args:    cobra.NoArgs,
	PreRunE: validateDoctorFlags,
	RunE:    runDoctor,
}

// validateDoctorFlags ensures output flags are mutually exclusive.
func validateDoctorFlags(_ *cobra.Command, _ []string) error {
	count := 0
	for _, set := range []bool{doctorJSON, doctorQuiet, doctorVerbose} {
		if set {
			count++
		}
	}
	if count > 1 {
		return errors.NewUserError(errors.New("flags --json, --quiet, and --verbose are mutually exclusive"), "")
	}
	return nil
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	runner, err := newDoctorRunner(cmd)
	if err != nil {
		return err
	}

	report := runner.Run(cmd.Context())
	out := cmd.OutOrStdout()

	if err := outputDoctorReport(out, report); err != nil {
		return err
	}

	if doctorFix {
		if applyFixes(out, runner) > 0 {
			report = runner.Run(cmd.Context())
		}
	}

	// Determine exit code based on results
	if report.HasErrors() {
		return errors.NewExitError(nil, errors.ExitSystem)
	}
	if report.HasWarnings() {
		return errors.NewExitError(nil, errors.ExitUser)
	}
	return nil
}

// newDoctorRunner registers the config, project, npm, path and
// per-platform toolchain checks.
func newDoctorRunner(cmd *cobra.Command) (*doctor.Runner, error) {
	// A broken config file is reported by the config check itself.
	cfg, err := config.Current()
	if err != nil {
		cfg = config.Default()
	}

	dir, err := workDir()
	if err != nil {
		return nil, err
	}

	runner := doctor.NewRunner()
	runner.AddCheck(doctor.NewConfigCheck(cfg, config.FilePath()))
	runner.AddCheck(doctor.NewProjectCheck(dir))

	execRunner := newRunner(cmd)
	runner.AddCheck(doctor.NewNpmCheck(execRunner, cfg.NpmPath))

	// Toolchain checks need a project only to construct the services.
	// ToolchainCheck skips the android project checks, so an empty
	// project is enough outside one.
	proj, err := project.Load(dir)
	if err != nil {
		proj = &project.Project{Dir: dir}
	}
	svc, err := newPlatformService(cmd, proj, cfg)
	if err != nil {
		return nil, err
	}
	for _, key := range paths.Platforms() {
		def, err := svc.Definition(key)
		if err != nil {
			continue
		}
		runner.AddCheck(doctor.NewToolchainCheck(def))
	}

	runner.AddCheck(doctor.NewPathCheck(
		doctor.Target{Label: config.KeyProfileDir, Path: cfg.ProfileDir, Dir: true},
		doctor.Target{Label: "config_dir", Path: paths.ConfigHome(), Dir: true},
		doctor.Target{Label: "config_file", Path: config.FilePath()},
		doctor.Target{Label: "platforms_dir", Path: platformsDirOf(proj), Dir: true},
	))

	return runner, nil
}

func platformsDirOf(proj *project.Project) string {
	if proj.ID == "" {
		return ""
	}
	return proj.PlatformsDir()
}

// applyFixes runs every fixable check's Fix and returns how many paths
// were fixed.
func applyFixes(w io.Writer, runner *doctor.Runner) int {
	fixed := 0
	for _, check := range runner.Checks() {
		fixer, ok := check.(doctor.Fixer)
		if !ok || !fixer.CanFix() {
			continue
		}
		for _, res := range fixer.Fix() {
			if res.Fixed {
				fixed++
				if !doctorQuiet && !doctorJSON {
					fmt.Fprintf(w, "%s fixed %s: %s\n", color.GreenString("✓"), res.Path, res.Description)
				}
				continue
			}
			if !doctorQuiet && !doctorJSON {
				fmt.Fprintf(w, "%s could not fix %s: %s\n", color.RedString("✗"), res.Path, res.Description)
			}
		}
	}
	return fixed
}

func outputDoctorReport(w io.Writer, report *doctor.Report) error {
	if doctorQuiet {
		return nil
	}

	if doctorJSON {
		return outputDoctorJSON(w, report)
	}

	return outputDoctorText(w, report)
}

func outputDoctorJSON(w io.Writer, report *doctor.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return errors.Wrap(err, "encoding JSON")
	}
	return nil
}

func outputDoctorText(w io.Writer, report *doctor.Report) error {
	// In normal mode, show only errors and warnings
	// In verbose mode, show all checks
	showAll := doctorVerbose

	hasOutput := false
	for _, result := range report.Results {
		problem := result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning
		if !showAll && !problem {
			continue
		}

		hasOutput = true
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)

		if result.FixHint != "" && problem {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}

	if hasOutput || showAll {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors (%s/%s)\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors,
		runtime.GOOS, runtime.GOARCH)

	return nil
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return color.GreenString("✓")
	case doctor.SeverityInfo:
		return color.CyanString("ℹ")
	case doctor.SeverityWarning:
		return color.YellowString("⚠")
	case doctor.SeverityError:
		return color.RedString("✗")
	default:
		return "?"
	}
}

