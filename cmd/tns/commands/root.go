// Package commands implements the CLI commands for tns.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/tns/cmd"
	"github.com/thoreinstein/tns/internal/config"
	"github.com/thoreinstein/tns/internal/errors"
	"github.com/thoreinstein/tns/internal/logging"
)

// pathFlag holds the value of the --path flag.
var pathFlag string

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&pathFlag, "path", "",
		"project directory (default: current directory)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv, -vvv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("tns version {{.Version}}\n")

	// Errors are printed by PrintError so the suggestion can follow them.
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	_, configLoadErr = config.Load("")
}

var rootCmd = &cobra.Command{
	Use:   "tns",
	Short: "Create, prepare and build native mobile projects",
	Long: `tns scaffolds an app and provisions native platform projects for it.

Each platform (ios, android) is added from its framework package, staged
with the shared app sources on prepare, and built with the native
toolchain: ant and the Android SDK for android, xcodebuild for ios.`,
	Example: `  # Create an app and add android
  tns create Hello --id com.example.hello
  cd Hello
  tns platform add android

  # Stage the app sources and build
  tns prepare android
  tns build android --release

  See Also: tns doctor, tns config`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfig(cmd)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "pass only one of -q and -v")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("TNS_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2
				case "2":
					v = 3
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var primaryHandler slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primaryHandler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	default:
		primaryHandler = logging.NewHandler(cmd.ErrOrStderr(), opts)
	}

	handlers := []slog.Handler{primaryHandler}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(errors.Wrap(err, "opening log file"), "check --log-file points to a writable location")
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// checkConfig surfaces a config file that failed to load. help, version
// and config itself stay usable so the file can be repaired.
func checkConfig(cmd *cobra.Command) error {
	if configLoadErr == nil {
		return nil
	}
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "version", "config", "doctor":
			return nil
		}
	}
	return errors.NewConfigError(configLoadErr)
}

// Execute runs the root command with ctx, which cancels child processes
// when it is done.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// PrintError writes err and its suggestion, if any, to w. An ExitError
// without a cause only carries an exit code and prints nothing.
func PrintError(w io.Writer, err error) {
	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err == nil {
			return
		}
		fmt.Fprintln(w, color.RedString("Error:"), exitErr.Err.Error())
		if exitErr.Suggestion != "" {
			fmt.Fprintln(w, exitErr.Suggestion)
		}
		return
	}
	fmt.Fprintln(w, color.RedString("Error:"), err.Error())
}
