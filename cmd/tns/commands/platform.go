package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/tns/internal/errors"
	"github.com/thoreinstein/tns/internal/logging"
	"github.com/thoreinstein/tns/internal/platformsvc"
)

func init() {
	platformCmd.AddCommand(platformListCmd)
	platformCmd.AddCommand(platformAddCmd)
	rootCmd.AddCommand(platformCmd)
}

var platformCmd = &cobra.Command{
	Use:   "platform",
	Short: "Manage the project's native platforms",
	Long: `Manage the native platform projects of the current app.

Without a subcommand, lists installed and available platforms.`,
	Example: `  # List platforms
  tns platform

  # Add platforms
  tns platform add ios android

See Also: tns prepare, tns build`,
	Args: cobra.NoArgs,
	RunE: runPlatformList,
}

var platformListCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed and available platforms",
	Args:  cobra.NoArgs,
	RunE:  runPlatformList,
}

var platformAddCmd = &cobra.Command{
	Use:   "add [platform[@version]...]",
	Short: "Add native platform projects",
	Long: `Add one or more native platform projects from their framework packages.

A version suffix such as android@1.0.0 is accepted but ignored. With no
arguments on a terminal, an interactive picker offers the platforms that
can still be added on this OS.`,
	Example: `  # Add android
  tns platform add android

  # Pick interactively
  tns platform add

See Also: tns platform list`,
	RunE: runPlatformAdd,
}

// pickPlatforms prompts for one or more of options.
var pickPlatforms = func(options []string) ([]string, error) {
	idxs, err := fuzzyfinder.FindMulti(
		options,
		func(i int) string { return options[i] },
		fuzzyfinder.WithHeader("Select platforms to add (Tab to select multiple)"),
	)
	if err != nil {
		return nil, err
	}
	selected := make([]string, 0, len(idxs))
	for _, i := range idxs {
		selected = append(selected, options[i])
	}
	return selected, nil
}

func runPlatformList(cmd *cobra.Command, _ []string) error {
	svc, err := setup(cmd)
	if err != nil {
		return err
	}

	installed, err := svc.InstalledPlatforms()
	if err != nil {
		return classify(err)
	}
	available, err := svc.AvailablePlatforms()
	if err != nil {
		return classify(err)
	}

	printPlatformList(cmd.OutOrStdout(), installed, available)
	return nil
}

func printPlatformList(w io.Writer, installed, available []string) {
	if len(installed) > 0 {
		fmt.Fprintf(w, "Installed platforms: %s\n", color.GreenString(platformsvc.FormatList(installed)))
	} else {
		fmt.Fprintln(w, "No installed platforms found.")
	}

	if len(available) > 0 {
		fmt.Fprintf(w, "Available platforms for this OS: %s\n", color.CyanString(platformsvc.FormatList(available)))
	} else {
		fmt.Fprintln(w, "No platforms are available to add on this OS.")
	}
}

func runPlatformAdd(cmd *cobra.Command, args []string) error {
	svc, err := setup(cmd)
	if err != nil {
		return err
	}

	keys := args
	if len(keys) == 0 && logging.IsInteractive(cmd.InOrStdin(), cmd.OutOrStdout()) {
		keys, err = selectPlatforms(svc)
		if err != nil {
			return err
		}
		if len(keys) == 0 {
			return nil
		}
	}

	logging.FromContext(cmd.Context()).Debug("adding platforms", "platforms", keys)
	return classify(svc.AddPlatforms(cmd.Context(), keys))
}

// selectPlatforms offers the available platforms. Aborting the picker
// selects nothing.
func selectPlatforms(svc *platformsvc.Service) ([]string, error) {
	available, err := svc.AvailablePlatforms()
	if err != nil {
		return nil, classify(err)
	}
	if len(available) == 0 {
		return nil, nil
	}

	selected, err := pickPlatforms(available)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "interactive platform selection failed")
	}
	return selected, nil
}
