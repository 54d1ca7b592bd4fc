package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(prepareCmd)
}

var prepareCmd = &cobra.Command{
	Use:   "prepare <platform>",
	Short: "Stage the app sources into a platform project",
	Long: `Copy the app directory into the platform's native project.

Platform-tagged files such as main.android.js are kept for the target
platform under their plain name (main.js) and dropped for the others.
Resources under app/App_Resources/<Platform> are merged into the native
project's resources.`,
	Example: `  tns prepare android

See Also: tns build`,
	Args: cobra.ExactArgs(1),
	RunE: runPrepare,
}

func runPrepare(cmd *cobra.Command, args []string) error {
	svc, err := setup(cmd)
	if err != nil {
		return err
	}

	dir, err := svc.PreparePlatform(cmd.Context(), args[0])
	if err != nil {
		return classify(err)
	}
	if dir != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Project prepared at %s\n", dir)
	}
	return nil
}
