package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thoreinstein/tns/internal/config"
)

func init() {
	buildCmd.Flags().Bool("release", false, "build the release configuration instead of debug")
	_ = viper.BindPFlag(config.KeyRelease, buildCmd.Flags().Lookup("release"))
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build <platform>",
	Short: "Build a platform project",
	Long: `Build the platform's native project with its toolchain: ant for android,
xcodebuild for ios.

--release (or release: true in the config, or TNS_RELEASE=true) selects
the release configuration for android.`,
	Example: `  # Debug build
  tns build android

  # Release build
  tns build android --release

See Also: tns prepare, tns doctor`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	svc, err := setup(cmd)
	if err != nil {
		return err
	}
	return classify(svc.BuildPlatform(cmd.Context(), args[0]))
}
