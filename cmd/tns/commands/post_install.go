package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/tns/internal/bootstrap"
	"github.com/thoreinstein/tns/internal/config"
	"github.com/thoreinstein/tns/internal/errors"
	"github.com/thoreinstein/tns/internal/logging"
	"github.com/thoreinstein/tns/internal/npm"
	"github.com/thoreinstein/tns/internal/versioning"
)

func init() {
	rootCmd.AddCommand(postInstallCmd)
}

var postInstallCmd = &cobra.Command{
	Use:    "dev-post-install",
	Short:  "Download the iOS bridge library into the framework cache",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE:   runPostInstall,
}

func runPostInstall(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Current()
	if err != nil {
		return errors.NewConfigError(err)
	}
	logger := logging.FromContext(cmd.Context())

	cache, err := versioning.NewCache(npm.NewClient(cfg.RegistryURL), cfg.ProfileDir)
	if err != nil {
		return errors.NewConfigError(err)
	}

	b := bootstrap.New(cache, cfg.BridgeURL, bootstrap.WithLogger(logger))
	fetched, err := b.Run(cmd.Context())
	if err != nil {
		return errors.NewSystemError(err, "Check registry_url and bridge_url with: tns doctor")
	}
	if fetched {
		fmt.Fprintln(cmd.OutOrStdout(), "iOS bridge library installed.")
	}
	return nil
}
