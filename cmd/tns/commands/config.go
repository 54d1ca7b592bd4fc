package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/tns/internal/config"
	"github.com/thoreinstein/tns/internal/editor"
	"github.com/thoreinstein/tns/internal/errors"
	"github.com/thoreinstein/tns/internal/paths"
	"github.com/thoreinstein/tns/pkg/fileutil"
)

// configKeys lists the settable keys in display order.
var configKeys = []string{
	config.KeyRelease,
	config.KeyProfileDir,
	config.KeyRegistryURL,
	config.KeyBridgeURL,
	config.KeyNpmPath,
}

var configFormat string

func init() {
	configListCmd.Flags().StringVar(&configFormat, "format", "yaml",
		"output format: yaml, json, toml")
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage tns configuration",
	Long: `Manage tns configuration stored in ~/.config/tns/config.yaml.

Without a subcommand, lists all configuration values.`,
	Example: `  # List all configuration
  tns config

  # Get a specific value
  tns config get registry_url

  # Build release by default
  tns config set release true

See Also: tns doctor`,
	RunE: runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a single resolved configuration value by key.

Valid keys: ` + strings.Join(configKeys, ", "),
	Example: `  tns config get npm_path

See Also: tns config set, tns config list`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and write it to the config file.

The value is validated before anything is written.`,
	Example: `  tns config set release true
  tns config set registry_url https://npm.example.com

See Also: tns config get, tns config list`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration",
	Long:  `List all resolved configuration values in YAML, JSON or TOML.`,
	Example: `  tns config list
  tns config list --format json

See Also: tns config get, tns config set`,
	Args: cobra.NoArgs,
	RunE: runConfigList,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open configuration in $EDITOR",
	Long: `Open the configuration file in your default editor.

Uses $EDITOR, then $VISUAL, then nano or vi. A config file
holding the current values is written first if none exists.`,
	Example: `  EDITOR=nano tns config edit

See Also: tns config list`,
	Args: cobra.NoArgs,
	RunE: runConfigEdit,
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	if !slices.Contains(configKeys, key) {
		return unknownKeyError(key)
	}
	fmt.Fprintln(cmd.OutOrStdout(), viper.GetString(key))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	if !slices.Contains(configKeys, key) {
		return unknownKeyError(key)
	}

	if key == config.KeyRelease {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return errors.NewUserError(errors.Newf("invalid value for %s: %q", key, value), "use true or false")
		}
		viper.Set(key, b)
	} else {
		viper.Set(key, value)
	}

	cfg, err := config.Current()
	if err != nil {
		return errors.NewConfigError(err)
	}
	for _, verr := range config.Validate(cfg) {
		var fe *config.FieldError
		if errors.As(verr, &fe) && fe.Field == key {
			return errors.NewUserError(verr, "")
		}
	}

	if err := writeConfig(cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, viper.GetString(key))
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Current()
	if err != nil {
		return errors.NewConfigError(err)
	}
	return encodeConfig(cmd.OutOrStdout(), cfg, configFormat)
}

// encodeConfig writes cfg to w in format.
func encodeConfig(w io.Writer, cfg *config.Config, format string) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case "", "yaml":
		data, err = yaml.Marshal(cfg)
	case "json":
		data, err = json.MarshalIndent(cfg, "", "  ")
		data = append(data, '\n')
	case "toml":
		data, err = toml.Marshal(cfg)
	default:
		return errors.NewUserError(errors.Newf("unknown format %q", format), "use yaml, json or toml")
	}
	if err != nil {
		return errors.Wrapf(err, "marshaling config as %s", format)
	}

	_, err = w.Write(data)
	return err
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	configPath := config.FilePath()

	ok, err := paths.Exists(configPath)
	if err != nil {
		return err
	}
	if !ok {
		cfg, err := config.Current()
		if err != nil {
			return errors.NewConfigError(err)
		}
		if err := writeConfig(cfg); err != nil {
			return err
		}
	}

	return editor.Open(cmd.Context(), newRunner(cmd), configPath)
}

// writeConfig writes cfg to the config file in use.
func writeConfig(cfg *config.Config) error {
	configPath := config.FilePath()

	if err := paths.EnsureDir(filepath.Dir(configPath), paths.DefaultDirPerm); err != nil {
		return errors.Wrap(err, "creating config directory")
	}

	if err := fileutil.AtomicWriteYAML(configPath, cfg); err != nil {
		return errors.Wrap(err, "writing config file")
	}
	return nil
}

func unknownKeyError(key string) error {
	return errors.NewUserError(
		errors.Newf("unknown config key %q", key),
		"Valid keys: "+strings.Join(configKeys, ", "),
	)
}
