package config

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/thoreinstein/tns/internal/paths"
)

// Configuration keys.
const (
	KeyRelease     = "release"
	KeyProfileDir  = "profile_dir"
	KeyRegistryURL = "registry_url"
	KeyBridgeURL   = "bridge_url"
	KeyNpmPath     = "npm_path"
)

// Defaults for remote endpoints.
const (
	DefaultRegistryURL = "https://registry.npmjs.org"
	DefaultBridgeURL   = "https://s3.amazonaws.com/nativescript/ios/%s/libTNSBridge.zip"
	DefaultNpmPath     = "npm"
)

// Config is the resolved configuration.
type Config struct {
	// Release selects the release build configuration instead of debug.
	Release bool `mapstructure:"release" yaml:"release" toml:"release" json:"release"`
	// ProfileDir is the root of the per-user framework cache.
	ProfileDir string `mapstructure:"profile_dir" yaml:"profile_dir" toml:"profile_dir" json:"profile_dir"`
	// RegistryURL is the package registry queried for framework versions.
	RegistryURL string `mapstructure:"registry_url" yaml:"registry_url" toml:"registry_url" json:"registry_url"`
	// BridgeURL is a format string taking the framework version.
	BridgeURL string `mapstructure:"bridge_url" yaml:"bridge_url" toml:"bridge_url" json:"bridge_url"`
	// NpmPath is the npm executable used to fetch framework packages.
	NpmPath string `mapstructure:"npm_path" yaml:"npm_path" toml:"npm_path" json:"npm_path"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		ProfileDir:  paths.ProfileDir(),
		RegistryURL: DefaultRegistryURL,
		BridgeURL:   DefaultBridgeURL,
		NpmPath:     DefaultNpmPath,
	}
}

// Init registers search paths, environment binding and defaults.
// Call it once at startup before Load.
func Init() {
	// A missing .env is the common case.
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigHome())

	viper.SetEnvPrefix("TNS")
	viper.AutomaticEnv()

	d := Default()
	viper.SetDefault(KeyRelease, d.Release)
	viper.SetDefault(KeyProfileDir, d.ProfileDir)
	viper.SetDefault(KeyRegistryURL, d.RegistryURL)
	viper.SetDefault(KeyBridgeURL, d.BridgeURL)
	viper.SetDefault(KeyNpmPath, d.NpmPath)
}

// Load reads the configuration file. With an explicit path a missing file
// is an error; with an empty path defaults apply when no file is found.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "reading config file")
		}
		if path != "" {
			return nil, errors.Wrapf(err, "config file not found at %s", path)
		}
	}

	return Current()
}

// Current unmarshals the live Viper state, including flag bindings made
// after Load.
func Current() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}
	return &cfg, nil
}

// FilePath returns the config file Viper is using, or the default
// location under ConfigHome when none was found.
func FilePath() string {
	if f := viper.ConfigFileUsed(); f != "" {
		return f
	}
	return paths.ConfigHome() + string(os.PathSeparator) + "config.yaml"
}
