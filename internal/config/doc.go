// Package config loads the tns configuration through Viper.
//
// Values are resolved from, in order of precedence: explicit flags bound by
// the command layer, TNS_* environment variables (a .env file in the
// working directory is loaded first), config.yaml in the working directory
// or ~/.config/tns, and the defaults registered by [Init].
//
//	release: false
//	profile_dir: ~/.local/share/tns
//	registry_url: https://registry.npmjs.org
//	bridge_url: https://s3.amazonaws.com/nativescript/ios/%s/libTNSBridge.zip
//	npm_path: npm
//
// The loaded [Config] is passed explicitly to the services that need it;
// workflows never read Viper directly.
package config
