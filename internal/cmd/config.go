package cmd

import (
	"os"
	"path/filepath"
	"strings"
)

// ConfigEnv names the environment variable holding a configuration file
// path.
const ConfigEnv = "EHCI_ARENA_CONFIG"

// defaultConfigName is the base name searched in the working directory.
const defaultConfigName = "ehci-arena"

// FindUserConfig returns the --config value from args, falling back to
// [ConfigEnv].
func FindUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv(ConfigEnv)
}

// ConfigPaths returns candidate configuration files per format. A user path
// is routed to the loader matching its extension and takes priority over
// the working-directory defaults. Missing files are ignored by the loaders.
func ConfigPaths(userPath string) (jsonPaths, yamlPaths, tomlPaths []string) {
	if userPath != "" {
		switch strings.ToLower(filepath.Ext(userPath)) {
		case ".yaml", ".yml":
			yamlPaths = append(yamlPaths, userPath)
		case ".toml":
			tomlPaths = append(tomlPaths, userPath)
		default:
			jsonPaths = append(jsonPaths, userPath)
		}
	}
	jsonPaths = append(jsonPaths, defaultConfigName+".json")
	yamlPaths = append(yamlPaths, defaultConfigName+".yaml", defaultConfigName+".yml")
	tomlPaths = append(tomlPaths, defaultConfigName+".toml")
	return jsonPaths, yamlPaths, tomlPaths
}
