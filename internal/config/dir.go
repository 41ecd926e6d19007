package config

import (
	"os"
	"path/filepath"
)

// EnvConfigDir overrides the config directory, mainly for tests and
// portable installs.
const EnvConfigDir = "RESTBENCH_CONFIG_DIR"

// Dir returns the directory holding settings and bindings files. The
// directory is not created here; writers MkdirAll before saving.
func Dir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	if base, err := os.UserConfigDir(); err == nil {
		return filepath.Join(base, "restbench")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".restbench")
	}
	return ".restbench"
}
