// Package hostconfig is the demo host's line-oriented settings file —
// the same key=value-per-line format footprint-tools-cli's
// internal/config package uses, trimmed to the handful of settings a
// cmdforge host actually needs: the pager command, the color theme, the
// remainder-parameter join separator, and the alias comparer. None of
// this is read by the framework packages themselves; they take their
// comparer and options as explicit constructor arguments.
package hostconfig

import (
	"os"
	"path/filepath"
)

// FilePath returns the settings file path under the user's home
// directory.
func FilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cmdforgerc"), nil
}

// LogFilePath returns the default log file path under the user's home
// directory, the equivalent of footprint-tools-cli's
// internal/paths.LogFilePath for this host.
func LogFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cmdforge", "cmdforge.log"), nil
}
