// Package config manages the user-level CLI configuration file
// (~/.claudekit/config.yaml) through Viper, overlaid by CLAUDEKIT_*
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/claudekit-labs/claudekit/internal/analyze"
	"github.com/claudekit-labs/claudekit/internal/branding"
	"github.com/claudekit-labs/claudekit/internal/scanner"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Config keys.
const (
	KeyMergeStrategy      = "merge.strategy"
	KeyBackupKeep         = "backup.keep"
	KeyScanConfigFileCap  = "scan.config_file_cap"
	KeyAnalyzerCommand    = "analyzer.command"
	KeyAnalyzerTimeout    = "analyzer.timeout"
	KeyAnalyzerIdleWindow = "analyzer.idle_timeout"
)

// DefaultBackupKeep is how many snapshots prune retains by default.
const DefaultBackupKeep = 5

// Dir returns the path to the config directory (~/.claudekit/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.claudekit/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyMergeStrategy, "merge")
	viper.SetDefault(KeyBackupKeep, DefaultBackupKeep)
	viper.SetDefault(KeyScanConfigFileCap, scanner.DefaultConfigFileCap)
	viper.SetDefault(KeyAnalyzerCommand, "claude")
	viper.SetDefault(KeyAnalyzerTimeout, analyze.DefaultTimeout)
	viper.SetDefault(KeyAnalyzerIdleWindow, analyze.DefaultIdleTimeout)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// MergeStrategy returns the configured default merge strategy.
func MergeStrategy() string { return viper.GetString(KeyMergeStrategy) }

// BackupKeep returns the configured snapshot retention count.
func BackupKeep() int { return viper.GetInt(KeyBackupKeep) }

// ScanConfigFileCap returns the configured config-file probe cap.
func ScanConfigFileCap() int { return viper.GetInt(KeyScanConfigFileCap) }

// AnalyzerOptions returns the configured external analyzer invocation options.
func AnalyzerOptions() analyze.Options {
	return analyze.Options{
		Command:     viper.GetString(KeyAnalyzerCommand),
		Timeout:     viper.GetDuration(KeyAnalyzerTimeout),
		IdleTimeout: viper.GetDuration(KeyAnalyzerIdleWindow),
	}
}
