// Package ioconfig provides I/O operations for loading configuration
// from files, environment variables and flags.
// This is an impure package that handles file system and flag operations.
package ioconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/seqlims/seqdb/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// LoadResult contains the loaded configuration and metadata about the
// source.
type LoadResult struct {
	Config     *config.Config
	SourcePath string // path to config file used, or empty
	Source     string // "file", "defaults", or "defaults+env"
}

// Load reads configuration from a YAML file and returns a Config with
// source info. If configPath is empty, it looks for the default file
// at ~/.config/seqdb/seqdb.yaml.
//
// Precedence: flags > env vars > config file > defaults.
func Load(configPath string) (*LoadResult, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetEnvPrefix("SEQDB")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Defaults are registered before reading the file so AutomaticEnv
	// knows which keys to check.
	defaults := config.New()
	v.SetDefault("database.host", defaults.Database.Host)
	v.SetDefault("database.port", defaults.Database.Port)
	v.SetDefault("database.user", defaults.Database.User)
	v.SetDefault("database.password", defaults.Database.Password)
	v.SetDefault("database.database", defaults.Database.Database)
	v.SetDefault("database.ssl_mode", defaults.Database.SSLMode)
	v.SetDefault("database.batch_size", defaults.Database.BatchSize)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("log.destination", defaults.Log.Destination)
	v.SetDefault("jobs_number", defaults.JobsNumber)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		defaultPath := config.ConfigFilePath(homeDir)
		if _, statErr := os.Stat(defaultPath); statErr == nil {
			v.SetConfigFile(defaultPath)
		}
	}

	configFileRead := false
	usedConfigPath := ""

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if configPath != "" {
				return nil, fmt.Errorf("config file not found: %s", configPath)
			}
		} else if configPath != "" || v.ConfigFileUsed() != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		configFileRead = true
		usedConfigPath = v.ConfigFileUsed()
	}

	var fileCfg config.Config
	if err := v.Unmarshal(&fileCfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Start from a valid default config and apply the file/env values
	// through options, so malformed values are rejected with warnings
	// instead of corrupting the config.
	cfg := config.New()
	opts := fileCfg.ToOptions()
	opts = append(opts, config.OptHomeDir(homeDir))
	cfg.Update(opts)

	source := "defaults"
	if configFileRead {
		source = "file"
	} else if hasEnvVars() {
		source = "defaults+env"
	}

	return &LoadResult{
		Config:     cfg,
		SourcePath: usedConfigPath,
		Source:     source,
	}, nil
}

// hasEnvVars checks if any SEQDB_* environment variables are set.
func hasEnvVars() bool {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "SEQDB_") {
			return true
		}
	}
	return false
}

// BindFlags applies cobra command flags to the config. CLI flags take
// precedence over config file and environment values.
func BindFlags(cmd *cobra.Command, cfg *config.Config) (*config.Config, error) {
	v := viper.New()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	var opts []config.Option
	if v.IsSet("host") {
		opts = append(opts, config.OptDatabaseHost(v.GetString("host")))
	}
	if v.IsSet("port") {
		opts = append(opts, config.OptDatabasePort(v.GetInt("port")))
	}
	if v.IsSet("user") {
		opts = append(opts, config.OptDatabaseUser(v.GetString("user")))
	}
	if v.IsSet("password") {
		opts = append(opts, config.OptDatabasePassword(v.GetString("password")))
	}
	if v.IsSet("database") {
		opts = append(opts, config.OptDatabaseDatabase(v.GetString("database")))
	}
	if v.IsSet("ssl-mode") {
		opts = append(opts, config.OptDatabaseSSLMode(v.GetString("ssl-mode")))
	}
	if v.IsSet("jobs") {
		opts = append(opts, config.OptJobsNumber(v.GetInt("jobs")))
	}

	cfg.Update(opts)
	return cfg, nil
}
