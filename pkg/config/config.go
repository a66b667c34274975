// Package config provides configuration management for SeqDB.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > seqdb.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in seqdb.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, seqdb.yaml, and env vars):
//   - Database: host, port, user, password, database, ssl_mode, batch_size
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Import.FacilityProfile, Import.ActorID (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use SEQDB_ prefix with underscores for nesting:
//
//	SEQDB_DATABASE_HOST=localhost
//	SEQDB_DATABASE_PORT=5432
//	SEQDB_LOG_LEVEL=info
//	SEQDB_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete SeqDB configuration.
type Config struct {
	// Database contains PostgreSQL connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Import contains settings specific to the import command.
	Import ImportConfig `mapstructure:"import" yaml:"import"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel
	// read-side aggregation. Default is the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize defines the number of sample rows read from a batch
	// manifest at a time. Row persistence itself is strictly sequential
	// inside the import transaction, so this only bounds manifest reads.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// ImportConfig contains settings specific to the import command.
type ImportConfig struct {
	// FacilityProfile names the facility profile from facilities.yaml
	// whose defaults (sequencer type, base directory, fastq patterns)
	// are merged into run metadata before registration.
	// Runtime-only field, set by CLI flag.
	FacilityProfile string `mapstructure:"facility_profile" yaml:"facility_profile"`

	// ActorID identifies the user on whose behalf the import runs.
	// Recorded as created_by on the sequencing run.
	// Runtime-only field, set by CLI flag.
	ActorID string `mapstructure:"actor_id" yaml:"actor_id"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "seqdb",
			SSLMode:   "disable",
			BatchSize: 5_000,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}
	return res
}
