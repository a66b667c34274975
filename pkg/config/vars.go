package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "seqdb"

	// DefaultSequencerType is applied when run metadata omits the
	// sequencer type.
	DefaultSequencerType = "NovaSeq"

	// DefaultFilePatternR1 and DefaultFilePatternR2 are the fastq file
	// suffixes applied when run metadata omits them.
	DefaultFilePatternR1 = "_R1.fastq.gz"
	DefaultFilePatternR2 = "_R2.fastq.gz"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/seqdb by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/seqdb by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/seqdb/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the seqdb.yaml file.
// Returns ~/.config/seqdb/seqdb.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "seqdb.yaml")
}

// FacilitiesFilePath returns the full path to the facilities.yaml file.
// Returns ~/.config/seqdb/facilities.yaml by default.
func FacilitiesFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "facilities.yaml")
}
