// Package iofs prepares the application's file system layout: config,
// cache and log directories, plus the default configuration files.
package iofs

import (
	"os"

	"github.com/seqlims/seqdb/pkg/config"
	"github.com/seqlims/seqdb/pkg/templates"
)

// EnsureDirs creates the config, cache and log directories when they
// do not exist yet.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes the embedded seqdb.yaml template when no
// config file exists yet.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	err := os.WriteFile(configPath, []byte(templates.ConfigYAML), 0644)
	if err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

// EnsureFacilitiesFile writes the embedded facilities.yaml template
// when no facilities file exists yet.
func EnsureFacilitiesFile(homeDir string) error {
	facilitiesPath := config.FacilitiesFilePath(homeDir)

	if _, err := os.Stat(facilitiesPath); err == nil {
		return nil
	}

	err := os.WriteFile(
		facilitiesPath, []byte(templates.FacilitiesYAML), 0644,
	)
	if err != nil {
		return CopyFileError(facilitiesPath, err)
	}

	return nil
}
