// Package iotesting provides shared test utilities for unit and
// integration tests: a safe test configuration and an in-memory
// db.Store implementation.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"github.com/seqlims/seqdb/internal/ioconfig"
	"github.com/seqlims/seqdb/pkg/config"
)

const (
	// TestDatabaseName is the database name used for all integration tests.
	// This ensures tests never accidentally run against production databases.
	TestDatabaseName = "seqdb_test"
)

// GetTestConfig returns a configuration suitable for integration tests.
// It loads the standard config (from file or defaults) and overrides the
// database name to TestDatabaseName for safety.
//
// Usage in integration tests:
//
//	func TestSomething(t *testing.T) {
//	    if testing.Short() {
//	        t.Skip("Skipping integration test")
//	    }
//	    cfg := iotesting.GetTestConfig()
//	    // ... use cfg for database operations
//	}
func GetTestConfig() *config.Config {
	// Load config using the standard config system
	result, err := ioconfig.Load("")

	var cfg *config.Config
	if err != nil {
		// No config file found, use defaults
		cfg = config.New()
	} else {
		cfg = result.Config
	}

	// Always use test database for safety
	cfg.Database.Database = TestDatabaseName

	return cfg
}

// GetTestDatabaseConfig returns only the database configuration for tests.
// This is useful when you only need database config without the full Config
// struct.
func GetTestDatabaseConfig() *config.DatabaseConfig {
	cfg := GetTestConfig()
	return &cfg.Database
}
