package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gnames/gn"
	"github.com/seqlims/seqdb/internal/ioconfig"
	"github.com/seqlims/seqdb/internal/iofs"
	"github.com/seqlims/seqdb/internal/iologger"
	"github.com/seqlims/seqdb/pkg/config"
	"github.com/seqlims/seqdb/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
)

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "seqdb",
		Short: "seqdb ingests sequencing runs and links samples to specimens",
		Long: `seqdb manages the sequencing side of the LIMS database: it imports
facility batch manifests, registers sequencing runs idempotently, links
each sample to its specimen record via the WUID extracted from the
facility sample name, and answers run and sample queries.

Main commands:
  - create:  create the database schema
  - migrate: apply schema migrations
  - import:  import a facility batch manifest
  - runs:    list sequencing runs with link statistics
  - samples: list the samples of one run
  - delete:  remove a run and all of its samples

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (SEQDB_*)
  3. Config file (~/.config/seqdb/seqdb.yaml)
  4. Built-in defaults

Environment Variables:
  Nested fields use underscores (database.host -> SEQDB_DATABASE_HOST).

  Examples:
    SEQDB_DATABASE_HOST      PostgreSQL host
    SEQDB_DATABASE_PORT      PostgreSQL port
    SEQDB_DATABASE_USER      PostgreSQL user
    SEQDB_DATABASE_PASSWORD  PostgreSQL password
    SEQDB_DATABASE_DATABASE  Database name
    SEQDB_LOG_LEVEL          Log level (debug/info/warn/error)
    SEQDB_JOBS_NUMBER        Concurrent workers for queries`,
		Version:           Version,
		PersistentPreRunE: bootstrap,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ~/.config/seqdb/seqdb.yaml)")

	// Connection overrides, highest in the config precedence chain.
	rootCmd.PersistentFlags().String("host", "", "PostgreSQL host")
	rootCmd.PersistentFlags().Int("port", 0, "PostgreSQL port")
	rootCmd.PersistentFlags().String("user", "", "PostgreSQL user")
	rootCmd.PersistentFlags().String("password", "", "PostgreSQL password")
	rootCmd.PersistentFlags().String("database", "", "database name")
	rootCmd.PersistentFlags().String("ssl-mode", "", "PostgreSQL SSL mode")
	rootCmd.PersistentFlags().Int("jobs", 0,
		"concurrent workers for read-side queries")

	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "version for seqdb")

	rootCmd.AddCommand(getCreateCmd())
	rootCmd.AddCommand(getMigrateCmd())
	rootCmd.AddCommand(getImportCmd())
	rootCmd.AddCommand(getRunsCmd())
	rootCmd.AddCommand(getSamplesCmd())
	rootCmd.AddCommand(getDeleteCmd())

	return rootCmd
}

// bootstrap prepares the file system layout, seeds default config
// files on first run, loads the configuration and initializes logging.
func bootstrap(cmd *cobra.Command, args []string) error {
	// Until the configuration is loaded, log to stdout with defaults;
	// iologger reconfigures the destination below.
	slog.SetDefault(logger.New(&config.LogConfig{
		Format: "text",
		Level:  "info",
	}))

	homeDir, err := os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if cfgFile == "" {
		if err = iofs.EnsureConfigFile(homeDir); err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		if err = iofs.EnsureFacilitiesFile(homeDir); err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
	}

	result, err := ioconfig.Load(cfgFile)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	cfg = result.Config

	if _, err = ioconfig.BindFlags(cmd, cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	logDir := config.LogDir(cfg.HomeDir)
	if err = iologger.Init(logDir, cfg.Log, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	switch result.Source {
	case "file":
		fmt.Printf("Using config from: %s\n", result.SourcePath)
	case "defaults+env":
		fmt.Println("Using built-in defaults with environment overrides")
	case "defaults":
		fmt.Println("Using built-in defaults (no config file)")
	}

	return nil
}

// getConfig returns the loaded configuration (for use in subcommands)
func getConfig() *config.Config {
	return cfg
}
