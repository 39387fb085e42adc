package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/boldcurate/eyebold/internal/ioconfig"
	"github.com/boldcurate/eyebold/internal/iofs"
	"github.com/boldcurate/eyebold/internal/iologger"
	"github.com/boldcurate/eyebold/pkg/config"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var (
	cfgFile      string
	verboseCount int

	cfg *config.Config
	log *slog.Logger
)

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "eyebold",
		Short:   "eyebold curates DNA barcode records into a reference-quality export set",
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("failed to determine home directory: %w", err)
			}

			if err := iofs.EnsureDirs(homeDir); err != nil {
				return err
			}
			if err := iofs.EnsureConfigFile(homeDir); err != nil {
				return err
			}

			result, err := ioconfig.Load(cfgFile, homeDir)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			cfg = result.Config

			switch {
			case verboseCount >= 2:
				cfg.Update([]config.Option{config.OptLogLevel("debug")})
			case verboseCount == 1:
				cfg.Update([]config.Option{config.OptLogLevel("info")})
			}

			if err := iologger.Init(config.LogDir(homeDir), cfg.Log, false); err != nil {
				return err
			}
			log = slog.Default()

			switch result.Source {
			case "file":
				log.Info("config loaded", "source", "file", "path", result.SourcePath)
			case "defaults+env":
				log.Info("config loaded", "source", "defaults with environment overrides")
			case "defaults":
				log.Info("config loaded", "source", "built-in defaults")
			}

			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ~/.config/eyebold/config.yaml)")
	rootCmd.PersistentFlags().CountVarP(&verboseCount, "verbose", "v",
		"raise log verbosity (repeatable)")

	rootCmd.AddCommand(
		getBuildCmd(),
		getUpdateCmd(),
		getReviewCmd(),
		getQueryCmd(),
		getExportCmd(),
		getBuildLocationDBCmd(),
	)

	return rootCmd
}

// getConfig returns the loaded configuration, for use in subcommands.
func getConfig() *config.Config {
	return cfg
}

// storeArgs holds the three leading positional arguments every subcommand
// takes: the primary store path, the climate store path, and the marker code.
type storeArgs struct {
	StorePath   string
	ClimatePath string
	MarkerCode  string
}

func parseStoreArgs(args []string) storeArgs {
	return storeArgs{
		StorePath:   args[0],
		ClimatePath: args[1],
		MarkerCode:  args[2],
	}
}
