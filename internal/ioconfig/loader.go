// Package ioconfig loads configuration from file, environment and flags.
// This is an impure package that handles file system and flag operations.
package ioconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/boldcurate/eyebold/pkg/config"
	"github.com/spf13/viper"
)

// LoadResult contains the loaded configuration and metadata about its source.
type LoadResult struct {
	Config     *config.Config
	SourcePath string // Path to config file used, or empty if using defaults
	Source     string // "file", "defaults", or "defaults+env"
}

// Load reads configuration from a YAML file and layers environment variable
// and default overrides on top of it.
// If configPath is empty, it searches the default location: ~/.config/eyebold/config.yaml.
// Returns error if an explicitly-given file is malformed or missing.
func Load(configPath, homeDir string) (*LoadResult, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	// Precedence: flags (bound separately by the CLI) > env vars > config file > defaults
	v.SetEnvPrefix("EYEBOLD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	defaults := config.New()
	v.SetDefault("harmonize.base_url", defaults.Harmonize.BaseURL)
	v.SetDefault("harmonize.workers", defaults.Harmonize.Workers)
	v.SetDefault("harmonize.retries", defaults.Harmonize.Retries)
	v.SetDefault("harmonize.retry_delay_seconds", defaults.Harmonize.RetryDelaySeconds)
	v.SetDefault("purge.trivial_size", defaults.Purge.TrivialSize)
	v.SetDefault("purge.small_size", defaults.Purge.SmallSize)
	v.SetDefault("purge.subproblem_min", defaults.Purge.SubproblemMin)
	v.SetDefault("purge.subproblem_max", defaults.Purge.SubproblemMax)
	v.SetDefault("purge.subproblem_step", defaults.Purge.SubproblemStep)
	v.SetDefault("geo.workers", defaults.Geo.Workers)
	v.SetDefault("geo.poll_interval_seconds", defaults.Geo.PollIntervalSeconds)
	v.SetDefault("geo.use_sql_download", defaults.Geo.UseSQLDownload)
	v.SetDefault("geo.batch_size", defaults.Geo.BatchSize)
	v.SetDefault("geo.chunk_size", defaults.Geo.ChunkSize)
	v.SetDefault("geo.epsilon", defaults.Geo.Epsilon)
	v.SetDefault("geo.retries", defaults.Geo.Retries)
	v.SetDefault("geo.retry_delay_seconds", defaults.Geo.RetryDelaySeconds)
	v.SetDefault("classify.binary_path", defaults.Classify.BinaryPath)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.destination", defaults.Log.Destination)
	v.SetDefault("jobs_number", defaults.JobsNumber)

	usedPath := configPath
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		defaultPath := config.ConfigFilePath(homeDir)
		if _, err := os.Stat(defaultPath); err == nil {
			v.SetConfigFile(defaultPath)
			usedPath = defaultPath
		}
	}

	configFileRead := false
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if configPath != "" {
				return nil, fmt.Errorf("config file not found: %s", configPath)
			}
			usedPath = ""
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		configFileRead = true
	}

	cfg := config.New()
	cfg.HomeDir = homeDir
	cfg.Update([]config.Option{
		config.OptHarmonizeBaseURL(v.GetString("harmonize.base_url")),
		config.OptHarmonizeWorkers(v.GetInt("harmonize.workers")),
		config.OptHarmonizeRetries(v.GetInt("harmonize.retries")),
		config.OptHarmonizeRetryDelaySeconds(v.GetInt("harmonize.retry_delay_seconds")),
		config.OptPurgeTrivialSize(v.GetInt("purge.trivial_size")),
		config.OptPurgeSmallSize(v.GetInt("purge.small_size")),
		config.OptPurgeSubproblemMin(v.GetInt("purge.subproblem_min")),
		config.OptPurgeSubproblemMax(v.GetInt("purge.subproblem_max")),
		config.OptPurgeSubproblemStep(v.GetInt("purge.subproblem_step")),
		config.OptGeoWorkers(v.GetInt("geo.workers")),
		config.OptGeoPollIntervalSeconds(v.GetInt("geo.poll_interval_seconds")),
		config.OptGeoUseSQLDownload(v.GetBool("geo.use_sql_download")),
		config.OptGeoBatchSize(v.GetInt("geo.batch_size")),
		config.OptGeoChunkSize(v.GetInt("geo.chunk_size")),
		config.OptGeoEpsilon(v.GetFloat64("geo.epsilon")),
		config.OptGeoRetries(v.GetInt("geo.retries")),
		config.OptGeoRetryDelaySeconds(v.GetInt("geo.retry_delay_seconds")),
		config.OptClassifyBinaryPath(v.GetString("classify.binary_path")),
		config.OptLogFormat(v.GetString("log.format")),
		config.OptLogLevel(v.GetString("log.level")),
		config.OptLogDestination(v.GetString("log.destination")),
		config.OptJobsNumber(v.GetInt("jobs_number")),
	})

	source := "defaults"
	if configFileRead {
		source = "file"
	} else if hasEnvVars() {
		source = "defaults+env"
	}

	return &LoadResult{
		Config:     cfg,
		SourcePath: usedPath,
		Source:     source,
	}, nil
}

func hasEnvVars() bool {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "EYEBOLD_") {
			return true
		}
	}
	return false
}
