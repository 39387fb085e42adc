// Package config provides configuration management for eyebold.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Harmonize: workers, retries, retry_delay_seconds, base_url
//   - Purge: trivial_size, small_size, subproblem_min, subproblem_max, subproblem_step
//   - Geo: workers, poll_interval_seconds, batch_size, chunk_size, epsilon, retries, retry_delay_seconds
//   - Classify: binary_path
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (not in ToOptions):
//   - HomeDir (set once at startup)
//   - Geo.UseSQLDownload (read from config.yaml and env by the loader, but
//     not emitted by ToOptions)
//
// # Environment Variables
//
// Use EYEBOLD_ prefix with underscores for nesting:
//
//	EYEBOLD_HARMONIZE_WORKERS=30
//	EYEBOLD_LOG_LEVEL=info
//	EYEBOLD_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete eyebold configuration.
type Config struct {
	// Harmonize contains settings for the taxonomy harmoniser (C4).
	Harmonize HarmonizeConfig `mapstructure:"harmonize" yaml:"harmonize"`

	// Purge contains thresholds for the duplicate-purge engine (C5).
	Purge PurgeConfig `mapstructure:"purge" yaml:"purge"`

	// Geo contains settings for the geographic evaluator (C7).
	Geo GeoConfig `mapstructure:"geo" yaml:"geo"`

	// Classify contains settings for the classifier bridge (C8).
	Classify ClassifyConfig `mapstructure:"classify" yaml:"classify"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel operations
	// that are not otherwise bounded by a component-specific pool size.
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// HarmonizeConfig contains settings for concurrent taxonomy-name lookups.
type HarmonizeConfig struct {
	// Workers is the size of the concurrent name-lookup worker pool.
	Workers int `mapstructure:"workers" yaml:"workers"`

	// Retries is the number of retry attempts per failed lookup.
	Retries int `mapstructure:"retries" yaml:"retries"`

	// RetryDelaySeconds is the backoff delay between retry attempts.
	RetryDelaySeconds int `mapstructure:"retry_delay_seconds" yaml:"retry_delay_seconds"`

	// BaseURL is the endpoint of the external name-resolution service.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
}

// PurgeConfig contains the thresholds that select which of the three
// duplicate-purge regimes (trivial, small, hard) handles a given species group.
type PurgeConfig struct {
	// TrivialSize is the group-size ceiling for the trivial regime (one
	// length-sorted scan with a seen set, purge.MarkDuplicates).
	TrivialSize int `mapstructure:"trivial_size" yaml:"trivial_size"`

	// SmallSize is the group-size ceiling for the small regime, which runs
	// the same scan as the trivial regime.
	SmallSize int `mapstructure:"small_size" yaml:"small_size"`

	// SubproblemMin is the starting chunk size of the hard-regime sweep.
	SubproblemMin int `mapstructure:"subproblem_min" yaml:"subproblem_min"`

	// SubproblemMax is the final chunk size of the hard-regime sweep.
	SubproblemMax int `mapstructure:"subproblem_max" yaml:"subproblem_max"`

	// SubproblemStep is the chunk-size increment between sweep rounds.
	SubproblemStep int `mapstructure:"subproblem_step" yaml:"subproblem_step"`
}

// GeoConfig contains settings for occurrence-download streaming and scoring.
type GeoConfig struct {
	// Workers is the size of the chunk-aggregation worker pool.
	Workers int `mapstructure:"workers" yaml:"workers"`

	// PollIntervalSeconds is the delay between download-status polls.
	PollIntervalSeconds int `mapstructure:"poll_interval_seconds" yaml:"poll_interval_seconds"`

	// UseSQLDownload makes GBIF_USER and GBIF_PWD mandatory for
	// build-location-db. The downloader submits the same predicate request
	// whether or not it is set, and the occurrence reader accepts both the
	// camelCase and the lowercase header sets in either case.
	UseSQLDownload bool `mapstructure:"use_sql_download" yaml:"use_sql_download"`

	// BatchSize is the number of taxon keys submitted per download request.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`

	// ChunkSize is the number of occurrence rows aggregated per worker
	// dispatch while streaming a downloaded TSV.
	ChunkSize int `mapstructure:"chunk_size" yaml:"chunk_size"`

	// Epsilon is the margin subtracted from the lat/lon poles before zone
	// lookup, keeping boundary coordinates off the grid edge.
	Epsilon float64 `mapstructure:"epsilon" yaml:"epsilon"`

	// Retries is the number of retry attempts for a failed submit, poll or
	// fetch.
	Retries int `mapstructure:"retries" yaml:"retries"`

	// RetryDelaySeconds is the backoff delay between download retries.
	RetryDelaySeconds int `mapstructure:"retry_delay_seconds" yaml:"retry_delay_seconds"`
}

// ClassifyConfig contains settings for invoking the external classifier binary.
type ClassifyConfig struct {
	// BinaryPath is the path to the raxtax executable.
	BinaryPath string `mapstructure:"binary_path" yaml:"binary_path"`
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
		Harmonize: HarmonizeConfig{
			Workers:           30,
			Retries:           3,
			RetryDelaySeconds: 30,
			BaseURL:           "https://api.gbif.org/v1",
		},
		Purge: PurgeConfig{
			TrivialSize:    5_000,
			SmallSize:      50_000,
			SubproblemMin:  1_000,
			SubproblemMax:  5_000,
			SubproblemStep: 1_000,
		},
		Geo: GeoConfig{
			Workers:             runtime.NumCPU(),
			PollIntervalSeconds: 60,
			UseSQLDownload:      false,
			BatchSize:           1_000,
			ChunkSize:           1_000_000,
			Epsilon:             1e-6,
			Retries:             3,
			RetryDelaySeconds:   30,
		},
		Classify: ClassifyConfig{
			BinaryPath: "raxtax",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(), // Default to number of CPU threads
	}

	return res
}
