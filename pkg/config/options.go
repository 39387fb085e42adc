package config

import (
	"strings"

	"github.com/gnames/gn"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptHarmonizeWorkers sets the size of the concurrent name-lookup pool.
func OptHarmonizeWorkers(i int) Option {
	return func(c *Config) {
		if isValidInt("Harmonize Workers", i) {
			c.Harmonize.Workers = i
		}
	}
}

// OptHarmonizeRetries sets the number of retry attempts per failed lookup.
func OptHarmonizeRetries(i int) Option {
	return func(c *Config) {
		if isValidInt("Harmonize Retries", i) {
			c.Harmonize.Retries = i
		}
	}
}

// OptHarmonizeRetryDelaySeconds sets the backoff delay between retries.
func OptHarmonizeRetryDelaySeconds(i int) Option {
	return func(c *Config) {
		if isValidInt("Harmonize Retry Delay", i) {
			c.Harmonize.RetryDelaySeconds = i
		}
	}
}

// OptHarmonizeBaseURL sets the endpoint of the external name-resolution service.
func OptHarmonizeBaseURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Harmonize Base URL", s) {
			c.Harmonize.BaseURL = s
		}
	}
}

// OptPurgeTrivialSize sets the group-size ceiling for the trivial regime.
func OptPurgeTrivialSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Purge Trivial Size", i) {
			c.Purge.TrivialSize = i
		}
	}
}

// OptPurgeSmallSize sets the group-size ceiling for the small regime.
func OptPurgeSmallSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Purge Small Size", i) {
			c.Purge.SmallSize = i
		}
	}
}

// OptPurgeSubproblemMin sets the starting chunk size of the hard-regime sweep.
func OptPurgeSubproblemMin(i int) Option {
	return func(c *Config) {
		if isValidInt("Purge Subproblem Min", i) {
			c.Purge.SubproblemMin = i
		}
	}
}

// OptPurgeSubproblemMax sets the final chunk size of the hard-regime sweep.
func OptPurgeSubproblemMax(i int) Option {
	return func(c *Config) {
		if isValidInt("Purge Subproblem Max", i) {
			c.Purge.SubproblemMax = i
		}
	}
}

// OptPurgeSubproblemStep sets the chunk-size increment between sweep rounds.
func OptPurgeSubproblemStep(i int) Option {
	return func(c *Config) {
		if isValidInt("Purge Subproblem Step", i) {
			c.Purge.SubproblemStep = i
		}
	}
}

// OptGeoWorkers sets the size of the chunk-aggregation worker pool.
func OptGeoWorkers(i int) Option {
	return func(c *Config) {
		if isValidInt("Geo Workers", i) {
			c.Geo.Workers = i
		}
	}
}

// OptGeoPollIntervalSeconds sets the delay between download-status polls.
func OptGeoPollIntervalSeconds(i int) Option {
	return func(c *Config) {
		if isValidInt("Geo Poll Interval", i) {
			c.Geo.PollIntervalSeconds = i
		}
	}
}

// OptGeoUseSQLDownload sets whether build-location-db requires GBIF_USER
// and GBIF_PWD. It does not change the download request itself.
// Runtime-only field - not in ToOptions().
func OptGeoUseSQLDownload(b bool) Option {
	return func(c *Config) {
		c.Geo.UseSQLDownload = b
	}
}

// OptGeoBatchSize sets the number of taxon keys submitted per download request.
func OptGeoBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Geo Batch Size", i) {
			c.Geo.BatchSize = i
		}
	}
}

// OptGeoChunkSize sets the number of occurrence rows aggregated per worker
// dispatch while streaming a downloaded TSV.
func OptGeoChunkSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Geo Chunk Size", i) {
			c.Geo.ChunkSize = i
		}
	}
}

// OptGeoEpsilon sets the lat/lon pole margin used before zone lookup.
func OptGeoEpsilon(f float64) Option {
	return func(c *Config) {
		if f > 0 {
			c.Geo.Epsilon = f
		} else {
			gn.Warn("<em>Geo Epsilon</em> has to be positive, ignoring %v", f)
		}
	}
}

// OptGeoRetries sets the number of retry attempts for a failed poll or fetch.
func OptGeoRetries(i int) Option {
	return func(c *Config) {
		if isValidInt("Geo Retries", i) {
			c.Geo.Retries = i
		}
	}
}

// OptGeoRetryDelaySeconds sets the backoff delay between download retries.
func OptGeoRetryDelaySeconds(i int) Option {
	return func(c *Config) {
		if isValidInt("Geo Retry Delay", i) {
			c.Geo.RetryDelaySeconds = i
		}
	}
}

// OptClassifyBinaryPath sets the path to the raxtax executable.
func OptClassifyBinaryPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Classify Binary Path", s) {
			c.Classify.BinaryPath = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdin" (also stderr), "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for parallel operations
// not bound by a component-specific pool size. Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
