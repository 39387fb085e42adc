package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir, UseSQLDownload).
// Used for round-tripping config.yaml <-> Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int

	s = c.Harmonize.BaseURL
	if s != "" {
		res = append(res, OptHarmonizeBaseURL(s))
	}
	i = c.Harmonize.Workers
	if i > 0 {
		res = append(res, OptHarmonizeWorkers(i))
	}
	i = c.Harmonize.Retries
	if i > 0 {
		res = append(res, OptHarmonizeRetries(i))
	}
	i = c.Harmonize.RetryDelaySeconds
	if i > 0 {
		res = append(res, OptHarmonizeRetryDelaySeconds(i))
	}

	i = c.Purge.TrivialSize
	if i > 0 {
		res = append(res, OptPurgeTrivialSize(i))
	}
	i = c.Purge.SmallSize
	if i > 0 {
		res = append(res, OptPurgeSmallSize(i))
	}
	i = c.Purge.SubproblemMin
	if i > 0 {
		res = append(res, OptPurgeSubproblemMin(i))
	}
	i = c.Purge.SubproblemMax
	if i > 0 {
		res = append(res, OptPurgeSubproblemMax(i))
	}
	i = c.Purge.SubproblemStep
	if i > 0 {
		res = append(res, OptPurgeSubproblemStep(i))
	}

	i = c.Geo.Workers
	if i > 0 {
		res = append(res, OptGeoWorkers(i))
	}
	i = c.Geo.PollIntervalSeconds
	if i > 0 {
		res = append(res, OptGeoPollIntervalSeconds(i))
	}
	i = c.Geo.BatchSize
	if i > 0 {
		res = append(res, OptGeoBatchSize(i))
	}
	i = c.Geo.ChunkSize
	if i > 0 {
		res = append(res, OptGeoChunkSize(i))
	}
	if c.Geo.Epsilon > 0 {
		res = append(res, OptGeoEpsilon(c.Geo.Epsilon))
	}
	i = c.Geo.Retries
	if i > 0 {
		res = append(res, OptGeoRetries(i))
	}
	i = c.Geo.RetryDelaySeconds
	if i > 0 {
		res = append(res, OptGeoRetryDelaySeconds(i))
	}

	s = c.Classify.BinaryPath
	if s != "" {
		res = append(res, OptClassifyBinaryPath(s))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	i = c.JobsNumber
	if i > 0 {
		res = append(res, OptJobsNumber(i))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s},
		"Log.Destination": {"file": s, "stderr": s, "stdin": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		lines = append(lines, fmt.Sprintf("  * %s", v))
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. Valid values are:\n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
