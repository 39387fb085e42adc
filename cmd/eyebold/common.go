package main

import (
	"net/http"
	"os"
	"time"

	"github.com/boldcurate/eyebold/internal/ioclassify"
	"github.com/boldcurate/eyebold/internal/ioharmonize"
	"github.com/boldcurate/eyebold/internal/iogeo"
	"github.com/boldcurate/eyebold/internal/iopurge"
	"github.com/boldcurate/eyebold/internal/iostore"
	"github.com/boldcurate/eyebold/pkg/config"
	"github.com/boldcurate/eyebold/pkg/geo"
	"github.com/boldcurate/eyebold/pkg/harmonize"
	"github.com/boldcurate/eyebold/pkg/purge"
	"github.com/boldcurate/eyebold/pkg/store"
)

// GBIF occurrence-download and name-match services share this host.
const gbifBaseURL = "https://api.gbif.org/v1"

func openStores(sa storeArgs) (store.Store, store.ClimateStore, error) {
	st, err := iostore.Open(sa.StorePath)
	if err != nil {
		return nil, nil, err
	}
	cs, err := iostore.OpenClimate(sa.ClimatePath)
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	return st, cs, nil
}

func harmonizeResolver(cfg *config.Config) harmonize.NameResolver {
	client := &http.Client{Timeout: 30 * time.Second}
	return ioharmonize.NewGBIFResolver(cfg.Harmonize.BaseURL, client)
}

func harmonizeOptions(cfg *config.Config) ioharmonize.Options {
	return ioharmonize.Options{
		Workers:    cfg.Harmonize.Workers,
		Retries:    cfg.Harmonize.Retries,
		RetryDelay: cfg.Harmonize.RetryDelaySeconds,
	}
}

func purgeOptions(cfg *config.Config) iopurge.Options {
	return iopurge.Options{
		Workers: cfg.JobsNumber,
		Thresholds: purge.Thresholds{
			TrivialSize: cfg.Purge.TrivialSize,
			SmallSize:   cfg.Purge.SmallSize,
		},
		Sweep: purge.SweepPlan{
			Min:  cfg.Purge.SubproblemMin,
			Max:  cfg.Purge.SubproblemMax,
			Step: cfg.Purge.SubproblemStep,
		},
	}
}

func classifyOptions(cfg *config.Config) ioclassify.Options {
	return ioclassify.Options{
		BinaryPath: cfg.Classify.BinaryPath,
		CacheDir:   config.CacheDir(cfg.HomeDir),
	}
}

func geoOptions(cfg *config.Config) iogeo.Options {
	return iogeo.Options{
		Workers:           cfg.Geo.Workers,
		BatchSize:         cfg.Geo.BatchSize,
		ChunkSize:         cfg.Geo.ChunkSize,
		Epsilon:           cfg.Geo.Epsilon,
		Retries:           cfg.Geo.Retries,
		RetryDelaySeconds: cfg.Geo.RetryDelaySeconds,
		PollInterval:      time.Duration(cfg.Geo.PollIntervalSeconds) * time.Second,
		CacheDir:          config.CacheDir(cfg.HomeDir),
	}
}

// gbifDownloader constructs the occurrence-download client used by
// build-location-db. SQL-download mode requires GBIF_USER/GBIF_PWD.
func gbifDownloader(cfg *config.Config) (geo.Downloader, error) {
	user := os.Getenv("GBIF_USER")
	pwd := os.Getenv("GBIF_PWD")
	if cfg.Geo.UseSQLDownload && (user == "" || pwd == "") {
		return nil, invalidArgErrorf("GBIF_USER and GBIF_PWD are required for SQL-download mode")
	}
	client := &http.Client{Timeout: 60 * time.Second}
	return iogeo.NewGBIFDownloader(gbifBaseURL, user, pwd, config.CacheDir(cfg.HomeDir), client), nil
}
