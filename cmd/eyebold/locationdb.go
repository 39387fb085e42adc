package main

import (
	"context"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"

	"github.com/boldcurate/eyebold/internal/iogeo"
	"github.com/boldcurate/eyebold/pkg/geo"
)

var locationDBBatchSize int

func getBuildLocationDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build-location-db store climate marker",
		Short: "Run the geo evaluator: download occurrences and score climate plausibility",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuildLocationDB(parseStoreArgs(args))
		},
	}
	cmd.Flags().IntVarP(&locationDBBatchSize, "batch", "s", 0,
		"taxon keys submitted per download request (default: config value)")
	return cmd
}

func runBuildLocationDB(sa storeArgs) error {
	ctx := context.Background()
	cfg := getConfig()

	st, cs, err := openStores(sa)
	if err != nil {
		return err
	}
	defer st.Close()
	defer cs.Close()

	if err := cs.CreateSchema(ctx); err != nil {
		return err
	}

	dl, err := gbifDownloader(cfg)
	if err != nil {
		return err
	}

	opts := geoOptions(cfg)
	if locationDBBatchSize > 0 {
		opts.BatchSize = locationDBBatchSize
	}

	gn.Info("running geo evaluator against <em>%s</em>", sa.StorePath)
	if err := iogeo.Run(ctx, st, cs, dl, unresolvedZones{}, opts); err != nil {
		return err
	}

	gn.Info("build-location-db complete")
	return nil
}

// unresolvedZones is the default Köppen-Geiger lookup: it resolves no
// coordinates. Wire a real geo.ZoneLookup implementation here once a
// climate-zone raster library is vendored; until then every occurrence
// falls back to the evaluator's LOC_EMPTY path.
type unresolvedZones struct{}

func (unresolvedZones) Lookup(lat, lon float64) (string, bool) { return "", false }

var _ geo.ZoneLookup = unresolvedZones{}
