// Package iogeo drives the geo evaluator (C7): it submits occurrence
// downloads for taxa lacking climate data, streams and aggregates the
// resulting TSVs into the climate store, then scores every specimen
// against its taxon's histogram. This is an impure I/O package that
// implements contracts defined in pkg/geo and pkg/store.
package iogeo

import (
	"context"
	"os"

	"github.com/boldcurate/eyebold/pkg/bits"
	"github.com/boldcurate/eyebold/pkg/geo"
	"github.com/boldcurate/eyebold/pkg/model"
	"github.com/boldcurate/eyebold/pkg/store"
)

// Run evaluates every taxon with at least one species-resolved specimen
// still awaiting a location check: missing climate histograms are
// downloaded and aggregated first, then every such taxon's specimens are
// scored and written back.
func Run(ctx context.Context, st store.Store, climate store.ClimateStore, dl geo.Downloader, zones geo.ZoneLookup, opts Options) error {
	keys, err := st.TaxonKeysNeedingGeoCheck(ctx)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	var missing []int64
	for _, k := range keys {
		if _, ok, err := climate.Get(ctx, k); err != nil {
			return err
		} else if !ok {
			missing = append(missing, k)
		}
	}

	if len(missing) > 0 {
		if err := fetchAndAggregate(ctx, climate, dl, zones, missing, opts); err != nil {
			return err
		}
	}

	return scoreTaxa(ctx, st, climate, keys)
}

func fetchAndAggregate(ctx context.Context, climate store.ClimateStore, dl geo.Downloader, zones geo.ZoneLookup, missing []int64, opts Options) error {
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = len(missing)
	}

	for _, batch := range batches(missing, batchSize) {
		zipPath, err := runDownload(ctx, dl, batch, opts)
		if err != nil {
			return err
		}

		tsvPath, err := extractSingleEntry(zipPath, opts.CacheDir)
		if err != nil {
			return err
		}

		agg, err := streamAggregate(ctx, tsvPath, zones, opts)
		if err != nil {
			return err
		}

		for _, taxonKey := range agg.TaxonKeys() {
			if err := climate.Upsert(ctx, agg.ToClimateRecord(taxonKey)); err != nil {
				return err
			}
		}

		os.Remove(tsvPath)
		os.Remove(zipPath)
	}
	return nil
}

func scoreTaxa(ctx context.Context, st store.Store, climate store.ClimateStore, keys []int64) error {
	geoInfoUpdates := map[int64]float64{}
	checksUpdates := map[int64]bits.Checks{}

	for _, taxonKey := range keys {
		hist, ok, err := climate.Get(ctx, taxonKey)
		if err != nil {
			return err
		}

		specimens, err := st.SpecimensByTaxonKey(ctx, taxonKey)
		if err != nil {
			return err
		}

		for _, s := range specimens {
			if !ok {
				geoInfoUpdates[s.SpecimenID] = -1
				checksUpdates[s.SpecimenID] = bits.LOC_EMPTY | bits.LOC_CHECKED
				continue
			}
			geoInfoUpdates[s.SpecimenID], checksUpdates[s.SpecimenID] = scoreSpecimen(s, hist)
		}
	}

	if err := st.UpdateGeoInfo(ctx, geoInfoUpdates); err != nil {
		return err
	}
	return st.OrChecks(ctx, checksUpdates)
}

func scoreSpecimen(s model.Specimen, hist model.ClimateRecord) (float64, bits.Checks) {
	score, passed := geo.Score(s.CountryISO.String, s.CountryISO.Valid, s.KgZone.String, s.KgZone.Valid, hist)
	checks := bits.LOC_CHECKED
	if passed {
		checks |= bits.LOC_PASSED
	}
	return score, checks
}
