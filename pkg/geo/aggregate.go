package geo

import (
	"sort"
	"strings"

	"github.com/boldcurate/eyebold/pkg/model"
)

// OccurrenceRow is one projected row from a downloaded occurrence TSV:
// {taxon_key, lat, lon, country_code}.
type OccurrenceRow struct {
	TaxonKey    int64
	Lat, Lon    float64
	CountryCode string
}

// Aggregate is a per-taxon occurrence histogram: zone-code counts plus
// the set of observed country codes, keyed by taxon key. It is built per
// TSV chunk and then combined across chunks.
type Aggregate struct {
	ZoneCounts map[int64]map[string]int
	Countries  map[int64]map[string]struct{}
}

// NewAggregate returns an empty Aggregate.
func NewAggregate() *Aggregate {
	return &Aggregate{ZoneCounts: map[int64]map[string]int{}, Countries: map[int64]map[string]struct{}{}}
}

// AggregateChunk resolves each row's Köppen-Geiger zone via zones
// (clamping lat/lon to (-90+eps,90-eps)/(-180+eps,180-eps) first) and
// folds it into a fresh per-chunk Aggregate. Rows whose zone cannot be
// resolved are dropped.
func AggregateChunk(rows []OccurrenceRow, zones ZoneLookup, epsilon float64) *Aggregate {
	agg := NewAggregate()
	for _, r := range rows {
		lat := EpsilonClampLat(r.Lat, epsilon)
		lon := EpsilonClampLon(r.Lon, epsilon)
		zone, ok := zones.Lookup(lat, lon)
		if !ok {
			continue
		}
		zone = strings.ToLower(zone)

		if agg.ZoneCounts[r.TaxonKey] == nil {
			agg.ZoneCounts[r.TaxonKey] = map[string]int{}
		}
		agg.ZoneCounts[r.TaxonKey][zone]++

		if r.CountryCode != "" {
			if agg.Countries[r.TaxonKey] == nil {
				agg.Countries[r.TaxonKey] = map[string]struct{}{}
			}
			agg.Countries[r.TaxonKey][strings.ToUpper(r.CountryCode)] = struct{}{}
		}
	}
	return agg
}

// Combine merges partial aggregates (typically one per chunk) into a
// single Aggregate, summing zone counts and unioning country sets per
// taxon. Chunks can carry data for any taxon in any order, so combining
// cannot assume per-taxon locality within a chunk.
func Combine(parts []*Aggregate) *Aggregate {
	combined := NewAggregate()
	for _, part := range parts {
		for taxonKey, zones := range part.ZoneCounts {
			if combined.ZoneCounts[taxonKey] == nil {
				combined.ZoneCounts[taxonKey] = map[string]int{}
			}
			for zone, count := range zones {
				combined.ZoneCounts[taxonKey][zone] += count
			}
		}
		for taxonKey, codes := range part.Countries {
			if combined.Countries[taxonKey] == nil {
				combined.Countries[taxonKey] = map[string]struct{}{}
			}
			for code := range codes {
				combined.Countries[taxonKey][code] = struct{}{}
			}
		}
	}
	return combined
}

// TaxonKeys returns every taxon key with aggregated data, sorted for
// deterministic writeout order.
func (a *Aggregate) TaxonKeys() []int64 {
	seen := map[int64]struct{}{}
	for k := range a.ZoneCounts {
		seen[k] = struct{}{}
	}
	for k := range a.Countries {
		seen[k] = struct{}{}
	}
	keys := make([]int64, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// ToClimateRecord projects one taxon's aggregated histogram into a
// model.ClimateRecord ready for ClimateStore.Upsert.
func (a *Aggregate) ToClimateRecord(taxonKey int64) model.ClimateRecord {
	rec := model.ClimateRecord{TaxonKey: taxonKey}
	zones := a.ZoneCounts[taxonKey]
	for i, zone := range model.KgZones {
		rec.Counts[i] = int64(zones[zone])
	}
	codes := make([]string, 0, len(a.Countries[taxonKey]))
	for code := range a.Countries[taxonKey] {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	rec.CountryCodes = strings.Join(codes, ",")
	return rec
}
