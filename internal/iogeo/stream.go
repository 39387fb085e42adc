package iogeo

import (
	"context"
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/boldcurate/eyebold/pkg/geo"
)

// columnSet resolves the taxon-key/lat/lon/country-code columns of a
// downloaded occurrence TSV, tolerating both the taxon-key API's
// camelCase headers and the SQL-download variant's lowercase headers.
type columnSet struct {
	taxonKey, lat, lon, country int
}

var taxonKeyAliases = []string{"acceptedtaxonkey", "specieskey"}
var latAliases = []string{"decimallatitude"}
var lonAliases = []string{"decimallongitude"}
var countryAliases = []string{"countrycode"}

func resolveColumns(header []string) columnSet {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(h)] = i
	}
	return columnSet{
		taxonKey: firstMatch(idx, taxonKeyAliases),
		lat:      firstMatch(idx, latAliases),
		lon:      firstMatch(idx, lonAliases),
		country:  firstMatch(idx, countryAliases),
	}
}

func firstMatch(idx map[string]int, aliases []string) int {
	for _, a := range aliases {
		if i, ok := idx[a]; ok {
			return i
		}
	}
	return -1
}

// streamAggregate reads a downloaded occurrence TSV in chunks of
// opts.ChunkSize rows, dispatches each chunk to geo.AggregateChunk across a
// bounded worker pool, and combines the partial results. Rows whose taxon
// key, latitude or longitude is missing, unparseable or NaN are dropped;
// the country code is optional and an empty one keeps the row.
func streamAggregate(ctx context.Context, tsvPath string, zones geo.ZoneLookup, opts Options) (*geo.Aggregate, error) {
	f, err := os.Open(tsvPath)
	if err != nil {
		return nil, ArchiveReadError(tsvPath, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, ArchiveReadError(tsvPath, err)
	}
	cols := resolveColumns(header)
	if cols.taxonKey < 0 || cols.lat < 0 || cols.lon < 0 {
		return nil, ArchiveReadError(tsvPath, errMissingColumns)
	}

	chunkSize := opts.ChunkSize
	if chunkSize <= 0 {
		chunkSize = 1_000_000
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var mu sync.Mutex
	var parts []*geo.Aggregate

	chunk := make([]geo.OccurrenceRow, 0, chunkSize)
	dispatch := func(rows []geo.OccurrenceRow) {
		g.Go(func() error {
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			default:
			}
			part := geo.AggregateChunk(rows, zones, opts.Epsilon)
			mu.Lock()
			parts = append(parts, part)
			mu.Unlock()
			return nil
		})
	}

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, ArchiveReadError(tsvPath, err)
		}

		row, ok := parseRow(record, cols)
		if !ok {
			continue
		}
		chunk = append(chunk, row)
		if len(chunk) >= chunkSize {
			dispatch(chunk)
			chunk = make([]geo.OccurrenceRow, 0, chunkSize)
		}
	}
	if len(chunk) > 0 {
		dispatch(chunk)
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return geo.Combine(parts), nil
}

func parseRow(record []string, cols columnSet) (geo.OccurrenceRow, bool) {
	if cols.taxonKey >= len(record) || cols.lat >= len(record) || cols.lon >= len(record) {
		return geo.OccurrenceRow{}, false
	}
	taxonKey, err := strconv.ParseInt(strings.TrimSpace(record[cols.taxonKey]), 10, 64)
	if err != nil {
		return geo.OccurrenceRow{}, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(record[cols.lat]), 64)
	if err != nil {
		return geo.OccurrenceRow{}, false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(record[cols.lon]), 64)
	if err != nil {
		return geo.OccurrenceRow{}, false
	}
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return geo.OccurrenceRow{}, false
	}
	row := geo.OccurrenceRow{TaxonKey: taxonKey, Lat: lat, Lon: lon}
	if cols.country >= 0 && cols.country < len(record) {
		row.CountryCode = strings.TrimSpace(record[cols.country])
	}
	return row, true
}

type missingColumnsError struct{}

func (missingColumnsError) Error() string {
	return "occurrence file missing required taxon_key/lat/lon columns"
}

var errMissingColumns = missingColumnsError{}
