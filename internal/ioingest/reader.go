// Package ioingest drives the ingest pipeline against real files and the
// record store: reading the TSV dump and its schema descriptor, running
// pkg/ingest's pure parsing/classification logic over each row, and
// persisting the result. This is an impure I/O package that implements
// contracts defined in pkg/.
package ioingest

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"time"

	"github.com/boldcurate/eyebold/pkg/geo"
	"github.com/boldcurate/eyebold/pkg/ingest"
	"github.com/boldcurate/eyebold/pkg/model"
	"github.com/boldcurate/eyebold/pkg/store"
)

const buildChunk = 5000

// Options configures one ingest run.
type Options struct {
	TSVPath    string
	LayoutPath string
	MarkerCode string
	Zones      geo.ZoneLookup // nil if no Köppen-Geiger lookup is configured
	Now        time.Time
	UpdateMode bool
}

// Run executes the ingest pipeline described in Options against st.
func Run(ctx context.Context, st store.Store, opts Options) (ingest.Result, error) {
	layoutBytes, err := os.ReadFile(opts.LayoutPath)
	if err != nil {
		return ingest.Result{}, FileNotFoundError(opts.LayoutPath, err)
	}
	layout, err := ingest.ParseLayout(layoutBytes)
	if err != nil {
		return ingest.Result{}, ingest.LayoutError(opts.LayoutPath, err)
	}

	f, err := os.Open(opts.TSVPath)
	if err != nil {
		return ingest.Result{}, ingest.FileNotFoundError(opts.TSVPath, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var result ingest.Result
	var specimenBatch []model.Specimen
	var stagingBatch []store.StagingRow
	rowCount := 0

	flush := func() error {
		if len(specimenBatch) > 0 {
			if err := st.InsertSpecimens(ctx, specimenBatch); err != nil {
				return err
			}
			specimenBatch = specimenBatch[:0]
		}
		if len(stagingBatch) > 0 {
			if err := st.InsertStaging(ctx, stagingBatch); err != nil {
				return err
			}
			stagingBatch = stagingBatch[:0]
		}
		return nil
	}

	for {
		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return ingest.Result{}, ingest.FileNotFoundError(opts.TSVPath, err)
		}
		rowCount++

		row := ingest.ParseRow(layout, fields)
		if ingest.MarkerCode(row) != opts.MarkerCode {
			result.SkippedRows++
			continue
		}
		if !ingest.MandatoryFieldsPresent(row) {
			result.SkippedRows++
			continue
		}
		specimenID, ok := ingest.SpecimenID(row)
		if !ok {
			result.SkippedRows++
			continue
		}

		hash := ingest.ContentHash(layout, row)

		if opts.UpdateMode {
			oldHash, oldTaxonKey, found, err := st.ExistingState(ctx, specimenID)
			if err != nil {
				return ingest.Result{}, err
			}
			switch {
			case !found:
				result.NewIDs = append(result.NewIDs, specimenID)
			case oldHash == hash:
				continue // unchanged, nothing to do
			default:
				pair := ingest.ChangedPair{SpecimenID: specimenID}
				if oldTaxonKey.Valid {
					pair.OldTaxonKey = oldTaxonKey.Int64
					pair.HasOldTaxon = true
				}
				result.ChangedPairs = append(result.ChangedPairs, pair)
			}
		} else {
			result.NewIDs = append(result.NewIDs, specimenID)
		}

		specimen := ingest.BuildSpecimen(specimenID, row, hash, opts.Zones, opts.Now)
		specimenBatch = append(specimenBatch, specimen)
		stagingBatch = append(stagingBatch, toStagingRow(specimenID, hash, layout, row))

		if len(specimenBatch) >= buildChunk {
			if err := flush(); err != nil {
				return ingest.Result{}, err
			}
		}
	}

	if err := flush(); err != nil {
		return ingest.Result{}, err
	}

	if rowCount == 0 {
		return ingest.Result{}, ingest.EmptyFileError(opts.TSVPath)
	}

	return result, nil
}

func toStagingRow(specimenID int64, hash string, layout ingest.Layout, row ingest.Row) store.StagingRow {
	fields := make(map[string]string, len(layout.Fields))
	for _, spec := range layout.Fields {
		fields[spec.Name] = row[spec.Name].String()
	}
	return store.StagingRow{SpecimenID: specimenID, ContentHash: hash, Fields: fields}
}
