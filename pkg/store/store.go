// Package store defines the record-store contract: the embedded SQL
// database holding specimen, staging, and climate data. Implementations
// live in internal/iostore.
package store

import (
	"context"
	"database/sql"

	"github.com/boldcurate/eyebold/pkg/bits"
	"github.com/boldcurate/eyebold/pkg/model"
)

// MaxBoundParams bounds the number of placeholders in a single IN (...)
// clause. SQLite's default SQLITE_MAX_VARIABLE_NUMBER is 999; callers
// building large IN lists must chunk at this size.
const MaxBoundParams = 950

// Store is the primary record store: the specimen and staging tables,
// opened from a single SQLite file.
type Store interface {
	// CreateSchema creates the specimen and staging tables plus their
	// indexes if they do not already exist.
	CreateSchema(ctx context.Context) error

	// InsertSpecimens bulk-inserts specimen rows, chunking at
	// MaxBoundParams bound parameters per statement. A row whose
	// specimen_id already exists overwrites the stored row, except its
	// checks column.
	InsertSpecimens(ctx context.Context, rows []model.Specimen) error

	// InsertStaging bulk-inserts staging rows for freshly ingested records.
	InsertStaging(ctx context.Context, rows []StagingRow) error

	// SpecimensByID fetches specimen rows for the given IDs, chunking the
	// IN (...) lookup at MaxBoundParams.
	SpecimensByID(ctx context.Context, ids []int64) ([]model.Specimen, error)

	// AllSpecimens streams every specimen row to fn in primary-key order.
	// Iteration stops and the error is returned if fn returns an error.
	AllSpecimens(ctx context.Context, fn func(model.Specimen) error) error

	// ExistingState returns the stored content_hash and taxon_key for an
	// existing specimen_id, used by update-mode change detection (§4.3:
	// "look up existing (taxon_key, hash) by specimen_id").
	ExistingState(ctx context.Context, id int64) (hash string, taxonKey sql.NullInt64, found bool, err error)

	// OrChecks ORs mask into the stored checks bitvector for each specimen
	// id, matching the invariant that bits are only ever added during a
	// curation pass.
	OrChecks(ctx context.Context, updates map[int64]bits.Checks) error

	// ClearChecks applies keepMask to the stored checks bitvector (checks &
	// keepMask), used only by the ingest-update path with
	// bits.UpdateClearMask().
	ClearChecks(ctx context.Context, ids []int64, keepMask bits.Checks) error

	// The Update* methods persist one column's new value for a set of
	// specimen ids, used by purge/harmonize/hybrid passes that touch one
	// column at a time (e.g. nuc_san, taxon_key, processing_info).
	UpdateNucSan(ctx context.Context, updates map[int64]string) error
	UpdateTaxonKey(ctx context.Context, updates map[int64]int64) error
	UpdateIdentificationRank(ctx context.Context, updates map[int64]string) error
	UpdateInclude(ctx context.Context, updates map[int64]bool) error
	UpdateReview(ctx context.Context, updates map[int64]bool) error
	UpdateGeoInfo(ctx context.Context, updates map[int64]float64) error
	UpdateProcessingInfo(ctx context.Context, updates map[int64]string) error

	// SelectedIDs returns the specimen ids currently marked SELECTED, used
	// by downstream components (geo, classify, export) to scope work to the
	// curation set.
	SelectedIDs(ctx context.Context) ([]int64, error)

	// ReviewLineages returns, for every specimen with review = true, its id
	// and ten-rank lineage tuple, including records whose lineage is
	// entirely null. The harmoniser groups these into query objects and
	// skips the all-null ones there.
	ReviewLineages(ctx context.Context) ([]LineageRow, error)

	// DistinctTaxonKeys returns every distinct non-null taxon_key currently
	// present in the specimen table, used to form purge/geo/classify groups
	// in build mode.
	DistinctTaxonKeys(ctx context.Context) ([]int64, error)

	// SequencesByTaxonKey returns every specimen's raw sequence for one
	// taxon group, in specimen_id order — the store's natural insertion
	// order, which purge's duplicate-detection algorithm uses as its
	// length-tie tie-break order (§5).
	SequencesByTaxonKey(ctx context.Context, taxonKey int64) ([]SequenceRow, error)

	// SpecimensByTaxonKey returns every specimen row sharing one taxon_key,
	// used by the geo evaluator's scoring pass to score a whole group
	// against its taxon's climate histogram in one fetch.
	SpecimensByTaxonKey(ctx context.Context, taxonKey int64) ([]model.Specimen, error)

	// TaxonKeysNeedingGeoCheck returns distinct taxon_keys belonging to
	// specimens with INCL_SPECIES set and LOC_CHECKED unset -- the geo
	// evaluator only downloads occurrence data for taxa with at least one
	// species-resolved specimen still awaiting a location check.
	TaxonKeysNeedingGeoCheck(ctx context.Context) ([]int64, error)

	// RawQuery runs an arbitrary read-only SQL statement against the store
	// and returns its column names and rows, every cell rendered as its
	// string form. Used by the query CLI command's ad hoc projections.
	RawQuery(ctx context.Context, sql string) (columns []string, rows [][]string, err error)

	// Close releases the underlying connection.
	Close() error
}

// SequenceRow is one specimen's identity and raw sequence, as fed to the
// purge engine.
type SequenceRow struct {
	SpecimenID int64
	NucRaw     string
}

// LineageRow is one record's id and ten-rank lineage tuple (kingdom first,
// subspecies last; "" for null), as consumed by the harmoniser's grouping
// logic.
type LineageRow struct {
	SpecimenID int64
	Lineage    [10]string
}

// StagingRow is a raw (pre-harmonisation) ingested row, kept verbatim so
// update-mode re-runs can diff against it.
type StagingRow struct {
	SpecimenID  int64
	ContentHash string
	Fields      map[string]string
}

// ClimateStore is the secondary database holding per-taxon Köppen-Geiger
// histograms, opened from its own SQLite file so it can be rebuilt
// independently of the primary store.
type ClimateStore interface {
	CreateSchema(ctx context.Context) error

	// Upsert adds counts to a taxon's histogram, creating the row if absent.
	Upsert(ctx context.Context, rec model.ClimateRecord) error

	// Get fetches a taxon's histogram, ok=false if none recorded.
	Get(ctx context.Context, taxonKey int64) (model.ClimateRecord, bool, error)

	Close() error
}
