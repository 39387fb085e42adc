package iostore

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boldcurate/eyebold/pkg/bits"
	"github.com/boldcurate/eyebold/pkg/model"
	"github.com/boldcurate/eyebold/pkg/store"
)

func openTestStore(t *testing.T) store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "specimen.sqlite")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.CreateSchema(context.Background()))
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateSchema_Idempotent(t *testing.T) {
	s := openTestStore(t)
	err := s.CreateSchema(context.Background())
	assert.NoError(t, err)
}

func TestInsertAndFetchSpecimens(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rows := []model.Specimen{
		{SpecimenID: 1, NucRaw: "ACGT", ContentHash: "h1", LastUpdated: "2026-01-01"},
		{SpecimenID: 2, NucRaw: "TTTT", ContentHash: "h2", LastUpdated: "2026-01-01"},
	}
	require.NoError(t, s.InsertSpecimens(ctx, rows))

	fetched, err := s.SpecimensByID(ctx, []int64{1, 2})
	require.NoError(t, err)
	assert.Len(t, fetched, 2)

	var seen []int64
	require.NoError(t, s.AllSpecimens(ctx, func(sp model.Specimen) error {
		seen = append(seen, sp.SpecimenID)
		return nil
	}))
	assert.Equal(t, []int64{1, 2}, seen)
}

func TestSpecimensByID_ChunksLargeInLists(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	n := store.MaxBoundParams*2 + 17
	rows := make([]model.Specimen, n)
	ids := make([]int64, n)
	for i := 0; i < n; i++ {
		id := int64(i + 1)
		rows[i] = model.Specimen{SpecimenID: id, NucRaw: "ACGT", ContentHash: "h", LastUpdated: "2026-01-01"}
		ids[i] = id
	}
	require.NoError(t, s.InsertSpecimens(ctx, rows))

	fetched, err := s.SpecimensByID(ctx, ids)
	require.NoError(t, err)
	assert.Len(t, fetched, n)
}

func TestUpdateChecksAndSelectedIDs(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.InsertSpecimens(ctx, []model.Specimen{
		{SpecimenID: 1, NucRaw: "ACGT", ContentHash: "h1", LastUpdated: "2026-01-01"},
		{SpecimenID: 2, NucRaw: "ACGT", ContentHash: "h2", LastUpdated: "2026-01-01"},
	}))

	require.NoError(t, s.OrChecks(ctx, map[int64]bits.Checks{
		1: bits.SELECTED | bits.NAME_CHECKED,
	}))

	ids, err := s.SelectedIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids)
}

func TestClearChecks_KeepsOnlyMask(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.InsertSpecimens(ctx, []model.Specimen{
		{SpecimenID: 1, NucRaw: "ACGT", ContentHash: "h1", LastUpdated: "2026-01-01"},
	}))
	require.NoError(t, s.OrChecks(ctx, map[int64]bits.Checks{
		1: bits.SELECTED | bits.NAME_CHECKED | bits.LOC_PASSED,
	}))
	require.NoError(t, s.ClearChecks(ctx, []int64{1}, bits.UpdateClearMask()))

	fetched, err := s.SpecimensByID(ctx, []int64{1})
	require.NoError(t, err)
	require.Len(t, fetched, 1)
	assert.Equal(t, bits.LOC_PASSED, fetched[0].Checks)
}

func TestReviewLineages_IncludesAllNullLineage(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.InsertSpecimens(ctx, []model.Specimen{
		{SpecimenID: 1, NucRaw: "ACGT", ContentHash: "h1", LastUpdated: "2026-01-01", Review: true,
			TaxonKingdom: sql.NullString{String: "Animalia", Valid: true}},
		{SpecimenID: 2, NucRaw: "ACGT", ContentHash: "h2", LastUpdated: "2026-01-01", Review: true},
	}))

	rows, err := s.ReviewLineages(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
}

func TestExistingState_NotFound(t *testing.T) {
	s := openTestStore(t)
	_, _, found, err := s.ExistingState(context.Background(), 999)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestExistingState_ReturnsHashAndTaxonKey(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.InsertSpecimens(ctx, []model.Specimen{
		{SpecimenID: 1, NucRaw: "ACGT", ContentHash: "h1", LastUpdated: "2026-01-01",
			TaxonKey: sql.NullInt64{Int64: 77, Valid: true}},
	}))

	hash, taxonKey, found, err := s.ExistingState(ctx, 1)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "h1", hash)
	assert.Equal(t, int64(77), taxonKey.Int64)
}

func TestInsertStaging_UpsertsOnConflict(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.InsertStaging(ctx, []store.StagingRow{
		{SpecimenID: 1, ContentHash: "h1", Fields: map[string]string{"nuc_raw": "ACGT"}},
	}))

	require.NoError(t, s.InsertStaging(ctx, []store.StagingRow{
		{SpecimenID: 1, ContentHash: "h2", Fields: map[string]string{"nuc_raw": "TTTT"}},
	}))
}

func TestRawQuery_ReturnsColumnsAndStringRows(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.InsertSpecimens(ctx, []model.Specimen{
		{SpecimenID: 1, NucRaw: "ACGT", ContentHash: "h1", LastUpdated: "2026-01-01"},
		{SpecimenID: 2, NucRaw: "TTTT", ContentHash: "h2", LastUpdated: "2026-01-01"},
	}))

	cols, rows, err := s.RawQuery(ctx, "SELECT specimen_id, nuc_raw FROM specimen ORDER BY specimen_id")
	require.NoError(t, err)
	assert.Equal(t, []string{"specimen_id", "nuc_raw"}, cols)
	assert.Equal(t, [][]string{{"1", "ACGT"}, {"2", "TTTT"}}, rows)
}

func TestRawQuery_InvalidSQLIsReported(t *testing.T) {
	s := openTestStore(t)
	_, _, err := s.RawQuery(context.Background(), "SELECT nope FROM nowhere")
	assert.Error(t, err)
}

func TestClimateStore_UpsertAccumulates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "climate.sqlite")
	cs, err := OpenClimate(path)
	require.NoError(t, err)
	defer cs.Close()

	ctx := context.Background()
	require.NoError(t, cs.CreateSchema(ctx))

	rec := model.ClimateRecord{TaxonKey: 42, CountryCodes: "US"}
	rec.Counts[0] = 3
	require.NoError(t, cs.Upsert(ctx, rec))

	rec2 := model.ClimateRecord{TaxonKey: 42, CountryCodes: "CA"}
	rec2.Counts[0] = 2
	require.NoError(t, cs.Upsert(ctx, rec2))

	got, ok, err := cs.Get(ctx, 42)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(5), got.Counts[0])
}
