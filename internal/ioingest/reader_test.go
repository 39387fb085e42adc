package ioingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boldcurate/eyebold/internal/iostore"
)

const testLayout = `[
	{"name": "specimen_id", "index": 0, "type": "integer"},
	{"name": "marker_code", "index": 1, "type": "string"},
	{"name": "nuc_raw", "index": 2, "type": "string"},
	{"name": "taxon_species", "index": 3, "type": "string"}
]`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_BuildMode(t *testing.T) {
	dir := t.TempDir()
	layoutPath := writeFile(t, dir, "layout.json", testLayout)
	tsvPath := writeFile(t, dir, "dump.tsv",
		"1\tCOI-5P\tACGTACGT\tHomo sapiens\n"+
			"2\tITS\tACGTACGT\tPan troglodytes\n"+ // wrong marker, skipped
			"3\tCOI-5P\t\tGorilla gorilla\n", // missing nuc_raw, skipped
	)

	st, err := iostore.Open(filepath.Join(dir, "store.sqlite"))
	require.NoError(t, err)
	defer st.Close()
	require.NoError(t, st.CreateSchema(context.Background()))

	result, err := Run(context.Background(), st, Options{
		TSVPath:    tsvPath,
		LayoutPath: layoutPath,
		MarkerCode: "COI-5P",
		Now:        time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, result.NewIDs)
	assert.Equal(t, 2, result.SkippedRows)

	fetched, err := st.SpecimensByID(context.Background(), []int64{1})
	require.NoError(t, err)
	require.Len(t, fetched, 1)
	assert.Equal(t, "ACGTACGT", fetched[0].NucRaw)
	assert.Equal(t, "Homo sapiens", fetched[0].TaxonSpecies.String)
}

func TestRun_UpdateMode_ClassifiesNewChangedUnchanged(t *testing.T) {
	dir := t.TempDir()
	layoutPath := writeFile(t, dir, "layout.json", testLayout)

	st, err := iostore.Open(filepath.Join(dir, "store.sqlite"))
	require.NoError(t, err)
	defer st.Close()
	require.NoError(t, st.CreateSchema(context.Background()))

	tsv1 := writeFile(t, dir, "dump1.tsv", "1\tCOI-5P\tACGTACGT\tHomo sapiens\n")
	_, err = Run(context.Background(), st, Options{
		TSVPath: tsv1, LayoutPath: layoutPath, MarkerCode: "COI-5P",
		Now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	tsv2 := writeFile(t, dir, "dump2.tsv",
		"1\tCOI-5P\tACGTACGT\tHomo sapiens\n"+ // unchanged
			"2\tCOI-5P\tTTTTAAAA\tPan troglodytes\n", // new
	)
	result, err := Run(context.Background(), st, Options{
		TSVPath: tsv2, LayoutPath: layoutPath, MarkerCode: "COI-5P",
		Now: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), UpdateMode: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, result.NewIDs)
	assert.Empty(t, result.ChangedPairs)

	tsv3 := writeFile(t, dir, "dump3.tsv", "1\tCOI-5P\tGGGGCCCC\tHomo sapiens\n")
	result, err = Run(context.Background(), st, Options{
		TSVPath: tsv3, LayoutPath: layoutPath, MarkerCode: "COI-5P",
		Now: time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC), UpdateMode: true,
	})
	require.NoError(t, err)
	assert.Empty(t, result.NewIDs)
	require.Len(t, result.ChangedPairs, 1)
	assert.Equal(t, int64(1), result.ChangedPairs[0].SpecimenID)
}

func TestRun_EmptyFileErrors(t *testing.T) {
	dir := t.TempDir()
	layoutPath := writeFile(t, dir, "layout.json", testLayout)
	tsvPath := writeFile(t, dir, "empty.tsv", "")

	st, err := iostore.Open(filepath.Join(dir, "store.sqlite"))
	require.NoError(t, err)
	defer st.Close()
	require.NoError(t, st.CreateSchema(context.Background()))

	_, err = Run(context.Background(), st, Options{
		TSVPath: tsvPath, LayoutPath: layoutPath, MarkerCode: "COI-5P",
		Now: time.Now(),
	})
	assert.Error(t, err)
}
