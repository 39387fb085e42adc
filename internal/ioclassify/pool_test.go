package ioclassify

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boldcurate/eyebold/internal/iostore"
	"github.com/boldcurate/eyebold/pkg/bits"
	"github.com/boldcurate/eyebold/pkg/model"
)

func TestRun_MarksBadClassificationFromClassifierOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in requires a POSIX shell")
	}
	ctx := context.Background()
	dir := t.TempDir()
	cache := filepath.Join(dir, "cache")
	require.NoError(t, os.MkdirAll(cache, 0o755))

	st, err := iostore.Open(filepath.Join(dir, "store.sqlite"))
	require.NoError(t, err)
	defer st.Close()
	require.NoError(t, st.CreateSchema(ctx))

	require.NoError(t, st.InsertSpecimens(ctx, []model.Specimen{
		{
			SpecimenID: 1, NucRaw: "ACGT", NucSan: sql.NullString{String: "ACGT", Valid: true},
			ContentHash: "h1", LastUpdated: "2026-01-01",
			Checks:      bits.SELECTED | bits.INCL_PHYLUM | bits.INCL_CLASS,
			TaxonPhylum: sql.NullString{String: "Chordata", Valid: true},
			TaxonClass:  sql.NullString{String: "Mammalia", Valid: true},
			Review:      true,
		},
	}))

	// Run scopes each invocation to a fresh subdirectory of cache, so the
	// stand-in binary derives the output path from its -i argument
	// instead of a path fixed at test-authoring time.
	script := filepath.Join(dir, "fake-raxtax")
	body := "#!/bin/sh\n" +
		"dir=$(dirname \"$4\")\n" +
		"echo '1;tax=p:Chordata,c:Mammalia\tChordata,Carnivora\t0.95,0.95' > \"$dir/raxtax.out\"\n"
	require.NoError(t, os.WriteFile(script, []byte(body), 0o755))

	opts := Options{BinaryPath: script, CacheDir: cache}
	require.NoError(t, Run(ctx, st, opts))

	fetched, err := st.SpecimensByID(ctx, []int64{1})
	require.NoError(t, err)
	require.Len(t, fetched, 1)
	assert.True(t, bits.Has(fetched[0].Checks, bits.BAD_CLASSIFICATION))
}

func TestRun_NoQuerySetIsNoOp(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cache := filepath.Join(dir, "cache")
	require.NoError(t, os.MkdirAll(cache, 0o755))

	st, err := iostore.Open(filepath.Join(dir, "store.sqlite"))
	require.NoError(t, err)
	defer st.Close()
	require.NoError(t, st.CreateSchema(ctx))

	opts := Options{BinaryPath: filepath.Join(dir, "never-invoked"), CacheDir: cache}
	require.NoError(t, Run(ctx, st, opts))
}
