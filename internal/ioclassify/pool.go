// Package ioclassify drives the classifier bridge (C8) against the
// record store: it exports the SELECTED reference set and the
// pending-review query set as classifier-FASTA, invokes the external
// classifier binary, and OR's BAD_CLASSIFICATION into the checks of
// every specimen whose result disagrees with its assigned lineage at
// high confidence.
package ioclassify

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/boldcurate/eyebold/pkg/bits"
	"github.com/boldcurate/eyebold/pkg/store"
)

// Options configures one classifier pass.
type Options struct {
	// BinaryPath is the path to the external classifier executable.
	BinaryPath string

	// CacheDir holds the reference/query FASTA files and the
	// classifier's result table for the duration of the run.
	CacheDir string
}

// Run exports the reference and query sets, invokes the classifier, and
// marks BAD_CLASSIFICATION on every specimen the classifier disagrees
// with at high confidence. It is a no-op if there is no query set.
func Run(ctx context.Context, st store.Store, opts Options) error {
	// Each invocation gets its own subdirectory so two classifier runs
	// against the same cache dir (e.g. build and build-location-db
	// overlapping) never race on the reference/query/result files.
	runDir := filepath.Join(opts.CacheDir, uuid.New().String())
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return InvokeError(err)
	}
	defer os.RemoveAll(runDir)

	dbFile := filepath.Join(runDir, "reference.fasta")
	queryFile := filepath.Join(runDir, "query.fasta")
	outFile := filepath.Join(runDir, "raxtax.out")

	if err := writeReferenceFasta(ctx, st, dbFile); err != nil {
		return err
	}
	if err := writeQueryFasta(ctx, st, queryFile); err != nil {
		return err
	}

	empty, err := isEmptyFasta(queryFile)
	if err != nil {
		return err
	}
	if empty {
		return nil
	}

	if err := invoke(ctx, opts.BinaryPath, dbFile, queryFile, outFile); err != nil {
		return err
	}

	flagged, err := flaggedSpecimens(outFile)
	if err != nil {
		return err
	}
	if len(flagged) == 0 {
		return nil
	}

	updates := make(map[int64]bits.Checks, len(flagged))
	for _, id := range flagged {
		updates[id] = bits.BAD_CLASSIFICATION
	}
	return st.OrChecks(ctx, updates)
}
