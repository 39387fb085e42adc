package ioclassify

import (
	"context"
	"os"

	"github.com/boldcurate/eyebold/pkg/classify"
	"github.com/boldcurate/eyebold/pkg/model"
	"github.com/boldcurate/eyebold/pkg/store"
)

// writeReferenceFasta writes every SELECTED record to path as a
// classifier-FASTA reference database.
func writeReferenceFasta(ctx context.Context, st store.Store, path string) error {
	selected, err := fetchSelected(ctx, st)
	if err != nil {
		return err
	}
	return writeFasta(path, selected, classify.FastaRecord)
}

// writeQueryFasta writes every SELECTED record still pending review to
// path as the classifier's query set.
func writeQueryFasta(ctx context.Context, st store.Store, path string) error {
	selected, err := fetchSelected(ctx, st)
	if err != nil {
		return err
	}
	var pending []model.Specimen
	for _, s := range selected {
		if s.Review {
			pending = append(pending, s)
		}
	}
	return writeFasta(path, pending, classify.FastaRecord)
}

func fetchSelected(ctx context.Context, st store.Store) ([]model.Specimen, error) {
	ids, err := st.SelectedIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return st.SpecimensByID(ctx, ids)
}

// isEmptyFasta reports whether path contains no records.
func isEmptyFasta(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, InvokeError(err)
	}
	return info.Size() == 0, nil
}

func writeFasta(path string, specimens []model.Specimen, recordFn func(model.Specimen) (string, bool)) error {
	f, err := os.Create(path)
	if err != nil {
		return InvokeError(err)
	}
	defer f.Close()

	for _, s := range specimens {
		rec, ok := recordFn(s)
		if !ok {
			continue
		}
		if _, err := f.WriteString(rec); err != nil {
			return InvokeError(err)
		}
	}
	return nil
}
