// Package ioexport streams SELECTED records out of the record store in
// one of the export formatters' four shapes (C10). Every writer is a
// read-only projection: the store is never materialised in full, each
// row is written as AllSpecimens streams it.
package ioexport

import (
	"bufio"
	"context"
	"encoding/csv"
	"os"

	"github.com/boldcurate/eyebold/pkg/bits"
	"github.com/boldcurate/eyebold/pkg/classify"
	"github.com/boldcurate/eyebold/pkg/export"
	"github.com/boldcurate/eyebold/pkg/model"
	"github.com/boldcurate/eyebold/pkg/store"
)

// Format names one of the four export shapes.
type Format string

const (
	FASTA      Format = "FASTA"
	CLASSIFIER Format = "CLASSIFIER"
	TSV        Format = "TSV"
	CSV        Format = "CSV"
)

// Write streams every SELECTED specimen to path in the given format.
func Write(ctx context.Context, st store.Store, format Format, path string) error {
	switch format {
	case FASTA:
		return writeRecords(ctx, st, path, classify.PlainFastaRecord)
	case CLASSIFIER:
		return writeRecords(ctx, st, path, classify.FastaRecord)
	case TSV:
		return writeTable(ctx, st, path, '\t')
	case CSV:
		return writeTable(ctx, st, path, ';')
	default:
		return UnknownFormatError(string(format))
	}
}

func isSelected(s model.Specimen) bool { return bits.Has(s.Checks, bits.SELECTED) }

func writeRecords(ctx context.Context, st store.Store, path string, recordFn func(model.Specimen) (string, bool)) error {
	f, err := os.Create(path)
	if err != nil {
		return WriteError(path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	err = st.AllSpecimens(ctx, func(s model.Specimen) error {
		if !isSelected(s) {
			return nil
		}
		rec, ok := recordFn(s)
		if !ok {
			return nil
		}
		_, err := w.WriteString(rec)
		return err
	})
	if err != nil {
		return WriteError(path, err)
	}
	if err := w.Flush(); err != nil {
		return WriteError(path, err)
	}
	return nil
}

func writeTable(ctx context.Context, st store.Store, path string, delimiter rune) error {
	f, err := os.Create(path)
	if err != nil {
		return WriteError(path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = delimiter

	if err := w.Write(export.Header); err != nil {
		return WriteError(path, err)
	}

	err = st.AllSpecimens(ctx, func(s model.Specimen) error {
		if !isSelected(s) {
			return nil
		}
		return w.Write(export.Row(s))
	})
	if err != nil {
		return WriteError(path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return WriteError(path, err)
	}
	return nil
}
