package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/boldcurate/eyebold/internal/iostore"
)

var (
	queryOut    string
	queryFormat string
)

func getQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query store climate marker sql",
		Short: "Run a read-only SQL projection against the store",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(parseStoreArgs(args), args[3])
		},
	}
	cmd.Flags().StringVarP(&queryOut, "out", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&queryFormat, "format", "f", "TSV", "output format: TSV or CSV")
	return cmd
}

func runQuery(sa storeArgs, sql string) error {
	ctx := context.Background()

	st, err := iostore.Open(sa.StorePath)
	if err != nil {
		return err
	}
	defer st.Close()

	cols, rows, err := st.RawQuery(ctx, sql)
	if err != nil {
		return err
	}

	var delimiter rune
	switch queryFormat {
	case "TSV":
		delimiter = '\t'
	case "CSV":
		delimiter = ';'
	default:
		return invalidArgErrorf("unknown query format %q, want TSV or CSV", queryFormat)
	}

	out := os.Stdout
	if queryOut != "" {
		f, err := os.Create(queryOut)
		if err != nil {
			return fmt.Errorf("failed to create output file %s: %w", queryOut, err)
		}
		defer f.Close()
		out = f
	}

	w := csv.NewWriter(out)
	w.Comma = delimiter
	if err := w.Write(cols); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
