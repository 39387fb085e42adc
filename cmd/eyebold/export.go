package main

import (
	"context"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"

	"github.com/boldcurate/eyebold/internal/ioexport"
	"github.com/boldcurate/eyebold/internal/iostore"
)

func getExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export store climate marker {FASTA,CLASSIFIER,TSV,CSV} out",
		Short: "Export the selected record set in one of the supported shapes",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(parseStoreArgs(args), args[3], args[4])
		},
	}
	return cmd
}

func runExport(sa storeArgs, format, out string) error {
	ctx := context.Background()

	st, err := iostore.Open(sa.StorePath)
	if err != nil {
		return err
	}
	defer st.Close()

	switch ioexport.Format(format) {
	case ioexport.FASTA, ioexport.CLASSIFIER, ioexport.TSV, ioexport.CSV:
	default:
		return invalidArgErrorf("unknown export format %q, want FASTA, CLASSIFIER, TSV, or CSV", format)
	}

	if err := ioexport.Write(ctx, st, ioexport.Format(format), out); err != nil {
		return err
	}

	gn.Info("exported selected records to <em>%s</em>", out)
	return nil
}
