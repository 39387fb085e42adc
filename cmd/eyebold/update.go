package main

import (
	"context"
	"time"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"

	"github.com/boldcurate/eyebold/internal/ioingest"
	"github.com/boldcurate/eyebold/internal/iocurate"
)

func getUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update store climate marker tsv schema",
		Short: "Ingest a vendor TSV diff and re-curate the affected taxa",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(parseStoreArgs(args), args[3], args[4])
		},
	}
	return cmd
}

func runUpdate(sa storeArgs, tsvPath, schemaPath string) error {
	ctx := context.Background()
	cfg := getConfig()

	st, cs, err := openStores(sa)
	if err != nil {
		return err
	}
	defer st.Close()
	defer cs.Close()

	log.Info("ingesting diff", "tsv", tsvPath, "schema", schemaPath)
	result, err := ioingest.Run(ctx, st, ioingest.Options{
		TSVPath:    tsvPath,
		LayoutPath: schemaPath,
		MarkerCode: sa.MarkerCode,
		Now:        time.Now(),
		UpdateMode: true,
	})
	if err != nil {
		return err
	}
	log.Info("ingest diff classified", "new", len(result.NewIDs),
		"changed", len(result.ChangedPairs), "skipped", result.SkippedRows)

	gn.Info("re-curating affected taxa in <em>%s</em>", sa.StorePath)
	resolver := harmonizeResolver(cfg)
	err = iocurate.RunUpdate(ctx, st, resolver, result, iocurate.Options{
		Harmonize: harmonizeOptions(cfg),
		Purge:     purgeOptions(cfg),
		Classify:  classifyOptions(cfg),
	})
	if err != nil {
		return err
	}

	gn.Info("update complete")
	return nil
}
