package main

import (
	"context"
	"time"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"

	"github.com/boldcurate/eyebold/internal/ioingest"
	"github.com/boldcurate/eyebold/internal/iocurate"
)

func getBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build store climate marker tsv schema",
		Short: "Create the store, ingest a vendor TSV dump, and curate it",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(parseStoreArgs(args), args[3], args[4])
		},
	}
	return cmd
}

func runBuild(sa storeArgs, tsvPath, schemaPath string) error {
	ctx := context.Background()
	cfg := getConfig()

	st, cs, err := openStores(sa)
	if err != nil {
		return err
	}
	defer st.Close()
	defer cs.Close()

	if err := st.CreateSchema(ctx); err != nil {
		return err
	}
	if err := cs.CreateSchema(ctx); err != nil {
		return err
	}

	log.Info("ingesting", "tsv", tsvPath, "schema", schemaPath)
	if _, err := ioingest.Run(ctx, st, ioingest.Options{
		TSVPath:    tsvPath,
		LayoutPath: schemaPath,
		MarkerCode: sa.MarkerCode,
		Now:        time.Now(),
	}); err != nil {
		return err
	}

	gn.Info("curating store <em>%s</em>", sa.StorePath)
	resolver := harmonizeResolver(cfg)
	err = iocurate.Run(ctx, st, resolver, iocurate.Options{
		Harmonize: harmonizeOptions(cfg),
		Purge:     purgeOptions(cfg),
		Classify:  classifyOptions(cfg),
	})
	if err != nil {
		return err
	}

	gn.Info("build complete")
	return nil
}
