package main

import (
	"context"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"

	"github.com/boldcurate/eyebold/internal/iocurate"
)

func getReviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review store climate marker",
		Short: "Re-run curation over records still flagged for review",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReview(parseStoreArgs(args))
		},
	}
	return cmd
}

func runReview(sa storeArgs) error {
	ctx := context.Background()
	cfg := getConfig()

	st, cs, err := openStores(sa)
	if err != nil {
		return err
	}
	defer st.Close()
	defer cs.Close()

	gn.Info("re-curating review-pending records in <em>%s</em>", sa.StorePath)
	resolver := harmonizeResolver(cfg)
	err = iocurate.Run(ctx, st, resolver, iocurate.Options{
		Harmonize: harmonizeOptions(cfg),
		Purge:     purgeOptions(cfg),
		Classify:  classifyOptions(cfg),
	})
	if err != nil {
		return err
	}

	gn.Info("review complete")
	return nil
}
