package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/catalog-resolver/internal/catalog"
	"github.com/sells-group/catalog-resolver/internal/resolve"
)

var (
	enrichIn          string
	enrichOut         string
	enrichConcurrency int
	enrichLimit       int
	enrichOnlyMissing bool
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Resolve every record of a catalog file",
	Long:  "Reads a catalog (.csv, .tsv, or .xlsx), resolves each record to a canonical product page and review URL, and writes the merged catalog to --out.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		opts := baseOptions(cfg)
		if cmd.Flags().Changed("concurrency") {
			opts.Concurrency = enrichConcurrency
		}
		opts.Limit = enrichLimit
		opts.OnlyMissing = enrichOnlyMissing
		if err := opts.Validate(); err != nil {
			return err
		}

		lock := flock.New(enrichOut + ".lock")
		locked, err := lock.TryLock()
		if err != nil {
			return eris.Wrap(err, "enrich: acquire output lock")
		}
		if !locked {
			return eris.Errorf("enrich: %s is being written by another run", enrichOut)
		}
		defer func() { _ = lock.Unlock() }()

		records, err := catalog.ReadFile(enrichIn)
		if err != nil {
			return err
		}
		zap.L().Info("enrich: catalog loaded",
			zap.String("path", enrichIn),
			zap.Int("records", len(records)),
		)

		resolver := buildResolver(cfg, opts)
		merged, summary := resolve.RunBatch(ctx, resolver, records, opts)

		if err := catalog.WriteFile(enrichOut, merged); err != nil {
			return err
		}
		zap.L().Info("enrich: catalog written",
			zap.String("path", enrichOut),
			zap.String("run_id", summary.RunID),
		)

		fmt.Fprintln(cmd.ErrOrStderr(), renderSummary(summary))
		return nil
	},
}

func init() {
	enrichCmd.Flags().StringVar(&enrichIn, "in", "", "input catalog path (.csv, .tsv, .xlsx)")
	enrichCmd.Flags().StringVar(&enrichOut, "out", "", "output catalog path")
	enrichCmd.Flags().IntVar(&enrichConcurrency, "concurrency", resolve.DefaultConcurrency, "records resolved concurrently")
	enrichCmd.Flags().IntVar(&enrichLimit, "limit", 0, "process only the first N records (0 = all)")
	enrichCmd.Flags().BoolVar(&enrichOnlyMissing, "only-missing", false, "skip records that already have a canonical_product_url")
	_ = enrichCmd.MarkFlagRequired("in")
	_ = enrichCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(enrichCmd)
}
