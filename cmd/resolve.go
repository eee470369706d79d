package main

import (
	"encoding/json"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/catalog-resolver/internal/model"
)

var (
	resolveBrand   string
	resolveProduct string
	resolveVariant string
	resolveSize    string
	resolveDomain  string
	resolveSources string
)

// resolveResponse is the JSON shape printed by resolve and returned by serve.
type resolveResponse struct {
	Record  *model.CatalogRecord `json:"record"`
	Outcome model.Outcome        `json:"outcome"`
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve a single product and print the result as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		opts := baseOptions(cfg)
		if err := opts.Validate(); err != nil {
			return err
		}

		rec := &model.CatalogRecord{
			Brand:          resolveBrand,
			ProductName:    resolveProduct,
			VariantGeneric: resolveVariant,
			SizeLabel:      resolveSize,
			BrandDomain:    resolveDomain,
			SourcePriority: resolveSources,
		}
		out := buildResolver(cfg, opts).Resolve(ctx, rec)

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(resolveResponse{Record: rec, Outcome: out}); err != nil {
			return eris.Wrap(err, "resolve: encode result")
		}
		return nil
	},
}

func init() {
	resolveCmd.Flags().StringVar(&resolveBrand, "brand", "", "product brand")
	resolveCmd.Flags().StringVar(&resolveProduct, "product", "", "product name")
	resolveCmd.Flags().StringVar(&resolveVariant, "variant", "", "generic variant, e.g. flavor")
	resolveCmd.Flags().StringVar(&resolveSize, "size", "", "size label, e.g. \"120 ct\"")
	resolveCmd.Flags().StringVar(&resolveDomain, "domain", "", "brand home domain")
	resolveCmd.Flags().StringVar(&resolveSources, "sources", "", "comma-separated source priority keys")
	_ = resolveCmd.MarkFlagRequired("brand")
	_ = resolveCmd.MarkFlagRequired("product")
	rootCmd.AddCommand(resolveCmd)
}
