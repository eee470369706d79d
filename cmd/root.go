package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/catalog-resolver/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "catalog-resolver",
	Short: "Resolve catalog records to verified product pages",
	Long:  "Searches the web for each catalog record, validates candidate product pages against the record's identity, and writes canonical product and review URLs back into the catalog.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Usage errors must surface before config or catalog I/O.
		if err := cmd.ValidateRequiredFlags(); err != nil {
			return err
		}

		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
