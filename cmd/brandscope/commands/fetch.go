package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"brandscope/internal/model"
)

var (
	fetchOutput string
	fetchSave   bool
)

func init() {
	fetchCmd.Flags().StringVarP(&fetchOutput, "output", "o", "table", "output format: table|json")
	fetchCmd.Flags().BoolVar(&fetchSave, "save", false, "write the result to the configured database and cache")
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <store-url>",
	Short: "Extracts brand insights for one store and prints them.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if fetchOutput != "table" && fetchOutput != "json" {
			return fmt.Errorf("invalid --output %q (expected table|json)", fetchOutput)
		}
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		agg := newAggregator(cfg, logger)

		if !fetchSave {
			in, err := agg.Aggregate(ctx, args[0])
			if err != nil {
				return err
			}
			return writeInsights(cmd.OutOrStdout(), fetchOutput, in)
		}

		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()
		rdb, err := openRedis(ctx, cfg)
		if err != nil {
			return err
		}
		if rdb != nil {
			defer rdb.Close()
		}

		res, err := newInsightsService(cfg, agg, st, rdb, logger).Get(ctx, args[0], true)
		if err != nil {
			return err
		}
		return writeInsights(cmd.OutOrStdout(), fetchOutput, res.Insights)
	},
}

func writeInsights(w io.Writer, format string, in *model.BrandInsights) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(in)
	}
	renderTables(w, in)
	return nil
}
