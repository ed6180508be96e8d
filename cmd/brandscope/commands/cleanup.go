package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"brandscope/internal/jobs"
)

func init() {
	rootCmd.AddCommand(cleanupCmd)
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Deletes persisted insights older than retention.maxAgeDays.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		stats, err := jobs.CleanupExpiredInsights(cmd.Context(), cfg, st)
		if err != nil {
			return fmt.Errorf("cleanup: %w", err)
		}
		logger.Info("retention cleanup", "deleted", stats.InsightsDeleted, "cutoff", stats.Cutoff)
		return nil
	},
}
