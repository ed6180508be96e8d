package jobs

import (
	"context"
	"log/slog"
	"time"

	"brandscope/internal/config"
	"brandscope/internal/metrics"
)

// InsightsPruner deletes persisted insights fetched before a cutoff.
type InsightsPruner interface {
	DeleteInsightsOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// RetentionStats captures the number of records deleted by TTL cleanup.
type RetentionStats struct {
	InsightsDeleted int64     `json:"insightsDeleted"`
	Cutoff          time.Time `json:"cutoff"`
}

// CleanupExpiredInsights deletes insights older than
// retention.maxAgeDays so that the database does not grow without bound.
// A non-positive maxAgeDays disables deletion.
func CleanupExpiredInsights(ctx context.Context, cfg *config.Config, st InsightsPruner) (RetentionStats, error) {
	var stats RetentionStats
	if cfg.Retention.MaxAgeDays <= 0 {
		return stats, nil
	}

	stats.Cutoff = time.Now().UTC().AddDate(0, 0, -cfg.Retention.MaxAgeDays)
	n, err := st.DeleteInsightsOlderThan(ctx, stats.Cutoff)
	if err != nil {
		return stats, err
	}
	stats.InsightsDeleted = n
	metrics.RecordRetention(n)
	return stats, nil
}

// StartRetention runs CleanupExpiredInsights immediately and then every
// retention.cleanupIntervalMinutes until ctx is cancelled. It blocks;
// callers typically run it in its own goroutine.
func StartRetention(ctx context.Context, cfg *config.Config, st InsightsPruner, logger *slog.Logger) {
	if !cfg.Retention.Enabled {
		return
	}

	interval := time.Duration(cfg.Retention.CleanupIntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		stats, err := CleanupExpiredInsights(ctx, cfg, st)
		if err != nil {
			logger.Error("retention cleanup failed", "error", err)
		} else if stats.InsightsDeleted > 0 {
			logger.Info("retention cleanup", "deleted", stats.InsightsDeleted, "cutoff", stats.Cutoff)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
