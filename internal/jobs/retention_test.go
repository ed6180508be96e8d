package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"brandscope/internal/config"
)

type fakePruner struct {
	mu      sync.Mutex
	cutoffs []time.Time
	deleted int64
	err     error
}

func (f *fakePruner) DeleteInsightsOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cutoffs = append(f.cutoffs, cutoff)
	return f.deleted, f.err
}

func (f *fakePruner) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cutoffs)
}

func TestCleanupExpiredInsights(t *testing.T) {
	cfg := config.Default()
	cfg.Retention.MaxAgeDays = 7
	st := &fakePruner{deleted: 3}

	before := time.Now().UTC()
	stats, err := CleanupExpiredInsights(context.Background(), cfg, st)
	if err != nil {
		t.Fatalf("CleanupExpiredInsights returned error: %v", err)
	}
	if stats.InsightsDeleted != 3 {
		t.Fatalf("expected 3 deleted, got %d", stats.InsightsDeleted)
	}
	want := before.AddDate(0, 0, -7)
	if d := stats.Cutoff.Sub(want); d < 0 || d > time.Minute {
		t.Fatalf("expected cutoff about 7 days ago, got %v", stats.Cutoff)
	}
}

func TestCleanupExpiredInsights_Disabled(t *testing.T) {
	cfg := config.Default()
	cfg.Retention.MaxAgeDays = 0
	st := &fakePruner{}

	if _, err := CleanupExpiredInsights(context.Background(), cfg, st); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if st.calls() != 0 {
		t.Fatalf("expected no delete when maxAgeDays is 0")
	}
}

func TestCleanupExpiredInsights_Error(t *testing.T) {
	cfg := config.Default()
	st := &fakePruner{err: errors.New("db down")}
	if _, err := CleanupExpiredInsights(context.Background(), cfg, st); err == nil {
		t.Fatalf("expected error to be returned")
	}
}

func TestStartRetention_RunsImmediatelyAndStops(t *testing.T) {
	cfg := config.Default()
	cfg.Retention.Enabled = true
	st := &fakePruner{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		StartRetention(ctx, cfg, st, logger)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for st.calls() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if st.calls() == 0 {
		t.Fatalf("expected an immediate cleanup run")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("expected StartRetention to return after cancel")
	}
}

func TestStartRetention_Disabled(t *testing.T) {
	cfg := config.Default()
	cfg.Retention.Enabled = false
	st := &fakePruner{}

	StartRetention(context.Background(), cfg, st, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if st.calls() != 0 {
		t.Fatalf("expected disabled retention to do nothing")
	}
}
