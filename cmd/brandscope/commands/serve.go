package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	server "brandscope/internal/http"
	"brandscope/internal/jobs"
	"brandscope/internal/migrate"
	"brandscope/internal/store"
)

var skipMigrations bool

func init() {
	serveCmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply database migrations on startup")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs the HTTP API.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var st *store.Store
		if cfg.Database.DSN != "" {
			if !skipMigrations {
				if err := migrate.Run(cfg.Database.DSN); err != nil {
					return err
				}
			}
			st, err = openStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()
			go jobs.StartRetention(ctx, cfg, st, logger)
		} else {
			logger.Warn("no database configured; insights will not be persisted")
		}

		rdb, err := openRedis(ctx, cfg)
		if err != nil {
			return err
		}
		if rdb != nil {
			defer rdb.Close()
		}

		svc := newInsightsService(cfg, newAggregator(cfg, logger), st, rdb, logger)
		deps := server.Deps{Insights: svc, Redis: rdb}
		if st != nil {
			deps.DB = st.DB
		}
		s := server.NewServer(cfg, deps, logger)

		errCh := make(chan error, 1)
		go func() {
			logger.Info("listening", "addr", cfg.Addr())
			errCh <- s.Listen()
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return nil
	},
}
