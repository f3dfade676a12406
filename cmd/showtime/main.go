package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/qepting91/showtime/internal/collector"
	"github.com/qepting91/showtime/internal/config"
	"github.com/qepting91/showtime/internal/dashboard"
	"github.com/qepting91/showtime/internal/domain"
	"github.com/qepting91/showtime/internal/feed"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	var (
		limit int
		mode  string
		port  string
		serve bool
	)

	cmd := &cobra.Command{
		Use:   "showtime",
		Short: "Fetch the top movies feed and print the ranked list",
		Long: `Fetches the public top-movies feed once, keeps the first --limit
entries in upstream order and prints them as NDJSON.

Configuration comes from .env and the environment (FEED_URL,
FEED_USER_AGENT, COLLECTOR_MODE, FEED_LIMIT, FEED_MIN_INTERVAL, PORT,
LOG_LEVEL). Flags override the environment.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// 1. Setup
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("limit") {
				if limit < 0 {
					return fmt.Errorf("--limit must not be negative, got %d", limit)
				}
				cfg.Limit = limit
			}
			if cmd.Flags().Changed("mode") {
				cfg.Mode = mode
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}

			logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
			slog.SetDefault(logger)

			// 2. Initialize Client (Using Factory)
			fetcher, err := collector.NewFetcher(cfg)
			if err != nil {
				logger.Error("Failed to initialize collector", "error", err)
				return err
			}
			logger.Info("Collector initialized", "mode", cfg.Mode, "url", cfg.FeedURL)

			svc := feed.NewService(fetcher, logger)

			// 3. Graceful Shutdown
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if serve {
				logger.Info("Starting Dashboard", "port", cfg.Port)
				errc := make(chan error, 1)
				go func() { errc <- dashboard.StartServer(svc, cfg.Limit, cfg.Port) }()
				select {
				case err := <-errc:
					logger.Error("Dashboard failed", "err", err)
					return err
				case <-ctx.Done():
					logger.Info("Shutdown signal received")
					return nil
				}
			}

			return printMovies(ctx, svc, cfg.Limit, stdout)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", config.DefaultLimit, "maximum number of top-ranked movies")
	cmd.Flags().StringVar(&mode, "mode", config.ModePublic, "collector mode: public or mock")
	cmd.Flags().StringVar(&port, "port", config.DefaultPort, "dashboard port (with --serve)")
	cmd.Flags().BoolVar(&serve, "serve", false, "serve the chart dashboard instead of printing")

	return cmd
}

func printMovies(ctx context.Context, loader domain.Loader, limit int, w io.Writer) error {
	res, ok := <-loader.Load(ctx, domain.FeedRequest{Limit: limit})
	if !ok {
		return ctx.Err()
	}
	if res.Err != nil {
		return res.Err
	}

	enc := json.NewEncoder(w)
	for _, m := range res.Movies {
		if err := enc.Encode(m); err != nil {
			return err
		}
	}
	slog.Info("Feed printed", "movies", len(res.Movies), "skipped", len(res.Skipped))
	return nil
}
