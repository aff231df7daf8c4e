package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"article-mapper/internal/feed"
	"article-mapper/worker"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Poll the article feed and emit mapped articles on every tick",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		interval, err := cfg.Collector.IntervalDuration()
		if err != nil {
			return err
		}

		client := feed.NewClient(cfg.Source)
		out, closeSink, err := newSink(cfg)
		if err != nil {
			return err
		}
		defer closeSink()

		collector := &worker.ArticleCollector{
			Source:      client,
			Assembler:   newAssembler(cfg, client),
			Sink:        out,
			Interval:    interval,
			Concurrency: cfg.Collector.Concurrency,
		}
		slog.Info("starting article collector", "list_url", cfg.Source.ListURL, "interval", interval, "sinks", cfg.Sink.Kinds)

		mgr := worker.NewManager(collector)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Signal handling for systemd
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			s := <-sigc
			slog.Info("received signal, shutting down", "signal", s.String())
			cancel()
		}()

		return mgr.Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
