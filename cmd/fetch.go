package cmd

import (
	"fmt"

	"article-mapper/internal/feed"
	"article-mapper/worker"

	"github.com/spf13/cobra"
)

// fetchCmd runs a single cycle. Ids given as arguments skip the list endpoint.
var fetchCmd = &cobra.Command{
	Use:   "fetch [article_id...]",
	Short: "Run one fetch-and-map cycle and emit the articles",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
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
			Concurrency: cfg.Collector.Concurrency,
		}

		ctx := cmd.Context()
		var stats worker.CycleStats
		if len(args) > 0 {
			stats = collector.RunIDs(ctx, args)
		} else {
			stats, err = collector.RunOnce(ctx)
			if err != nil {
				return err
			}
		}
		if stats.Failed > 0 || stats.SinkErrors > 0 {
			return fmt.Errorf("%d of %d articles failed, %d could not be emitted", stats.Failed, stats.IDs, stats.SinkErrors)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
