package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"article-mapper/internal/feed"
	"article-mapper/internal/sink"

	"github.com/spf13/cobra"
)

var mapID string

// mapCmd assembles an article from payloads saved on disk, without network access.
var mapCmd = &cobra.Command{
	Use:   "map <detail.json> [media.json]",
	Short: "Debug: map a saved detail (and media) payload and print the article",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		detail, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var media []byte
		if len(args) == 2 {
			if media, err = os.ReadFile(args[1]); err != nil {
				return err
			}
		}
		id := mapID
		if id == "" {
			id = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		}

		article, err := newAssembler(cfg, feed.NewClient(cfg.Source)).Assemble(id, detail, media)
		if err != nil {
			return fmt.Errorf("map %s: %w", args[0], err)
		}
		out, err := sink.NewWriter(cmd.OutOrStdout(), cfg.Sink.Format)
		if err != nil {
			return err
		}
		return out.Emit(cmd.Context(), article)
	},
}

func init() {
	mapCmd.Flags().StringVar(&mapID, "id", "", "article id used for the URL (default: detail file name)")
	rootCmd.AddCommand(mapCmd)
}
