package cmd

import (
	"context"
	"fmt"
	"time"

	"article-mapper/internal/redisclient"

	"github.com/spf13/cobra"
)

// pingCmd checks that the Redis sink can reach its server and reports how
// many subscribers currently listen on the article channel.
var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Ping Redis and show subscribers of the article channel",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		res, err := rdb.Ping(ctx).Result()
		if err != nil {
			return err
		}
		subs, err := rdb.PubSubNumSub(ctx, cfg.Sink.RedisChannel).Result()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (channel %q: %d subscribers)\n", res, cfg.Sink.RedisChannel, subs[cfg.Sink.RedisChannel])
		return nil
	},
}

func init() {
	redisCmd.AddCommand(pingCmd)
}
