package cmd

import "github.com/spf13/cobra"

// redisCmd groups Redis sink subcommands.
var redisCmd = &cobra.Command{
	Use:   "redis",
	Short: "Redis sink utilities",
}

func init() {
	rootCmd.AddCommand(redisCmd)
}
