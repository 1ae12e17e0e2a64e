package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	flags := &commandFlags{}
	ctx := newCommandContext(flags)

	rootCmd := &cobra.Command{
		Use:           "tunify",
		Short:         "Content-based music recommendations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			ctx.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.catalogue, "catalogue", "", "Catalogue file (CSV or SQLite)")
	rootCmd.PersistentFlags().StringVar(&flags.source, "source", "", "Catalogue source: csv or sqlite")
	rootCmd.PersistentFlags().StringVar(&flags.table, "table", "", "SQLite table holding the tracks")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "Log level written to stderr")

	rootCmd.AddCommand(newRecommendCommand(ctx))
	rootCmd.AddCommand(newPlaylistCommand(ctx))
	rootCmd.AddCommand(newGenresCommand(ctx))
	rootCmd.AddCommand(newInsightsCommand(ctx))

	return rootCmd
}
