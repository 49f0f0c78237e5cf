package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func aggregateCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "aggregate",
		Short: "Fetch all feeds once and rewrite the news bucket files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			collection, err := a.RefreshNews(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "raw: %d, smackdown: %d\n", len(collection.Raw), len(collection.SmackDown))
			return nil
		},
	}
}
