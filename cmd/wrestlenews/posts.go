package main

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"wrestlenews/internal/adapter/social"
	"wrestlenews/internal/config"
	"wrestlenews/internal/usecase"

	"github.com/spf13/cobra"
)

func postsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "posts",
		Short: "Fetch the latest X posts and rewrite the ticker file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			posts, err := a.PushPosts(ctx)
			if err != nil {
				return describePostsError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %d posts\n", len(posts))
			return nil
		},
	}
}

// describePostsError дополняет ошибку тем, что нужно оператору:
// имя переменной с токеном или статус и тело ответа API.
func describePostsError(err error) error {
	if errors.Is(err, usecase.ErrMissingCredential) {
		return fmt.Errorf("%w: set %s in the environment or .env", err, config.BearerTokenEnv)
	}
	var upstream *social.UpstreamError
	if errors.As(err, &upstream) {
		return fmt.Errorf("X API rejected the request (status %d): %s", upstream.StatusCode, upstream.Body)
	}
	return err
}
