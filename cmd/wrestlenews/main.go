package main

import (
	"errors"
	"fmt"
	"os"
	"wrestlenews/internal/app"
	"wrestlenews/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	seed       uint64
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(1)
	}

	flags := &rootFlags{}
	root := &cobra.Command{
		Use:           "wrestlenews",
		Short:         "Wrestling news aggregator",
		Long:          "Collects wrestling news from RSS feeds into Raw and SmackDown buckets and proxies the X timeline.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "config.json", "Path to JSON config file")
	root.PersistentFlags().Uint64Var(&flags.seed, "seed", 0, "Seed for classifier tie-breaks (random when unset)")

	root.AddCommand(
		aggregateCmd(flags),
		postsCmd(flags),
		serveCmd(flags),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newApp загружает конфигурацию и собирает приложение.
// Отсутствующий config.json не ошибка: используются значения по умолчанию.
func newApp(cmd *cobra.Command, flags *rootFlags) (*app.App, error) {
	cfg, err := config.LoadOptional(flags.configPath)
	if err != nil {
		return nil, err
	}
	var opts []app.Option
	if cmd.Flags().Changed("seed") {
		opts = append(opts, app.WithSeed(flags.seed))
	}
	return app.New(cfg, opts...)
}
