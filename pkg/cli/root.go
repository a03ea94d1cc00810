package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lead-capture/pkg/config"
	"lead-capture/pkg/logger"
	"lead-capture/pkg/storage"
)

// NewRootCommand builds the leadcapture command tree. Running it without
// a subcommand starts the server.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "leadcapture",
		Short:         "Lead capture API server",
		Long:          "Accepts consent-tagged email submissions and serves admin export and erasure.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}

	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewExportCommand())
	rootCmd.AddCommand(NewEraseCommand())

	return rootCmd
}

// openStore builds the store selected by cfg. The returned close func is never nil.
func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (storage.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StorageDriver {
	case config.StorageMemory:
		return storage.NewMemoryStore(), noop, nil
	case config.StoragePostgres:
		store, err := storage.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil
	default:
		store, err := storage.NewFileStore(cfg.DataFile, log)
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil
	}
}

// loadRuntime loads configuration and builds a logger writing to logOutput.
// Commands whose stdout is data pass logger.OutputStderr.
func loadRuntime(logOutput string) (*config.Config, *logger.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, logOutput)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, log, nil
}
