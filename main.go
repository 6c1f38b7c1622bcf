package main

import (
	"fmt"
	"os"

	"pr_tracker/internal/app"
	"pr_tracker/internal/config"
	"pr_tracker/internal/records"
	"pr_tracker/internal/storage"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// cliEnv carries the state shared by all subcommands of one invocation
type cliEnv struct {
	cfg        *app.Config
	resilience config.ResilienceConfig
	debug      bool
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	env := &cliEnv{resilience: config.DefaultResilienceConfig}

	rootCmd := &cobra.Command{
		Use:           "pr_tracker",
		Short:         "Track personal running records",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app.SetupEnvironment()
			if env.debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				log.Debug().Msg("debug logging enabled")
			}

			cfg, err := app.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			env.cfg = cfg
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&env.debug, "debug", "d", false, "Enable verbose debug output")

	// Record commands
	rootCmd.AddCommand(newListCmd(env))
	rootCmd.AddCommand(newAddCmd(env))
	rootCmd.AddCommand(newUpdateCmd(env))
	rootCmd.AddCommand(newDeleteCmd(env))
	rootCmd.AddCommand(newBestCmd(env))
	rootCmd.AddCommand(newDistancesCmd(env))

	// Export commands
	rootCmd.AddCommand(newExportSheetCmd(env))
	rootCmd.AddCommand(newImportSheetCmd(env))
	rootCmd.AddCommand(newExportBigQueryCmd(env))
	rootCmd.AddCommand(newPublishCmd(env))

	return rootCmd
}

// openStore opens the configured key-value backend and the user's record store.
// The returned func releases the backend.
func (e *cliEnv) openStore() (*records.Store, func(), error) {
	kv, err := storage.Open(e.cfg.StorageBackend, e.cfg.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s storage: %w", e.cfg.StorageBackend, err)
	}

	closeFn := func() {
		if err := storage.Close(kv); err != nil {
			log.Warn().Err(err).Msg("Failed to close storage")
		}
	}

	return records.Open(kv, e.cfg.SlotKey()), closeFn, nil
}
