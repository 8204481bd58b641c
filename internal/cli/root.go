// Package cli implements the command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loomctl/loom/internal/config"
	"github.com/loomctl/loom/internal/ui"
)

var (
	// Global flags
	configPath    string
	statePathFlag string
	serverFlag    string
	verbose       bool

	// Resolved values
	resolvedConfigPath string
	resolvedStatePath  string
	cfg                *config.Config
)

// rootCmd is the base command. Everything after the global flags is one
// command line for the pipeline: it is tokenized, parsed, and validated
// against the catalog rather than handled by cobra subcommands.
var rootCmd = &cobra.Command{
	Use:   "loom [command line]",
	Short: "Loom - multi-project agent orchestration",
	Long: `Loom drives a multi-project orchestration server from the terminal.
Commands address projects, roadmaps, and chats, with an ambient
selection so related commands don't repeat themselves.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "completion" || cmd.Name() == "help" {
			return nil
		}

		resolvedConfigPath = config.ResolveConfigPath(configPath)
		var err error
		cfg, err = config.LoadFrom(resolvedConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		resolvedStatePath = config.ResolveStatePath(statePathFlag, resolvedConfigPath, cfg)
		if cfg.UI.Accent != "" {
			ui.SetAccent(cfg.UI.Accent)
		}
		return nil
	},
	RunE: runPipeline,
}

// Execute runs the CLI.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		var exit *exitError
		if !errors.As(err, &exit) {
			fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
		}
	}
	return err
}

func init() {
	// The command line after the global flags belongs to the pipeline,
	// so flag parsing stops at the first non-flag argument.
	rootCmd.Flags().SetInterspersed(false)

	// "help" is pipeline input, not a cobra subcommand.
	rootCmd.SetHelpCommand(&cobra.Command{Use: "_help", Hidden: true})

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&statePathFlag, "state", "", "Path to state file (overrides state_file in config)")
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "Orchestration server URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose diagnostics on stderr")
}
