package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/quotient/internal/cli"
	"github.com/aretw0/quotient/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quotient",
	Short: "Quotient turns NFAs into minimal DFAs",
	Long: `Quotient determinizes nondeterministic finite automata by subset construction
and minimizes the result by merging equivalent states.

Automata are read as JSON or YAML from a file or from stdin.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides the configuration)")
}

// loadSettings resolves the configuration and the logger for a command.
func loadSettings(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	logger, err := cli.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
