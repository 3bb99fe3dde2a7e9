package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "zkgames",
		Short: "CLI tool for the zkgames engine API",
		Long: `zkgames is a CLI tool for game clients of the zkgames engine.

It covers the full game lifecycle (create, join, complete, cancel), player and
account management, and the platform admin surface. Commitments and opening
proofs are computed locally; the secret never leaves this machine.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load token and client id from file if not provided via flag/env
			if err := cfg.LoadToken(); err != nil {
				return err
			}
			if err := cfg.LoadClientID(); err != nil {
				return err
			}

			// Create HTTP client
			client = NewClient(cfg.ServerURL, cfg.Token)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: ZKGAMES_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Token, "token", cfg.Token, "Session or admin token (env: ZKGAMES_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "Token file path (env: ZKGAMES_TOKEN_FILE)")
	rootCmd.PersistentFlags().StringVar(&cfg.ClientID, "client", cfg.ClientID, "Game client id for commitment binding (env: ZKGAMES_CLIENT_ID)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newAdminCmd())
	rootCmd.AddCommand(newPlayerCmd())
	rootCmd.AddCommand(newGameCmd())
	rootCmd.AddCommand(newCommitCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
