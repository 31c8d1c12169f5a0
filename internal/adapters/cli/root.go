package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "statecraft",
		Short: "Statecraft - deterministic turn engine for the economic strategy game",
		Long: `Statecraft runs the server-side turn resolution for a multi-country
economic strategy game: action validation, multi-turn progressions,
production, extraction and the shared elastic resource market.

Examples:
  statecraft game new --seed seed.json
  statecraft game status --game 1
  statecraft simulate --game 1 --turns 5 --script decisions.json
  statecraft market prices
  statecraft market history --game 1 --resource Iron`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: search ./config.yaml, ./configs, /etc/statecraft)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	rootCmd.AddCommand(NewGameCommand())
	rootCmd.AddCommand(NewSimulateCommand())
	rootCmd.AddCommand(NewMarketCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
