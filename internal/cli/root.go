// Package cli implements the centavo command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/centavo-app/centavo/internal/api"
	"github.com/centavo-app/centavo/internal/daemon"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "centavo",
	Short: "Personal finance bookkeeping service",
	Long: `Centavo is a personal finance bookkeeping service: categories,
transactions, recurring-transaction expansion, and keyword-based
category suggestion, backed by a local SQLite store.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", daemon.DefaultConfigPath(),
		"Path to the config file")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the centavo version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "centavo %s\n", api.Version)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (daemon.Config, error) {
	return daemon.LoadConfig(configPath)
}
