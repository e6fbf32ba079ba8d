package main

import (
	"github.com/spf13/cobra"

	"github.com/klai4444/Receptionist/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "receptionist",
	Short: "Virtual receptionist, anytime, anywhere, anyone",
	Long: `Receptionist relays your questions to a document-grounded assistant
and reads the answers back, optionally out loud.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml (default ~/.receptionist/config.yaml)")
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig loads the config honoring the --config flag.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFrom(configPath)
	}
	return config.Load()
}
