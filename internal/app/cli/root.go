package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "fare-tracker",
	Short: "Tracks Delhi-Goa flight fares and alerts on price drops",
	Long: `fare-tracker polls flight-search providers for a fixed itinerary,
keeps the lowest observed price per category for the day, and sends an
email or webhook alert when a fare drops below the day's baseline.
An external scheduler is expected to invoke it periodically.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".env", "config file")
}
