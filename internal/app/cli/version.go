package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Printf("fare-tracker %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
