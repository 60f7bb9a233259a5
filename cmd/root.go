package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "shoprelay",
	Short: "LINE notification relay for a food shop",
	Long: `shoprelay answers LINE chat commands with the shop's open/closed state
and an order link, and pushes order-status and new-order notifications
from the ordering system to customers and the shop admin.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "shoprelay.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
}
