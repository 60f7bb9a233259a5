package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/shop-relay/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize shoprelay configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the relay and writes the file given by --config.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
