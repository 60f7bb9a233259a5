package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Read or change the shop's open/closed status",
}

var shopStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print whether the shop is open",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, closeStore, err := openStore(cfg.Store)
		if err != nil {
			return err
		}
		defer closeStore()

		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()

		st, err := store.Status(ctx)
		if err != nil {
			return fmt.Errorf("reading shop status: %w", err)
		}
		if st.IsOpen {
			fmt.Fprintln(cmd.OutOrStdout(), "open")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "closed")
		}
		return nil
	},
}

func newToggleCmd(use, state string, open bool) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: "Mark the shop as " + state,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, closeStore, err := openStore(cfg.Store)
			if err != nil {
				return err
			}
			defer closeStore()

			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			if err := store.SetOpen(ctx, open); err != nil {
				return fmt.Errorf("updating shop status: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "shop is now %s\n", state)
			return nil
		},
	}
}

func init() {
	shopCmd.AddCommand(shopStatusCmd)
	shopCmd.AddCommand(newToggleCmd("open", "open", true))
	shopCmd.AddCommand(newToggleCmd("close", "closed", false))
	rootCmd.AddCommand(shopCmd)
}
