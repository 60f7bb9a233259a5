package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/shop-relay/internal/notifications"
)

var (
	notifyStatus string
	notifyOrder  string
	notifyTotal  string
	notifyTest   bool
)

var notifyCmd = &cobra.Command{
	Use:   "notify <lineUserId>",
	Short: "Push an order-status message to a LINE user",
	Long: `Formats an order-status message exactly as /api/notify-order-status does
and pushes it to the given LINE user. With --test, sends the test message instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger, err := newLogger(cfg.Log, os.Stderr)
		if err != nil {
			return err
		}
		gateway, err := newGateway(cfg)
		if err != nil {
			return err
		}

		var total float64
		if notifyTotal != "" {
			total, err = strconv.ParseFloat(notifyTotal, 64)
			if err != nil {
				return fmt.Errorf("invalid --total %q: %w", notifyTotal, err)
			}
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		notifier := notifications.NewNotifier(gateway, cfg.LINE.AdminUserID, logger)
		if notifyTest {
			err = notifier.SendTest(ctx, args[0])
		} else {
			err = notifier.NotifyOrderStatus(ctx, notifications.OrderStatusRequest{
				LineUserID:  args[0],
				OrderNumber: notifications.FlexString(notifyOrder),
				Status:      notifyStatus,
				OrderTotal:  notifications.Amount(total),
			})
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "notification sent")
		return nil
	},
}

func init() {
	notifyCmd.Flags().StringVar(&notifyStatus, "status", notifications.StatusAccepted, "order status code (accepted, rejected, preparing, ready, ...)")
	notifyCmd.Flags().StringVar(&notifyOrder, "order", "", "order number")
	notifyCmd.Flags().StringVar(&notifyTotal, "total", "", "order total in baht")
	notifyCmd.Flags().BoolVar(&notifyTest, "test", false, "send the test notification instead")
	rootCmd.AddCommand(notifyCmd)
}
