package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/shop-relay/internal/bots"
	"github.com/ziadkadry99/shop-relay/internal/config"
	"github.com/ziadkadry99/shop-relay/internal/messaging"
	"github.com/ziadkadry99/shop-relay/internal/notifications"
	"github.com/ziadkadry99/shop-relay/internal/server"
	"github.com/ziadkadry99/shop-relay/internal/shop"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the LINE webhook and notification server",
	Long: `Starts the relay's HTTP server: the LINE webhook at /webhook and the
order notification API under /api.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = serverPort
		}

		logger, err := newLogger(cfg.Log, os.Stderr)
		if err != nil {
			return err
		}
		slog.SetDefault(logger)

		gateway, err := newGateway(cfg)
		if err != nil {
			return err
		}
		if cfg.LINE.AdminUserID == "" {
			logger.Warn("admin LINE user ID not set; /api/notify-admin-order will fail")
		}

		store, closeStore, err := openStore(cfg.Store)
		if err != nil {
			return err
		}
		defer closeStore()

		srv := server.New(server.Config{
			Port:           cfg.Server.Port,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			RequestTimeout: time.Duration(cfg.Server.RequestTimeout) * time.Second,
			Version:        Version,
		}, logger)

		registerAllRoutes(srv, cfg, store, gateway, logger)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("shoprelay starting",
			slog.String("version", Version),
			slog.Int("port", cfg.Server.Port),
			slog.String("store", string(cfg.Store.Driver)))

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			logger.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})

		return g.Wait()
	},
}

// registerAllRoutes wires the webhook and notification features onto the server.
func registerAllRoutes(srv *server.Server, cfg *config.Config, store shop.Store, gateway messaging.Gateway, logger *slog.Logger) {
	r := srv.Router()

	// LINE webhook
	responder := shop.NewResponder(store, cfg.Shop.OrderURL, cfg.Commands.Order, logger.With(slog.String("component", "shop")))
	router := bots.NewRouter(bots.Commands{
		Order:  cfg.Commands.Order,
		Status: cfg.Commands.Status,
	}, responder, gateway, logger.With(slog.String("component", "webhook")))
	bots.RegisterRoutes(r, cfg.LINE.ChannelSecret, bots.NewWebhookHandler(router, logger))

	// Order notifications
	notifier := notifications.NewNotifier(gateway, cfg.LINE.AdminUserID, logger.With(slog.String("component", "notifications")))
	notifications.RegisterRoutes(r, notifier)
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", config.DefaultPort, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serverCmd)
}
