package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ziadkadry99/shop-relay/internal/config"
	"github.com/ziadkadry99/shop-relay/internal/db"
	"github.com/ziadkadry99/shop-relay/internal/messaging"
	"github.com/ziadkadry99/shop-relay/internal/shop"
	"github.com/ziadkadry99/shop-relay/internal/supabase"
)

// statusStore is what the server and the shop command need from a store.
type statusStore interface {
	shop.Store
	shop.Toggler
}

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `shoprelay init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the process logger from the log section. --verbose
// forces debug level.
func newLogger(cfg config.LogConfig, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == config.LogText {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler), nil
}

// openStore opens the configured shop status store. The returned close
// function is never nil.
func openStore(cfg config.StoreConfig) (statusStore, func() error, error) {
	switch cfg.Driver {
	case config.StoreSQLite:
		database, err := db.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening database: %w", err)
		}
		return shop.NewSQLiteStore(database, cfg.RowID), database.Close, nil
	case config.StoreSupabase:
		store := supabase.NewStore(supabase.Config{
			URL:     cfg.SupabaseURL,
			APIKey:  cfg.SupabaseKey,
			Table:   cfg.Table,
			RowID:   cfg.RowID,
			Timeout: 10 * time.Second,
		})
		return store, func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// newGateway creates the LINE gateway after checking the credentials.
func newGateway(cfg *config.Config) (*messaging.LINEGateway, error) {
	if err := cfg.RequireLINE(); err != nil {
		return nil, err
	}
	return messaging.NewLINEGateway(cfg.LINE.ChannelAccessToken, cfg.LINE.APIEndpoint)
}
