package config

const (
	DefaultPort     = 3001
	DefaultTable    = "shop_settings"
	DefaultOrderURL = "https://customer-app-restuarant-application.onrender.com/"

	DefaultOrderTrigger  = "สั่งอาหาร"
	DefaultStatusTrigger = "สถานะร้าน"
)

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           DefaultPort,
			RequestTimeout: 30,
		},
		Store: StoreConfig{
			Driver:     StoreSupabase,
			Table:      DefaultTable,
			RowID:      1,
			SQLitePath: "data/shoprelay.db",
		},
		Commands: CommandsConfig{
			Order:  DefaultOrderTrigger,
			Status: DefaultStatusTrigger,
		},
		Shop: ShopConfig{
			OrderURL: DefaultOrderURL,
		},
		Log: LogConfig{
			Level:  "info",
			Format: LogJSON,
		},
	}
}
