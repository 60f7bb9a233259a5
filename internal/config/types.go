package config

// StoreDriver selects the backend holding the shop status row.
type StoreDriver string

const (
	StoreSupabase StoreDriver = "supabase"
	StoreSQLite   StoreDriver = "sqlite"
)

// LogFormat selects the slog handler.
type LogFormat string

const (
	LogJSON LogFormat = "json"
	LogText LogFormat = "text"
)

// Config is the top-level shoprelay configuration, corresponding to shoprelay.yml.
// It is built once at startup and passed by value to every component.
type Config struct {
	Server   ServerConfig   `yaml:"server" koanf:"server"`
	LINE     LINEConfig     `yaml:"line" koanf:"line"`
	Store    StoreConfig    `yaml:"store" koanf:"store"`
	Commands CommandsConfig `yaml:"commands" koanf:"commands"`
	Shop     ShopConfig     `yaml:"shop" koanf:"shop"`
	Log      LogConfig      `yaml:"log" koanf:"log"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port           int      `yaml:"port" koanf:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" koanf:"allowed_origins"`
	RequestTimeout int      `yaml:"request_timeout_seconds" koanf:"request_timeout_seconds"`
}

// LINEConfig holds messaging platform credentials and the fixed admin recipient.
type LINEConfig struct {
	ChannelAccessToken string `yaml:"channel_access_token" koanf:"channel_access_token"`
	ChannelSecret      string `yaml:"channel_secret" koanf:"channel_secret"`
	AdminUserID        string `yaml:"admin_user_id" koanf:"admin_user_id"`
	APIEndpoint        string `yaml:"api_endpoint,omitempty" koanf:"api_endpoint"`
}

// StoreConfig selects and configures the shop status store.
type StoreConfig struct {
	Driver      StoreDriver `yaml:"driver" koanf:"driver"`
	SupabaseURL string      `yaml:"supabase_url" koanf:"supabase_url"`
	SupabaseKey string      `yaml:"supabase_key" koanf:"supabase_key"`
	Table       string      `yaml:"table" koanf:"table"`
	RowID       int         `yaml:"row_id" koanf:"row_id"`
	SQLitePath  string      `yaml:"sqlite_path" koanf:"sqlite_path"`
}

// CommandsConfig holds the exact-match chat trigger phrases.
type CommandsConfig struct {
	Order  string `yaml:"order" koanf:"order"`
	Status string `yaml:"status" koanf:"status"`
}

// ShopConfig holds customer-facing shop settings.
type ShopConfig struct {
	OrderURL string `yaml:"order_url" koanf:"order_url"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string    `yaml:"level" koanf:"level"`
	Format LogFormat `yaml:"format" koanf:"format"`
}
