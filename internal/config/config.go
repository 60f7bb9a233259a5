package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix marks generic overrides: SHOPRELAY_STORE__DRIVER -> store.driver.
const EnvPrefix = "SHOPRELAY_"

// ErrMissingCredential reports a required identity or credential that is absent.
var ErrMissingCredential = errors.New("missing required credential")

// envAliases maps the conventional deployment variable names onto config keys.
var envAliases = map[string]string{
	"LINE_CHANNEL_ACCESS_TOKEN": "line.channel_access_token",
	"LINE_CHANNEL_SECRET":       "line.channel_secret",
	"ADMIN_LINE_USER_ID":        "line.admin_user_id",
	"SUPABASE_URL":              "store.supabase_url",
	"SUPABASE_ANON_KEY":         "store.supabase_key",
	"PORT":                      "server.port",
	"ALLOWED_ORIGINS":           "server.allowed_origins",
}

// Load reads configuration from the given YAML file, then overlays
// environment variables (aliases and SHOPRELAY_* overrides).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.ProviderWithValue("", ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// envKey maps an environment variable name to a config key, or "" to skip it.
func envKey(name string) string {
	if key, ok := envAliases[name]; ok {
		return key
	}
	if strings.HasPrefix(name, EnvPrefix) {
		rest := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
		return strings.ReplaceAll(rest, "__", ".")
	}
	return ""
}

func envValue(name, value string) (string, interface{}) {
	key := envKey(name)
	if key == "server.allowed_origins" {
		return key, splitAndTrim(value)
	}
	return key, value
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validDrivers = map[StoreDriver]bool{
	StoreSupabase: true,
	StoreSQLite:   true,
}

var validFormats = map[LogFormat]bool{
	LogJSON: true,
	LogText: true,
}

// Validate checks that the configuration contains valid values.
// Credentials are checked separately by RequireLINE so offline commands
// can run without them.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if c.Server.RequestTimeout < 0 {
		return fmt.Errorf("server.request_timeout_seconds must be non-negative")
	}

	if !validDrivers[c.Store.Driver] {
		return fmt.Errorf("invalid store.driver %q: must be one of supabase, sqlite", c.Store.Driver)
	}
	switch c.Store.Driver {
	case StoreSupabase:
		if c.Store.SupabaseURL == "" {
			return fmt.Errorf("store.supabase_url is required for the supabase driver")
		}
		if c.Store.SupabaseKey == "" {
			return fmt.Errorf("store.supabase_key is required for the supabase driver")
		}
		if c.Store.Table == "" {
			return fmt.Errorf("store.table is required")
		}
	case StoreSQLite:
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("store.sqlite_path is required for the sqlite driver")
		}
	}

	order := strings.TrimSpace(c.Commands.Order)
	status := strings.TrimSpace(c.Commands.Status)
	if order == "" || status == "" {
		return fmt.Errorf("commands.order and commands.status are required")
	}
	if order == status {
		return fmt.Errorf("commands.order and commands.status must differ")
	}

	if c.Shop.OrderURL == "" {
		return fmt.Errorf("shop.order_url is required")
	}
	if _, err := url.Parse(c.Shop.OrderURL); err != nil {
		return fmt.Errorf("invalid shop.order_url: %w", err)
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	if c.Log.Format != "" && !validFormats[c.Log.Format] {
		return fmt.Errorf("invalid log.format %q: must be one of json, text", c.Log.Format)
	}

	return nil
}

// RequireLINE fails when the messaging credentials needed to serve are absent.
func (c *Config) RequireLINE() error {
	if c.LINE.ChannelAccessToken == "" {
		return fmt.Errorf("%w: line.channel_access_token (LINE_CHANNEL_ACCESS_TOKEN)", ErrMissingCredential)
	}
	if c.LINE.ChannelSecret == "" {
		return fmt.Errorf("%w: line.channel_secret (LINE_CHANNEL_SECRET)", ErrMissingCredential)
	}
	return nil
}

// SlogLevel parses the configured level name.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	name := l.Level
	if name == "" {
		name = "info"
	}
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("invalid log.level %q: %w", l.Level, err)
	}
	return level, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
