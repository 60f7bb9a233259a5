package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to shoprelay! Let's configure your LINE shop bot.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Store backend.
	driverPrompt := promptui.Select{
		Label: "Where is the shop status stored?",
		Items: []string{
			"supabase: hosted shop_settings table",
			"sqlite:   local file (development)",
		},
	}
	driverIdx, _, err := driverPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("store selection: %w", err)
	}
	cfg.Store.Driver = []StoreDriver{StoreSupabase, StoreSQLite}[driverIdx]

	if cfg.Store.Driver == StoreSupabase {
		if cfg.Store.SupabaseURL, err = ask("Supabase project URL", ""); err != nil {
			return nil, err
		}
		if cfg.Store.SupabaseKey, err = askSecret("Supabase anon key"); err != nil {
			return nil, err
		}
	} else {
		if cfg.Store.SQLitePath, err = ask("SQLite database path", cfg.Store.SQLitePath); err != nil {
			return nil, err
		}
	}

	// 2. Messaging credentials. Left blank, they are expected from the environment.
	if cfg.LINE.ChannelAccessToken, err = askSecret("LINE channel access token (blank to use env)"); err != nil {
		return nil, err
	}
	if cfg.LINE.ChannelSecret, err = askSecret("LINE channel secret (blank to use env)"); err != nil {
		return nil, err
	}
	if cfg.LINE.AdminUserID, err = ask("Admin LINE user ID for new-order alerts", ""); err != nil {
		return nil, err
	}

	// 3. Shop settings.
	if cfg.Shop.OrderURL, err = ask("Customer order page URL", cfg.Shop.OrderURL); err != nil {
		return nil, err
	}
	portStr, err := ask("HTTP port", strconv.Itoa(cfg.Server.Port))
	if err != nil {
		return nil, err
	}
	if cfg.Server.Port, err = strconv.Atoi(portStr); err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	origins, err := ask("Allowed CORS origins (comma-separated, blank for any)", "")
	if err != nil {
		return nil, err
	}
	cfg.Server.AllowedOrigins = splitAndTrim(origins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	if cfg.LINE.ChannelAccessToken == "" || cfg.LINE.ChannelSecret == "" {
		fmt.Println("Note: set LINE_CHANNEL_ACCESS_TOKEN and LINE_CHANNEL_SECRET before running shoprelay server.")
	}
	return cfg, nil
}

func ask(label, def string) (string, error) {
	p := promptui.Prompt{Label: label, Default: def}
	v, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("%s: %w", label, err)
	}
	return v, nil
}

func askSecret(label string) (string, error) {
	p := promptui.Prompt{Label: label, Mask: '*'}
	v, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("%s: %w", label, err)
	}
	return v, nil
}
