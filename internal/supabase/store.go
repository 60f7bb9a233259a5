// Package supabase reads and writes the shop status row through the
// PostgREST API exposed by a Supabase project.
package supabase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ziadkadry99/shop-relay/internal/shop"
)

// objectMediaType asks PostgREST for exactly one row as a bare object.
const objectMediaType = "application/vnd.pgrst.object+json"

// Config identifies the project and the status row.
type Config struct {
	URL     string
	APIKey  string
	Table   string
	RowID   int
	Timeout time.Duration
}

// Store is a shop.Store backed by a Supabase table.
type Store struct {
	client *resty.Client
	table  string
	rowID  int
}

var (
	_ shop.Store   = (*Store)(nil)
	_ shop.Toggler = (*Store)(nil)
)

type settingsRow struct {
	IsOpen *bool `json:"is_open"`
}

// NewStore creates a Store. The anon key is sent both as apikey and as
// bearer token, as Supabase expects.
func NewStore(cfg Config) *Store {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.URL, "/")+"/rest/v1").
		SetTimeout(timeout).
		SetHeader("apikey", cfg.APIKey).
		SetAuthToken(cfg.APIKey)

	return &Store{client: client, table: cfg.Table, rowID: cfg.RowID}
}

// Status fetches is_open for the configured row. A null is_open reads as closed.
func (s *Store) Status(ctx context.Context) (shop.Status, error) {
	var row settingsRow
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Accept", objectMediaType).
		SetQueryParams(map[string]string{
			"select": "is_open",
			"id":     "eq." + strconv.Itoa(s.rowID),
		}).
		SetResult(&row).
		Get("/" + s.table)
	if err != nil {
		return shop.Status{}, fmt.Errorf("querying %s: %w", s.table, err)
	}
	if resp.IsError() {
		return shop.Status{}, fmt.Errorf("querying %s: status %d: %s", s.table, resp.StatusCode(), strings.TrimSpace(resp.String()))
	}
	return shop.Status{IsOpen: row.IsOpen != nil && *row.IsOpen}, nil
}

// SetOpen updates is_open for the configured row.
func (s *Store) SetOpen(ctx context.Context, open bool) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=minimal").
		SetQueryParam("id", "eq."+strconv.Itoa(s.rowID)).
		SetBody(map[string]bool{"is_open": open}).
		Patch("/" + s.table)
	if err != nil {
		return fmt.Errorf("updating %s: %w", s.table, err)
	}
	if resp.IsError() {
		return fmt.Errorf("updating %s: status %d: %s", s.table, resp.StatusCode(), strings.TrimSpace(resp.String()))
	}
	return nil
}
