package shop

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ziadkadry99/shop-relay/internal/db"
)

// SQLiteStore keeps the status row in a local SQLite database.
type SQLiteStore struct {
	db    *db.DB
	rowID int
}

// NewSQLiteStore creates a store reading shop_settings row rowID.
func NewSQLiteStore(database *db.DB, rowID int) *SQLiteStore {
	return &SQLiteStore{db: database, rowID: rowID}
}

// Status returns the row's flag. A missing row is an error, matching the
// hosted store's single-row lookup.
func (s *SQLiteStore) Status(ctx context.Context) (Status, error) {
	var open bool
	err := s.db.QueryRowContext(ctx,
		`SELECT is_open FROM shop_settings WHERE id = ?`, s.rowID).Scan(&open)
	if errors.Is(err, sql.ErrNoRows) {
		return Status{}, fmt.Errorf("shop_settings row %d not found", s.rowID)
	}
	if err != nil {
		return Status{}, fmt.Errorf("querying shop_settings: %w", err)
	}
	return Status{IsOpen: open}, nil
}

// SetOpen upserts the row's flag.
func (s *SQLiteStore) SetOpen(ctx context.Context, open bool) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO shop_settings (id, is_open, updated_at) VALUES (?, ?, datetime('now'))
		 ON CONFLICT(id) DO UPDATE SET is_open = excluded.is_open, updated_at = excluded.updated_at`,
		s.rowID, open)
	if err != nil {
		return fmt.Errorf("updating shop_settings: %w", err)
	}
	return nil
}
