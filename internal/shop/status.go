// Package shop reads the shop's open/closed flag and renders the chat
// replies that depend on it.
package shop

import (
	"context"
	"errors"
)

// ErrStoreUnavailable is returned when the status lookup fails.
var ErrStoreUnavailable = errors.New("shop status store unavailable")

// Status is the single open/closed flag of the shop.
type Status struct {
	IsOpen bool `json:"is_open"`
}

// Store returns the current shop status. Implementations are read fresh on
// every call; nothing is cached.
type Store interface {
	Status(ctx context.Context) (Status, error)
}

// Toggler is implemented by stores that can also change the flag.
type Toggler interface {
	SetOpen(ctx context.Context, open bool) error
}
