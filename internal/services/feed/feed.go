// Package feed delivers the tracked account's public posts as signal events.
package feed

import (
	"context"

	"github.com/vadiminshakov/mentio/internal/domain"
)

// Feed is a lazy, infinite, non-restartable sequence of post events.
// The channel is closed when the upstream connection ends; delivery order is
// arrival order and duplicates are possible.
type Feed interface {
	Start(ctx context.Context) (<-chan domain.PostEvent, error)
	// UserID returns the tracked account's resolved identifier, valid after Start.
	UserID() string
}
