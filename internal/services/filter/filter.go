// Package filter decides whether an inbound post qualifies as a trade trigger.
package filter

import (
	"strings"

	"github.com/vadiminshakov/mentio/internal/domain"
)

// Filter qualifies post events against the tracked account and asset symbol.
// It holds no mutable state and is safe for concurrent use.
type Filter struct {
	enabled         bool
	baseAsset       string
	trackedAuthorID string
	allowReplies    bool
}

func New(enabled bool, baseAsset, trackedAuthorID string, allowReplies bool) *Filter {
	return &Filter{
		enabled:         enabled,
		baseAsset:       baseAsset,
		trackedAuthorID: trackedAuthorID,
		allowReplies:    allowReplies,
	}
}

// Qualifies reports whether the event should trigger a trade cycle.
//
// The feed is expected to deliver only the tracked account's posts, but the
// author is re-checked here against misrouted events. The symbol match is a
// plain case-insensitive substring containment, no word boundaries.
func (f *Filter) Qualifies(event domain.PostEvent) bool {
	if !f.enabled || f.baseAsset == "" {
		return false
	}
	if event.AuthorID != f.trackedAuthorID {
		return false
	}
	if event.IsReply && !f.allowReplies {
		return false
	}

	return strings.Contains(strings.ToLower(event.Text), strings.ToLower(f.baseAsset))
}
