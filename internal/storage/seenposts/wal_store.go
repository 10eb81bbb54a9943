// Package seenposts persists the IDs of posts that already triggered (or
// were considered for) a trade, so a restart does not act on an old post
// twice.
package seenposts

import (
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/gowal"
)

const (
	DefaultDir   = "./wal/seenposts"
	segmentLimit = 1000
	maxSegments  = 10

	seenKeyPrefix = "seen_post_"
)

// Journal is a WAL-backed set of already-processed post IDs.
type Journal struct {
	wal  *gowal.Wal
	mu   sync.RWMutex
	seen map[string]struct{}
}

// NewJournal opens (or creates) the journal in dir and replays previously
// recorded post IDs into memory.
func NewJournal(dir string) (*Journal, error) {
	if dir == "" {
		dir = DefaultDir
	}

	cfg := gowal.Config{
		Dir:              dir,
		Prefix:           "post_",
		SegmentThreshold: segmentLimit,
		MaxSegments:      maxSegments,
		IsInSyncDiskMode: true,
	}

	wal, err := gowal.NewWAL(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "init seen posts WAL")
	}

	j := &Journal{
		wal:  wal,
		seen: make(map[string]struct{}),
	}

	for idx := uint64(1); idx <= wal.CurrentIndex(); idx++ {
		key, _, err := wal.Get(idx)
		if err != nil {
			continue
		}
		if id, ok := strings.CutPrefix(key, seenKeyPrefix); ok {
			j.seen[id] = struct{}{}
		}
	}

	return j, nil
}

// Seen reports whether the post ID has been marked before.
func (j *Journal) Seen(id string) bool {
	if j == nil || j.wal == nil {
		return false
	}

	j.mu.RLock()
	defer j.mu.RUnlock()

	_, ok := j.seen[id]
	return ok
}

// Mark records the post ID durably. Marking an already-seen ID is a no-op.
func (j *Journal) Mark(id string) error {
	if j == nil || j.wal == nil {
		return errors.New("seen posts journal is not initialized")
	}
	if id == "" {
		return errors.New("post id is required")
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if _, ok := j.seen[id]; ok {
		return nil
	}

	nextIndex := j.wal.CurrentIndex() + 1
	payload := []byte(time.Now().UTC().Format(time.RFC3339))
	if err := j.wal.Write(nextIndex, seenKeyPrefix+id, payload); err != nil {
		return errors.Wrapf(err, "failed to journal post %s", id)
	}

	j.seen[id] = struct{}{}
	return nil
}

// Close closes the underlying WAL.
func (j *Journal) Close() error {
	if j == nil || j.wal == nil {
		return errors.New("seen posts journal is not initialized")
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	return j.wal.Close()
}
