// Package cursor persists per-source resumption state: the link of the
// most recently emitted item and the time of the last successful run.
package cursor

import (
	"context"

	"pagefeed/internal/domain"
)

// Store reads and writes per-source cursors. Load returns (nil, nil)
// for a source with no prior run; any other read failure is fatal to
// the run. Save overwrites the stored cursor unconditionally — callers
// only invoke it after a run that produced at least one surviving item.
type Store interface {
	Load(ctx context.Context, sourceID string) (*domain.Cursor, error)
	Save(ctx context.Context, sourceID string, c domain.Cursor) error
}

// bypass wraps a Store for full-resync runs: reads report no cursor so
// the crawl walks the full window, and writes are dropped so a forced
// reprocessing run never corrupts the real resumption state.
type bypass struct {
	inner Store
}

// Bypass returns a Store that ignores the persisted cursor without
// mutating it. Used when the full-resync override is active.
func Bypass(inner Store) Store {
	return &bypass{inner: inner}
}

func (b *bypass) Load(ctx context.Context, sourceID string) (*domain.Cursor, error) {
	return nil, nil
}

func (b *bypass) Save(ctx context.Context, sourceID string, c domain.Cursor) error {
	return nil
}
