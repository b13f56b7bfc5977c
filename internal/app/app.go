// Package app orchestrates sync runs: it wires the cursor store, page
// fetcher, extractor and crawl loop together for each source and
// commits the results.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"pagefeed/internal/config"
	"pagefeed/internal/crawl"
	"pagefeed/internal/cursor"
	"pagefeed/internal/domain"
	"pagefeed/internal/extract"
	"pagefeed/internal/feed"
	"pagefeed/internal/fetcher"
	"pagefeed/internal/logger"
	"pagefeed/internal/sources"
)

// RunSummary describes the outcome of one source's sync run.
type RunSummary struct {
	SourceID   string
	Items      int
	PagesRead  int
	StopReason crawl.StopReason
	NewCursor  string
	FeedPath   string
}

// App runs sync batches over configured sources.
type App struct {
	cfg   *config.Config
	store cursor.Store
	log   logger.Interface
	now   func() time.Time
}

// New creates an App. When the full-resync override is active the
// cursor store is wrapped so reads see no cursor and writes are
// dropped, leaving persisted state untouched.
func New(cfg *config.Config, store cursor.Store, log logger.Interface) *App {
	if cfg.FullResync {
		store = cursor.Bypass(store)
		log.Info("Full resync override active, ignoring stored cursors")
	}
	return &App{
		cfg:   cfg,
		store: store,
		log:   log,
		now:   time.Now,
	}
}

// WithClock replaces the app's clock and returns the app.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// RunAll processes every source sequentially. A failure in one source
// is logged and isolated: the remaining sources still run. The
// returned error, if any, reports how many sources failed after the
// whole batch has been attempted.
func (a *App) RunAll(ctx context.Context, srcs []sources.Config) error {
	runID := uuid.NewString()
	log := a.log.With("run_id", runID)

	failed := 0
	for i := range srcs {
		src := &srcs[i]
		summary, err := a.RunSource(ctx, src)
		if err != nil {
			failed++
			log.WithSource(src.ID).WithError(err).Error("Source sync failed")
			continue
		}
		log.WithSource(src.ID).Info("Source synced",
			"items", summary.Items,
			"pages", summary.PagesRead,
			"stop_reason", string(summary.StopReason))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d sources failed", failed, len(srcs))
	}
	return nil
}

// RunSource executes one source's crawl-and-sync run: load the cursor,
// crawl, write the feed document, commit the new cursor.
func (a *App) RunSource(ctx context.Context, src *sources.Config) (*RunSummary, error) {
	prev, err := a.store.Load(ctx, src.ID)
	if err != nil {
		return nil, fmt.Errorf("load cursor: %w", err)
	}

	extractor, err := extract.New(src)
	if err != nil {
		return nil, fmt.Errorf("build extractor: %w", err)
	}

	loop := crawl.New(
		fetcher.New(a.timeout(src), a.userAgent(src)),
		extractor,
		crawl.Config{ItemCap: a.cfg.ItemCap, MaxItemAge: a.cfg.MaxItemAge},
		a.log.WithSource(src.ID),
	).WithClock(a.now)

	result, err := loop.Run(ctx, src.URL, prev)
	if err != nil {
		return nil, err
	}

	feedPath := FeedPath(a.cfg, src)
	if err := a.writeFeed(feedPath, src, result.Items); err != nil {
		return nil, err
	}

	summary := &RunSummary{
		SourceID:   src.ID,
		Items:      len(result.Items),
		PagesRead:  result.PagesRead,
		StopReason: result.StopReason,
		FeedPath:   feedPath,
	}

	// An empty run must not erase a perfectly good prior cursor.
	if len(result.Items) == 0 {
		return summary, nil
	}

	newCursor := domain.Cursor{
		LastLink:  result.Items[0].Link,
		LastRunAt: a.now(),
	}
	if err := a.store.Save(ctx, src.ID, newCursor); err != nil {
		return nil, fmt.Errorf("save cursor: %w", err)
	}
	summary.NewCursor = newCursor.LastLink

	return summary, nil
}

// writeFeed assembles and writes the feed document. An empty run skips
// the write when a previous document already exists, so consumers keep
// the last known-good feed; a cold empty source still gets a
// well-formed empty document.
func (a *App) writeFeed(path string, src *sources.Config, items []domain.Item) error {
	if len(items) == 0 {
		if _, err := os.Stat(path); err == nil {
			return nil
		}
	}

	doc := feed.Assemble(feed.ChannelMeta{
		Title:       src.ChannelTitle,
		Link:        src.URL,
		Description: src.ChannelDescription,
		Language:    src.Language,
	}, items)

	return feed.WriteFile(path, doc)
}

// FeedPath resolves a source's feed document location: absolute output
// paths are used as-is, relative ones land under the configured output
// directory.
func FeedPath(cfg *config.Config, src *sources.Config) string {
	if filepath.IsAbs(src.OutputPath) {
		return src.OutputPath
	}
	return filepath.Join(cfg.OutputDir, src.OutputPath)
}

func (a *App) timeout(src *sources.Config) time.Duration {
	if src.Timeout > 0 {
		return src.Timeout
	}
	return a.cfg.RequestTimeout
}

func (a *App) userAgent(src *sources.Config) string {
	if src.UserAgent != "" {
		return src.UserAgent
	}
	return a.cfg.UserAgent
}
