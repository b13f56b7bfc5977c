// Package crawl walks a source's page sequence, accumulating items
// until one of the termination conditions fires, then filters the
// accumulated list down to the items the run may emit.
//
// Pagination is inherently sequential: the next page's URL is known
// only after the current page is parsed, so exactly one page is in
// flight at a time. The loop is an explicit state machine with states
// Fetching, Extracted and Stopped; the stop conditions are guarded
// transitions out of Extracted, evaluated in a fixed order.
package crawl

import (
	"context"
	"fmt"
	"time"

	"pagefeed/internal/domain"
	"pagefeed/internal/feed"
	"pagefeed/internal/logger"
)

// StopReason names the condition that ended a crawl.
type StopReason string

// The crawl stop conditions, in evaluation order. EmptyPage is checked
// first, as soon as a page is extracted; the rest are evaluated against
// the accumulated state.
const (
	StopEmptyPage     StopReason = "empty_page"
	StopNoNextPage    StopReason = "no_next_page"
	StopCursorReached StopReason = "cursor_reached"
	StopCapReached    StopReason = "cap_reached"
	StopAgeCutoff     StopReason = "age_cutoff"
)

// state is the crawl loop's machine state.
type state int

const (
	stateFetching state = iota
	stateExtracted
	stateStopped
)

// PageLoader retrieves raw markup for one page URL.
type PageLoader interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
}

// PageExtractor turns raw markup into items and a next-page link.
type PageExtractor interface {
	Page(markup string) (*domain.PageResult, error)
}

// Config bounds a crawl.
type Config struct {
	// ItemCap is the hard ceiling on items per run. On cursorless runs
	// it also stops the loop once reached.
	ItemCap int
	// MaxItemAge is how far back in time backfill may reach.
	MaxItemAge time.Duration
}

// Result is the outcome of one crawl: the filtered items, how many
// pages were fetched, and which condition stopped the loop.
type Result struct {
	Items      []domain.Item
	PagesRead  int
	StopReason StopReason
}

// Loop drives repeated fetch+extract across a source's page sequence.
type Loop struct {
	loader    PageLoader
	extractor PageExtractor
	cfg       Config
	log       logger.Interface
	now       func() time.Time
}

// New creates a crawl loop. The clock is injectable for tests via
// WithClock.
func New(loader PageLoader, extractor PageExtractor, cfg Config, log logger.Interface) *Loop {
	return &Loop{
		loader:    loader,
		extractor: extractor,
		cfg:       cfg,
		log:       log,
		now:       time.Now,
	}
}

// WithClock replaces the loop's clock and returns the loop.
func (l *Loop) WithClock(now func() time.Time) *Loop {
	l.now = now
	return l
}

// Run walks pages starting at entryURL. cursor is the previous run's
// resumption state, nil on cold starts and full-resync runs. Fetch and
// parse failures abort the run; zero items on a page is a silent
// end-of-content signal, not an error.
func (l *Loop) Run(ctx context.Context, entryURL string, cursor *domain.Cursor) (*Result, error) {
	var (
		accumulated []domain.Item
		nextPage    string
		reason      StopReason
		pagesRead   int
	)

	cutoff := l.now().Add(-l.cfg.MaxItemAge)
	pageURL := entryURL

	st := stateFetching
	for st != stateStopped {
		switch st {
		case stateFetching:
			markup, err := l.loader.Fetch(ctx, pageURL)
			if err != nil {
				return nil, fmt.Errorf("page %d (%s): %w", pagesRead+1, pageURL, err)
			}

			page, err := l.extractor.Page(markup)
			if err != nil {
				return nil, fmt.Errorf("page %d (%s): %w", pagesRead+1, pageURL, err)
			}
			pagesRead++

			if len(page.Items) == 0 {
				// End of content. The next-page link, if any, is not consulted.
				reason = StopEmptyPage
				st = stateStopped
				continue
			}

			accumulated = append(accumulated, page.Items...)
			nextPage = page.NextPage
			st = stateExtracted

		case stateExtracted:
			if r, stopped := l.checkStop(accumulated, nextPage, cursor, cutoff); stopped {
				reason = r
				st = stateStopped
				continue
			}
			pageURL = nextPage
			st = stateFetching
		}
	}

	items := l.filter(accumulated, cursor)

	l.log.Debug("Crawl finished",
		"pages", pagesRead,
		"accumulated", len(accumulated),
		"emitted", len(items),
		"stop_reason", string(reason))

	return &Result{Items: items, PagesRead: pagesRead, StopReason: reason}, nil
}

// checkStop evaluates the stop conditions against the accumulated
// state, in fixed order: no next page, cursor reached, item cap
// (cursorless runs only), then the age cutoff.
func (l *Loop) checkStop(
	accumulated []domain.Item,
	nextPage string,
	cursor *domain.Cursor,
	cutoff time.Time,
) (StopReason, bool) {
	if nextPage == "" {
		return StopNoNextPage, true
	}
	if cursor != nil && domain.ContainsLink(accumulated, cursor.LastLink) {
		return StopCursorReached, true
	}
	if cursor == nil && len(accumulated) >= l.cfg.ItemCap {
		return StopCapReached, true
	}

	// The source is assumed sorted newest-first, so once the most
	// recently accumulated item is stale, every later page is too.
	// Only the last item is consulted; an unparseable date does not
	// stop the crawl.
	last := accumulated[len(accumulated)-1]
	if published, err := feed.ParseDate(last.PublishedAt); err == nil && published.Before(cutoff) {
		return StopAgeCutoff, true
	}

	return "", false
}

// filter applies the post-crawl cuts: everything from the cursor item
// onward is dropped (those items were emitted by a previous run and
// fetched only while probing for the cursor), then the list is
// truncated to the item cap. The cap applies to every run, not only
// cold starts.
func (l *Loop) filter(items []domain.Item, cursor *domain.Cursor) []domain.Item {
	if cursor != nil {
		for i := range items {
			if items[i].Link == cursor.LastLink {
				items = items[:i]
				break
			}
		}
	}
	if len(items) > l.cfg.ItemCap {
		items = items[:l.cfg.ItemCap]
	}
	return items
}
