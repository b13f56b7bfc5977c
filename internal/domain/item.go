// Package domain provides domain models used across the application.
package domain

// Item represents one harvested entry from a source's list page.
// The Link is the item's identity: two items with equal links are the
// same item for deduplication and cursor comparison.
type Item struct {
	// Title of the entry
	Title string `json:"title"`
	// Link to the entry, absolute or source-relative
	Link string `json:"link"`
	// Description or summary text
	Description string `json:"description,omitempty"`
	// PublishedAt holds the raw date text as found on the page. The
	// format varies by source; normalization happens at feed assembly.
	PublishedAt string `json:"published_at,omitempty"`
}

// PageResult holds everything extracted from a single page: the items
// found on it and the link to the next page, if any. It lives only for
// one iteration of the crawl loop and is never persisted.
type PageResult struct {
	Items    []Item
	NextPage string
}

// ContainsLink reports whether any item in items has the given link.
func ContainsLink(items []Item, link string) bool {
	for i := range items {
		if items[i].Link == link {
			return true
		}
	}
	return false
}
