package feed

import (
	"errors"
	"strings"
	"time"
)

// ErrUnparseableDate indicates no known layout matched the raw text.
var ErrUnparseableDate = errors.New("unparseable date")

// dateLayouts are tried in order when parsing raw publish-date text.
// Sources emit anything from RFC 3339 timestamps down to bare dates.
var dateLayouts = []string{
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"02.01.2006",
	"02/01/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// ParseDate parses raw publish-date text against the known layouts.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrUnparseableDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrUnparseableDate
}

// NormalizeDate converts raw date text into an RFC 1123 pubDate string.
// Unparseable text is passed through unchanged: a bad date on one item
// must never fail the whole run.
func NormalizeDate(raw string) string {
	t, err := ParseDate(raw)
	if err != nil {
		return strings.TrimSpace(raw)
	}
	return t.Format(time.RFC1123Z)
}
