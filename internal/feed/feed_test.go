package feed_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagefeed/internal/domain"
	"pagefeed/internal/feed"
)

var testMeta = feed.ChannelMeta{
	Title:       "Example News",
	Link:        "https://example.com/news",
	Description: "Harvested list of example news",
	Language:    "en",
}

func TestAssemblePreservesOrder(t *testing.T) {
	t.Parallel()

	items := []domain.Item{
		{Title: "Newest", Link: "https://example.com/3", PublishedAt: "2026-03-10T08:00:00Z"},
		{Title: "Middle", Link: "https://example.com/2", PublishedAt: "2026-03-09T08:00:00Z"},
		{Title: "Oldest", Link: "https://example.com/1", PublishedAt: "2026-03-08T08:00:00Z"},
	}

	doc := feed.Assemble(testMeta, items)

	require.Len(t, doc.Channel.Items, 3)
	assert.Equal(t, "Newest", doc.Channel.Items[0].Title)
	assert.Equal(t, "Oldest", doc.Channel.Items[2].Title)
	assert.Equal(t, testMeta.Title, doc.Channel.Title)
	assert.Equal(t, "en", doc.Channel.Language)
}

func TestAssembledFeedParsesAsRSS(t *testing.T) {
	t.Parallel()

	items := []domain.Item{
		{Title: "A & B", Link: "https://example.com/a?x=1&y=2", Description: "<b>bold</b> claim", PublishedAt: "2026-03-10"},
	}

	data, err := feed.Assemble(testMeta, items).Marshal()
	require.NoError(t, err)

	parsed, err := gofeed.NewParser().ParseString(string(data))
	require.NoError(t, err, "output must be consumable by a standard feed reader")

	assert.Equal(t, testMeta.Title, parsed.Title)
	require.Len(t, parsed.Items, 1)
	assert.Equal(t, "A & B", parsed.Items[0].Title)
	assert.Equal(t, "https://example.com/a?x=1&y=2", parsed.Items[0].Link)
	require.NotNil(t, parsed.Items[0].PublishedParsed)
}

func TestAssembleZeroItems(t *testing.T) {
	t.Parallel()

	data, err := feed.Assemble(testMeta, nil).Marshal()
	require.NoError(t, err)

	parsed, err := gofeed.NewParser().ParseString(string(data))
	require.NoError(t, err, "an empty channel is still a well-formed document")
	assert.Empty(t, parsed.Items)
}

func TestNormalizeDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"rfc3339", "2026-03-10T08:30:00Z", "Tue, 10 Mar 2026 08:30:00 +0000"},
		{"bare date", "2026-03-10", "Tue, 10 Mar 2026 00:00:00 +0000"},
		{"already rfc1123z", "Tue, 10 Mar 2026 08:30:00 +0100", "Tue, 10 Mar 2026 08:30:00 +0100"},
		{"dotted european", "10.03.2026", "Tue, 10 Mar 2026 00:00:00 +0000"},
		{"unparseable passes through", "circa March", "circa March"},
		{"whitespace trimmed", "  2026-03-10  ", "Tue, 10 Mar 2026 00:00:00 +0000"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, feed.NormalizeDate(tt.raw))
		})
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	got, err := feed.ParseDate("2026-03-10T08:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 10, 8, 30, 0, 0, time.UTC), got.UTC())

	_, err = feed.ParseDate("not a date")
	assert.ErrorIs(t, err, feed.ErrUnparseableDate)
}

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out", "news.xml")
	doc := feed.Assemble(testMeta, []domain.Item{
		{Title: "One", Link: "https://example.com/1"},
	})

	require.NoError(t, feed.WriteFile(path, doc))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<?xml"))

	// No temp files are left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "news.xml", entries[0].Name())

	// Rewriting replaces the document in place.
	require.NoError(t, feed.WriteFile(path, feed.Assemble(testMeta, nil)))
	rewritten, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(rewritten), "<item>")
}
