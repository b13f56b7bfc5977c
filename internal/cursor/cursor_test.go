package cursor_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagefeed/internal/cursor"
	"pagefeed/internal/domain"
)

func TestFileStoreColdStart(t *testing.T) {
	t.Parallel()

	store := cursor.NewFileStore(t.TempDir())

	c, err := store.Load(context.Background(), "never-seen")
	require.NoError(t, err, "a missing cursor is not an error")
	assert.Nil(t, c)
}

func TestFileStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := cursor.NewFileStore(filepath.Join(t.TempDir(), "state"))
	ctx := context.Background()

	saved := domain.Cursor{
		LastLink:  "https://example.com/posts/42",
		LastRunAt: time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Save(ctx, "blog", saved))

	loaded, err := store.Load(ctx, "blog")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, saved.LastLink, loaded.LastLink)
	assert.True(t, saved.LastRunAt.Equal(loaded.LastRunAt))
}

func TestFileStoreOverwrite(t *testing.T) {
	t.Parallel()

	store := cursor.NewFileStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "blog", domain.Cursor{LastLink: "a", LastRunAt: time.Now()}))
	require.NoError(t, store.Save(ctx, "blog", domain.Cursor{LastLink: "b", LastRunAt: time.Now()}))

	loaded, err := store.Load(ctx, "blog")
	require.NoError(t, err)
	assert.Equal(t, "b", loaded.LastLink)
}

func TestFileStoreScopedPerSource(t *testing.T) {
	t.Parallel()

	store := cursor.NewFileStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "one", domain.Cursor{LastLink: "link-1", LastRunAt: time.Now()}))

	other, err := store.Load(ctx, "two")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestFileStoreCorruptCursorIsFatal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blog.json"), []byte("{not json"), 0o644))

	store := cursor.NewFileStore(dir)
	_, err := store.Load(context.Background(), "blog")
	require.Error(t, err, "anything other than not-found must surface")
}

func TestBypassHidesCursorWithoutMutatingIt(t *testing.T) {
	t.Parallel()

	inner := cursor.NewFileStore(t.TempDir())
	ctx := context.Background()

	original := domain.Cursor{LastLink: "https://example.com/posts/7", LastRunAt: time.Now()}
	require.NoError(t, inner.Save(ctx, "blog", original))

	bypassed := cursor.Bypass(inner)

	// Reads see no cursor.
	c, err := bypassed.Load(ctx, "blog")
	require.NoError(t, err)
	assert.Nil(t, c)

	// Writes are dropped.
	require.NoError(t, bypassed.Save(ctx, "blog", domain.Cursor{LastLink: "overwritten"}))

	kept, err := inner.Load(ctx, "blog")
	require.NoError(t, err)
	require.NotNil(t, kept)
	assert.Equal(t, original.LastLink, kept.LastLink, "the real cursor survives a full-resync run")
}
