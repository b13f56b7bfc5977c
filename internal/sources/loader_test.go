package sources_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagefeed/internal/sources"
)

const validSourcesYAML = `
sources:
  - id: example-news
    name: Example News
    url: https://example.com/news
    channel_title: Example News
    channel_description: Harvested example news
    language: en
    output_path: example-news.xml
    user_agent: custom-agent/2.0
    timeout: 12s
    rules:
      items:
        selector: "li.entry"
      title:
        selector: "a.entry-link"
      link:
        selector: "a.entry-link"
      date:
        selector: "time"
        attr: datetime
      description:
        selector: "p.summary"
      next_page:
        selector: "a.next"
  - id: single-page
    name: Single Page
    url: https://example.org/updates
    output_path: single-page.xml
    rules:
      items:
        func: customItems
`

func writeSources(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSources(t *testing.T) {
	t.Parallel()

	configs, err := sources.NewLoader(writeSources(t, validSourcesYAML)).LoadSources()
	require.NoError(t, err)
	require.Len(t, configs, 2)

	first := configs[0]
	assert.Equal(t, "example-news", first.ID)
	assert.Equal(t, "https://example.com/news", first.URL)
	assert.Equal(t, "custom-agent/2.0", first.UserAgent)
	assert.Equal(t, 12*time.Second, first.Timeout)
	assert.Equal(t, "li.entry", first.Rules.Items.Selector)
	assert.Equal(t, "datetime", first.Rules.Date.Attr)
	assert.False(t, first.Rules.NextPage.IsZero())

	second := configs[1]
	assert.Equal(t, "customItems", second.Rules.Items.Func)
	assert.True(t, second.Rules.NextPage.IsZero(), "absent next_page means single-page source")
	assert.Zero(t, second.Timeout, "unset timeout defers to the process default")
}

func TestLoadSourcesEmptyFile(t *testing.T) {
	t.Parallel()

	_, err := sources.NewLoader(writeSources(t, "sources: []\n")).LoadSources()
	assert.ErrorIs(t, err, sources.ErrNoSources)
}

func TestLoadSourcesMissingFile(t *testing.T) {
	t.Parallel()

	_, err := sources.NewLoader(filepath.Join(t.TempDir(), "nope.yml")).LoadSources()
	require.Error(t, err)
}

func TestLoadSourcesInvalidYAML(t *testing.T) {
	t.Parallel()

	_, err := sources.NewLoader(writeSources(t, "sources:\n  - id: [broken\n")).LoadSources()
	require.Error(t, err)
}

func TestLoadSourcesValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
	}{
		{"missing id", `
sources:
  - url: https://example.com
    output_path: out.xml
    rules: {items: {selector: li}}
`},
		{"missing url", `
sources:
  - id: x
    output_path: out.xml
    rules: {items: {selector: li}}
`},
		{"relative url", `
sources:
  - id: x
    url: /news
    output_path: out.xml
    rules: {items: {selector: li}}
`},
		{"missing output path", `
sources:
  - id: x
    url: https://example.com
    rules: {items: {selector: li}}
`},
		{"missing items rule", `
sources:
  - id: x
    url: https://example.com
    output_path: out.xml
`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := sources.NewLoader(writeSources(t, tt.yaml)).LoadSources()
			require.Error(t, err)
		})
	}
}

func TestFindByID(t *testing.T) {
	t.Parallel()

	configs, err := sources.NewLoader(writeSources(t, validSourcesYAML)).LoadSources()
	require.NoError(t, err)

	assert.NotNil(t, sources.FindByID(configs, "single-page"))
	assert.Nil(t, sources.FindByID(configs, "missing"))
}
