// Package sources manages the static, user-authored configuration of
// monitored sources: where each source's list begins, how to locate its
// items, and where its feed document is written. The engine treats
// loaded configs as read-only input.
package sources

import (
	"time"
)

// Config represents one monitored source.
type Config struct {
	// ID is the stable key for cursor storage and CLI selection.
	ID string `mapstructure:"id"`
	// Name is the human-readable source name.
	Name string `mapstructure:"name"`
	// URL is the entry URL of the source's first list page.
	URL string `mapstructure:"url"`
	// ChannelTitle is the output feed's channel title.
	ChannelTitle string `mapstructure:"channel_title"`
	// ChannelDescription is the output feed's channel description.
	ChannelDescription string `mapstructure:"channel_description"`
	// Language is the output feed's language code.
	Language string `mapstructure:"language"`
	// OutputPath is where the feed document is written.
	OutputPath string `mapstructure:"output_path"`
	// UserAgent overrides the process default User-Agent.
	UserAgent string `mapstructure:"user_agent"`
	// Timeout overrides the process default fetch timeout.
	Timeout time.Duration `mapstructure:"timeout"`
	// Rules describe how to extract items and fields from a page.
	Rules RuleSet `mapstructure:"rules"`
}

// RuleSet holds the extraction rules for one source. Items locates the
// repeating item nodes on a page; Title, Link, Date and Description
// operate relative to one item node; NextPage operates on the whole
// document and is absent for single-page sources.
type RuleSet struct {
	Items       Rule `mapstructure:"items"`
	Title       Rule `mapstructure:"title"`
	Link        Rule `mapstructure:"link"`
	Date        Rule `mapstructure:"date"`
	Description Rule `mapstructure:"description"`
	NextPage    Rule `mapstructure:"next_page"`
}

// Rule is one field-extraction rule: either a declarative CSS selector
// or a reference to a registered custom extractor function. Exactly one
// of Selector and Func should be set; a rule with neither is absent.
type Rule struct {
	// Selector is a CSS selector applied to the rule's scope.
	Selector string `mapstructure:"selector"`
	// Attr names the attribute read by the date rule. Defaults to
	// "datetime"; ignored by other rules.
	Attr string `mapstructure:"attr"`
	// Func names a custom extractor registered in code.
	Func string `mapstructure:"func"`
}

// IsZero reports whether the rule is absent.
func (r Rule) IsZero() bool {
	return r.Selector == "" && r.Func == ""
}
