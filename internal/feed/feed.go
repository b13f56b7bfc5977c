// Package feed assembles filtered item lists into RSS 2.0 documents.
package feed

import (
	"encoding/xml"
	"fmt"

	"pagefeed/internal/domain"
)

// rssVersion is the RSS document version emitted.
const rssVersion = "2.0"

// RSS is the root element of an RSS 2.0 document.
type RSS struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Channel Channel  `xml:"channel"`
}

// Channel holds the feed metadata and its items.
type Channel struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Language    string `xml:"language,omitempty"`
	Items       []Item `xml:"item"`
}

// Item is one feed entry.
type Item struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description,omitempty"`
	PubDate     string `xml:"pubDate,omitempty"`
}

// ChannelMeta describes the output channel.
type ChannelMeta struct {
	Title       string
	Link        string
	Description string
	Language    string
}

// Assemble builds an RSS document from the given items. Item order is
// preserved and publish dates are normalized to RFC 1123; a date that
// cannot be parsed passes through as found rather than failing the run.
// A zero-item input yields a well-formed document with an empty channel.
func Assemble(meta ChannelMeta, items []domain.Item) *RSS {
	doc := &RSS{
		Version: rssVersion,
		Channel: Channel{
			Title:       meta.Title,
			Link:        meta.Link,
			Description: meta.Description,
			Language:    meta.Language,
			Items:       make([]Item, 0, len(items)),
		},
	}

	for _, item := range items {
		doc.Channel.Items = append(doc.Channel.Items, Item{
			Title:       item.Title,
			Link:        item.Link,
			Description: item.Description,
			PubDate:     NormalizeDate(item.PublishedAt),
		})
	}

	return doc
}

// Marshal renders the document as indented XML with a standard header.
func (r *RSS) Marshal() ([]byte, error) {
	body, err := xml.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal rss: %w", err)
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}
