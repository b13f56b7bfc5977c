package extract

import (
	"fmt"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

// ItemsFunc locates the repeating item nodes on a page.
type ItemsFunc func(doc *goquery.Document) *goquery.Selection

// FieldFunc extracts one field value from an item node. The whole
// document is passed alongside the node for rules that need page-level
// context. Implementations are trusted to degrade to reasonable
// defaults on malformed markup rather than fail.
type FieldFunc func(doc *goquery.Document, item *goquery.Selection) string

// NextPageFunc extracts the next-page link from a document, returning
// "" when there is none.
type NextPageFunc func(doc *goquery.Document) string

// registry holds custom extractor functions addressable by name from
// source configuration. Registration happens in init functions or
// during process startup, before sources are loaded.
var registry = struct {
	mu       sync.RWMutex
	items    map[string]ItemsFunc
	fields   map[string]FieldFunc
	nextPage map[string]NextPageFunc
}{
	items:    make(map[string]ItemsFunc),
	fields:   make(map[string]FieldFunc),
	nextPage: make(map[string]NextPageFunc),
}

// RegisterItemsFunc registers a custom items extractor under name.
func RegisterItemsFunc(name string, fn ItemsFunc) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.items[name] = fn
}

// RegisterFieldFunc registers a custom field extractor under name.
func RegisterFieldFunc(name string, fn FieldFunc) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.fields[name] = fn
}

// RegisterNextPageFunc registers a custom next-page extractor under name.
func RegisterNextPageFunc(name string, fn NextPageFunc) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.nextPage[name] = fn
}

func lookupItemsFunc(name string) (ItemsFunc, error) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	fn, ok := registry.items[name]
	if !ok {
		return nil, fmt.Errorf("unknown items extractor func %q", name)
	}
	return fn, nil
}

func lookupFieldFunc(name string) (FieldFunc, error) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	fn, ok := registry.fields[name]
	if !ok {
		return nil, fmt.Errorf("unknown field extractor func %q", name)
	}
	return fn, nil
}

func lookupNextPageFunc(name string) (NextPageFunc, error) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	fn, ok := registry.nextPage[name]
	if !ok {
		return nil, fmt.Errorf("unknown next-page extractor func %q", name)
	}
	return fn, nil
}
