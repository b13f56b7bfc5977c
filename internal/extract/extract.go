// Package extract resolves per-source field rules against parsed pages
// using goquery. Each rule is either a declarative CSS selector or a
// registered custom function; dispatch happens once, at extractor
// construction, so extraction itself is uniform regardless of the
// rule's representation.
package extract

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"pagefeed/internal/domain"
	"pagefeed/internal/sources"
)

// defaultDateAttr is the attribute read by a declarative date rule when
// the source does not designate one.
const defaultDateAttr = "datetime"

// itemsRule locates item nodes: a selector or a custom function.
type itemsRule struct {
	selector string
	fn       ItemsFunc
}

// fieldRule extracts one string field from an item node.
type fieldRule struct {
	selector string
	attr     string
	fn       FieldFunc
}

// nextPageRule extracts the next-page link from the whole document.
type nextPageRule struct {
	selector string
	fn       NextPageFunc
}

// Extractor applies one source's rules to fetched pages. Missing
// elements never produce errors: absence degrades to an empty string
// or, for items, an empty collection.
type Extractor struct {
	origin      *url.URL
	items       itemsRule
	title       fieldRule
	link        fieldRule
	date        fieldRule
	description fieldRule
	nextPage    *nextPageRule
}

// New builds an Extractor for the given source, resolving custom
// function references against the registry. Unknown function names are
// configuration errors.
func New(src *sources.Config) (*Extractor, error) {
	origin, err := url.Parse(src.URL)
	if err != nil {
		return nil, fmt.Errorf("parse source url %q: %w", src.URL, err)
	}

	e := &Extractor{origin: origin}

	if e.items, err = compileItemsRule(src.Rules.Items); err != nil {
		return nil, err
	}
	if e.title, err = compileFieldRule(src.Rules.Title); err != nil {
		return nil, err
	}
	if e.link, err = compileFieldRule(src.Rules.Link); err != nil {
		return nil, err
	}
	if e.date, err = compileFieldRule(src.Rules.Date); err != nil {
		return nil, err
	}
	if e.description, err = compileFieldRule(src.Rules.Description); err != nil {
		return nil, err
	}

	if !src.Rules.NextPage.IsZero() {
		rule, err := compileNextPageRule(src.Rules.NextPage)
		if err != nil {
			return nil, err
		}
		e.nextPage = rule
	}

	return e, nil
}

func compileItemsRule(r sources.Rule) (itemsRule, error) {
	if r.Func != "" {
		fn, err := lookupItemsFunc(r.Func)
		if err != nil {
			return itemsRule{}, err
		}
		return itemsRule{fn: fn}, nil
	}
	return itemsRule{selector: r.Selector}, nil
}

func compileFieldRule(r sources.Rule) (fieldRule, error) {
	if r.Func != "" {
		fn, err := lookupFieldFunc(r.Func)
		if err != nil {
			return fieldRule{}, err
		}
		return fieldRule{fn: fn}, nil
	}
	attr := r.Attr
	if attr == "" {
		attr = defaultDateAttr
	}
	return fieldRule{selector: r.Selector, attr: attr}, nil
}

func compileNextPageRule(r sources.Rule) (*nextPageRule, error) {
	if r.Func != "" {
		fn, err := lookupNextPageFunc(r.Func)
		if err != nil {
			return nil, err
		}
		return &nextPageRule{fn: fn}, nil
	}
	return &nextPageRule{selector: r.Selector}, nil
}

// Page parses the given markup and extracts all items plus the
// next-page link. An unparseable document is an error, fatal to the
// page; a page with zero matched items is valid and yields an empty
// item list.
func (e *Extractor) Page(markup string) (*domain.PageResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	nodes := e.itemNodes(doc)

	result := &domain.PageResult{
		Items: make([]domain.Item, 0, nodes.Length()),
	}

	nodes.Each(func(_ int, item *goquery.Selection) {
		result.Items = append(result.Items, domain.Item{
			Title:       e.fieldText(doc, item, e.title),
			Link:        e.resolveLink(e.fieldAttr(doc, item, e.link, "href")),
			Description: e.fieldText(doc, item, e.description),
			PublishedAt: e.dateValue(doc, item),
		})
	})

	result.NextPage = e.nextPageLink(doc)

	return result, nil
}

// itemNodes locates the repeating item nodes on the page.
func (e *Extractor) itemNodes(doc *goquery.Document) *goquery.Selection {
	if e.items.fn != nil {
		return e.items.fn(doc)
	}
	return doc.Find(e.items.selector)
}

// fieldText resolves a rule to the trimmed text of its first match.
func (e *Extractor) fieldText(doc *goquery.Document, item *goquery.Selection, rule fieldRule) string {
	if rule.fn != nil {
		return rule.fn(doc, item)
	}
	if rule.selector == "" {
		return ""
	}
	return strings.TrimSpace(item.Find(rule.selector).First().Text())
}

// fieldAttr resolves a rule to the named attribute of its first match.
func (e *Extractor) fieldAttr(doc *goquery.Document, item *goquery.Selection, rule fieldRule, attr string) string {
	if rule.fn != nil {
		return rule.fn(doc, item)
	}
	if rule.selector == "" {
		return ""
	}
	value, _ := item.Find(rule.selector).First().Attr(attr)
	return value
}

// dateValue reads the designated date attribute of the first match,
// falling back to the node's text when the attribute is absent.
func (e *Extractor) dateValue(doc *goquery.Document, item *goquery.Selection) string {
	if e.date.fn != nil {
		return e.date.fn(doc, item)
	}
	if e.date.selector == "" {
		return ""
	}
	match := item.Find(e.date.selector).First()
	if value, ok := match.Attr(e.date.attr); ok {
		return strings.TrimSpace(value)
	}
	return strings.TrimSpace(match.Text())
}

// nextPageLink resolves the next-page rule, returning "" when the
// source is single-page or the current page has no next link.
func (e *Extractor) nextPageLink(doc *goquery.Document) string {
	if e.nextPage == nil {
		return ""
	}
	if e.nextPage.fn != nil {
		return e.resolveLink(e.nextPage.fn(doc))
	}
	value, _ := doc.Find(e.nextPage.selector).First().Attr("href")
	return e.resolveLink(value)
}

// resolveLink resolves root-relative links against the source's origin.
// Absolute links, and anything a custom function already resolved, pass
// through unchanged.
func (e *Extractor) resolveLink(link string) string {
	if strings.HasPrefix(link, "/") {
		return e.origin.Scheme + "://" + e.origin.Host + link
	}
	return link
}
