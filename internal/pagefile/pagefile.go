// Package pagefile loads a page collection and its options from a TOML file.
//
// A page file looks like:
//
//	[options]
//	infinite_pages = true
//
//	[[pages]]
//	title = "Intro"
//	body = "Welcome."
//
// pages may also be a plain array of strings, each becoming a page title.
package pagefile

import (
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/bft-labs/pageturn/pkg/pagination"
)

// Page is one entry of a page file.
type Page struct {
	Title string `toml:"title" json:"title"`
	Body  string `toml:"body" json:"body"`
}

// String renders the page as its title followed by its body.
func (p Page) String() string {
	if p.Body == "" {
		return p.Title
	}
	if p.Title == "" {
		return p.Body
	}
	return p.Title + "\n\n" + strings.TrimRight(p.Body, "\n")
}

// document is the raw shape of a page file. Fields stay untyped so that
// shape errors surface through the builder.
type document struct {
	Options any `toml:"options"`
	Pages   any `toml:"pages"`
}

// Load reads the file at path into a builder. Shape errors (pages that are
// not an array, options that are not a table) are reported through the
// returned builder's Err, matching pagination.ErrInvalidArgument.
func Load(path string) (*pagination.Builder[Page], error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Parse decodes a page file held in memory.
func Parse(data []byte) (*pagination.Builder[Page], error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode page file: %w", err)
	}

	builder := pagination.NewBuilder[Page]()
	if doc.Options != nil {
		builder.SetOptionsValue(doc.Options)
	}
	if doc.Pages != nil {
		builder.SetPagesValue(toPages(doc.Pages))
	}
	if err := builder.Err(); err != nil {
		return builder, err
	}
	return builder, nil
}

// stringField reads an optional string entry. ok is false when the entry
// is present but not a string.
func stringField(rec map[string]any, key string) (string, bool) {
	v, found := rec[key]
	if !found {
		return "", true
	}
	s, ok := v.(string)
	return s, ok
}

// toPages converts decoded entries to Pages. A value that is not an array,
// or that holds an entry of the wrong shape or a non-string title or body,
// is returned unchanged so the builder rejects it.
func toPages(v any) any {
	items, ok := v.([]any)
	if !ok {
		return v
	}
	pages := make([]Page, 0, len(items))
	for _, item := range items {
		switch e := item.(type) {
		case string:
			pages = append(pages, Page{Title: e})
		case map[string]any:
			title, ok := stringField(e, "title")
			if !ok {
				return v
			}
			body, ok := stringField(e, "body")
			if !ok {
				return v
			}
			pages = append(pages, Page{Title: title, Body: body})
		default:
			return v
		}
	}
	return pages
}
