// Package pageturn provides an in-memory page cursor with clamping or
// circular navigation.
//
// Example usage:
//
//	cur, err := pageturn.NewBuilder[string]().
//	    AddPages("a", "b").
//	    SetOptions(pageturn.Options{InfinitePages: true}).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	page, _ := cur.Next()
//
// The types live in package pagination; this package re-exports the common
// entry points.
package pageturn

import (
	"github.com/bft-labs/pageturn/pkg/pagination"
)

// Options selects the wraparound policy of a page collection.
type Options = pagination.Options

// Option configures optional behavior of a cursor.
type Option = pagination.Option

// Error is a builder argument failure with a machine-readable code.
type Error = pagination.Error

// ErrInvalidArgument is matched by every builder argument error.
var ErrInvalidArgument = pagination.ErrInvalidArgument

// NewBuilder returns an empty page collection builder.
func NewBuilder[P any]() *pagination.Builder[P] {
	return pagination.NewBuilder[P]()
}

// New returns a cursor over pages using the given policy.
func New[P any](pages []P, opts Options, cursorOpts ...Option) *pagination.Cursor[P] {
	return pagination.New[P](pagination.NewBuilder[P]().SetPages(pages).SetOptions(opts), cursorOpts...)
}

// WithLogger, WithStartIndex and WithHumanStartIndex re-export the cursor options.
var (
	WithLogger          = pagination.WithLogger
	WithStartIndex      = pagination.WithStartIndex
	WithHumanStartIndex = pagination.WithHumanStartIndex
)
