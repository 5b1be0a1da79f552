package pagination

import "github.com/bft-labs/pageturn/pkg/log"

// Options is the wraparound policy of a page collection.
type Options struct {
	// InfinitePages selects circular wraparound. When false the cursor
	// clamps at the first and last page.
	InfinitePages bool `toml:"infinite_pages" json:"infinite_pages"`
}

// DefaultOptions returns clamping options.
func DefaultOptions() Options {
	return Options{InfinitePages: false}
}

// optionsFromRecord reads Options out of a decoded key/value record.
// Unknown keys are ignored. A recognized key holding a non-bool is rejected.
func optionsFromRecord(rec map[string]any) (Options, bool) {
	opts := DefaultOptions()
	for _, key := range []string{"infinite_pages", "infinitePages"} {
		v, found := rec[key]
		if !found {
			continue
		}
		b, ok := v.(bool)
		if !ok {
			return Options{}, false
		}
		opts.InfinitePages = b
	}
	return opts, true
}

// Option configures optional behavior of a Cursor.
type Option func(*cursorOptions)

type cursorOptions struct {
	logger     log.Logger
	startIndex int
}

// WithLogger sets a logger for cursor moves (debug level).
// If not provided, a no-op logger is used.
func WithLogger(logger log.Logger) Option {
	return func(o *cursorOptions) {
		o.logger = logger
	}
}

// WithStartIndex positions a new cursor at the 0-based index i.
// The index is normalized like any other jump.
func WithStartIndex(i int) Option {
	return func(o *cursorOptions) {
		o.startIndex = i
	}
}

// WithHumanStartIndex positions a new cursor at the 1-based index h.
func WithHumanStartIndex(h int) Option {
	return WithStartIndex(fromHuman(h))
}
