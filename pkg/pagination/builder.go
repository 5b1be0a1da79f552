package pagination

// Source is a finalized page collection with its options.
// Builder implements it; New consumes it.
type Source[P any] interface {
	Pages() []P
	Options() Options
}

// Builder assembles a page collection and its options.
//
// Methods return the builder so calls can be chained. The first invalid
// argument is recorded and every later call becomes a no-op; Err and Build
// report it.
type Builder[P any] struct {
	pages   []P
	options Options
	err     error
}

// NewBuilder returns an empty builder with default (clamping) options.
func NewBuilder[P any]() *Builder[P] {
	return &Builder[P]{
		pages:   []P{},
		options: DefaultOptions(),
	}
}

// AddPage appends one page.
func (b *Builder[P]) AddPage(page P) *Builder[P] {
	if b.err != nil {
		return b
	}
	b.pages = append(b.pages, page)
	return b
}

// AddPages appends pages in the order given.
func (b *Builder[P]) AddPages(pages ...P) *Builder[P] {
	for _, p := range pages {
		b.AddPage(p)
	}
	return b
}

// SetPages replaces the page collection. The slice is kept, not copied.
func (b *Builder[P]) SetPages(pages []P) *Builder[P] {
	if b.err != nil {
		return b
	}
	if pages == nil {
		pages = []P{}
	}
	b.pages = pages
	return b
}

// SetPagesValue replaces the page collection from an untyped value, such as
// one decoded from a file. v must be a []P, or a []any holding only P values.
func (b *Builder[P]) SetPagesValue(v any) *Builder[P] {
	if b.err != nil {
		return b
	}
	switch pages := v.(type) {
	case []P:
		return b.SetPages(pages)
	case []any:
		typed := make([]P, 0, len(pages))
		for _, item := range pages {
			p, ok := item.(P)
			if !ok {
				b.err = invalidArgument("setPages method must use an array of pages.")
				return b
			}
			typed = append(typed, p)
		}
		return b.SetPages(typed)
	default:
		b.err = invalidArgument("setPages method must use an array of pages.")
		return b
	}
}

// SetOptions replaces the options.
func (b *Builder[P]) SetOptions(opts Options) *Builder[P] {
	if b.err != nil {
		return b
	}
	b.options = opts
	return b
}

// SetOptionsValue replaces the options from an untyped value. v must be an
// Options, a non-nil *Options, or a key/value record.
func (b *Builder[P]) SetOptionsValue(v any) *Builder[P] {
	if b.err != nil {
		return b
	}
	switch opts := v.(type) {
	case Options:
		return b.SetOptions(opts)
	case *Options:
		if opts != nil {
			return b.SetOptions(*opts)
		}
	case map[string]any:
		if parsed, ok := optionsFromRecord(opts); ok {
			return b.SetOptions(parsed)
		}
	}
	b.err = invalidArgument("setOptions method must use an object of options.")
	return b
}

// Pages returns the collected pages.
func (b *Builder[P]) Pages() []P {
	return b.pages
}

// Options returns the collected options.
func (b *Builder[P]) Options() Options {
	return b.options
}

// Err returns the first argument error recorded by the builder, if any.
func (b *Builder[P]) Err() error {
	return b.err
}

// Build returns a cursor over the collected pages, or the recorded error.
func (b *Builder[P]) Build(opts ...Option) (*Cursor[P], error) {
	if b.err != nil {
		return nil, b.err
	}
	return New[P](b, opts...), nil
}

var _ Source[int] = (*Builder[int])(nil)
