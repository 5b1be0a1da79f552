package pagination

import "github.com/bft-labs/pageturn/pkg/log"

// Cursor tracks a position within an ordered page collection.
//
// The only stored position is the 0-based current index. Neighbouring
// indexes, human (1-based) variants, the indicator and the current page are
// derived from it on every call.
type Cursor[P any] struct {
	pages   []P
	options Options
	index   int
	logger  log.Logger
}

// New binds a cursor to the pages and options of src. The cursor keeps a
// reference to the page slice; it is never re-bound.
func New[P any](src Source[P], opts ...Option) *Cursor[P] {
	var o cursorOptions
	for _, opt := range opts {
		opt(&o)
	}
	c := &Cursor[P]{
		pages:   src.Pages(),
		options: src.Options(),
		index:   o.startIndex,
		logger:  log.Or(o.logger),
	}
	c.index = c.normalize(c.index)
	return c
}

// size is the page count with the empty collection treated as one page.
func (c *Cursor[P]) size() int {
	if len(c.pages) == 0 {
		return 1
	}
	return len(c.pages)
}

// normalize corrects i by a single boundary crossing.
func (c *Cursor[P]) normalize(i int) int {
	maxIndex := c.size() - 1
	if c.options.InfinitePages {
		if i < 0 {
			i = maxIndex
		}
		if i > maxIndex {
			i = 0
		}
		return i
	}
	if i < 0 {
		i = 0
	}
	if i > maxIndex {
		i = maxIndex
	}
	return i
}

// fromHuman converts a 1-based index to a 0-based one. Every h below 1
// normalizes the same way, so they map to -1 rather than risk overflow.
func fromHuman(h int) int {
	if h < 1 {
		return -1
	}
	return h - 1
}

// pageAt returns pages[i] for an already normalized i.
func (c *Cursor[P]) pageAt(i int) (P, bool) {
	if i < len(c.pages) {
		return c.pages[i], true
	}
	var zero P
	return zero, false
}

// View normalizes the current index and returns the derived state.
func (c *Cursor[P]) View() View[P] {
	c.index = c.normalize(c.index)

	size := c.size()
	next := c.normalize(c.index + 1)
	prev := c.normalize(c.index - 1)
	page, ok := c.pageAt(c.index)

	return View[P]{
		PageCount:         size,
		LastIndex:         size - 1,
		CurrentIndex:      c.index,
		NextIndex:         next,
		PrevIndex:         prev,
		HumanPageCount:    size,
		HumanCurrentIndex: c.index + 1,
		HumanNextIndex:    next + 1,
		HumanPrevIndex:    prev + 1,
		Indicator:         indicator(c.index+1, size),
		Page:              page,
		HasPage:           ok,
	}
}

// moveTo stores i, normalizes it and returns the resulting page.
func (c *Cursor[P]) moveTo(op string, i int) (P, bool) {
	from := c.index
	c.index = i
	v := c.View()
	c.logger.Debug("page cursor moved",
		log.String("op", op),
		log.Int("from", from),
		log.Int("requested", i),
		log.Int("to", v.CurrentIndex),
		log.String("indicator", v.Indicator),
	)
	return v.Page, v.HasPage
}

// Current returns the current page.
func (c *Cursor[P]) Current() (P, bool) {
	v := c.View()
	return v.Page, v.HasPage
}

// All returns the page collection. The slice is shared with the cursor and
// must not be modified.
func (c *Cursor[P]) All() []P {
	c.View()
	return c.pages
}

// Next advances one page and returns it.
func (c *Cursor[P]) Next() (P, bool) {
	return c.moveTo("next", c.index+1)
}

// Prev retreats one page and returns it.
func (c *Cursor[P]) Prev() (P, bool) {
	return c.moveTo("prev", c.index-1)
}

// First moves to the first page and returns it.
func (c *Cursor[P]) First() (P, bool) {
	return c.moveTo("first", 0)
}

// Last moves to the last page and returns it.
func (c *Cursor[P]) Last() (P, bool) {
	return c.moveTo("last", c.size()-1)
}

// JumpTo moves to the 0-based index i and returns the page there.
func (c *Cursor[P]) JumpTo(i int) (P, bool) {
	return c.moveTo("jump", i)
}

// JumpToHuman moves to the 1-based index h and returns the page there.
func (c *Cursor[P]) JumpToHuman(h int) (P, bool) {
	return c.moveTo("jump", fromHuman(h))
}

// Peek returns the page at the 0-based index i without moving the cursor.
func (c *Cursor[P]) Peek(i int) (P, bool) {
	c.View()
	return c.pageAt(c.normalize(i))
}

// PeekHuman returns the page at the 1-based index h without moving the cursor.
func (c *Cursor[P]) PeekHuman(h int) (P, bool) {
	return c.Peek(fromHuman(h))
}

// PageCount returns the number of pages, or 1 for an empty collection.
func (c *Cursor[P]) PageCount() int { return c.View().PageCount }

// CurrentIndex returns the 0-based current index.
func (c *Cursor[P]) CurrentIndex() int { return c.View().CurrentIndex }

// HumanCurrentIndex returns the 1-based current index.
func (c *Cursor[P]) HumanCurrentIndex() int { return c.View().HumanCurrentIndex }

// NextIndex returns the 0-based index Next would move to.
func (c *Cursor[P]) NextIndex() int { return c.View().NextIndex }

// HumanNextIndex returns the 1-based index Next would move to.
func (c *Cursor[P]) HumanNextIndex() int { return c.View().HumanNextIndex }

// PrevIndex returns the 0-based index Prev would move to.
func (c *Cursor[P]) PrevIndex() int { return c.View().PrevIndex }

// HumanPrevIndex returns the 1-based index Prev would move to.
func (c *Cursor[P]) HumanPrevIndex() int { return c.View().HumanPrevIndex }

// Indicator returns the "current/total" position string.
func (c *Cursor[P]) Indicator() string { return c.View().Indicator }

// Options returns the wraparound policy the cursor was built with.
func (c *Cursor[P]) Options() Options { return c.options }
