package pagination

import "strconv"

// View is a snapshot of a cursor's derived state.
// Every field is computed from the pages, the options and the current index.
type View[P any] struct {
	// PageCount is the number of pages, or 1 for an empty collection.
	PageCount int
	// LastIndex is PageCount-1.
	LastIndex int

	CurrentIndex int
	NextIndex    int
	PrevIndex    int

	HumanPageCount    int
	HumanCurrentIndex int
	HumanNextIndex    int
	HumanPrevIndex    int

	// Indicator is "{HumanCurrentIndex}/{HumanPageCount}".
	Indicator string

	// Page is the current page. HasPage is false only when the collection
	// is empty, in which case Page is the zero value.
	Page    P
	HasPage bool
}

func indicator(current, total int) string {
	return strconv.Itoa(current) + "/" + strconv.Itoa(total)
}
