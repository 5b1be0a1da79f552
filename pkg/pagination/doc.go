// Package pagination provides an in-memory page cursor over an ordered
// collection of opaque pages.
//
// A [Builder] assembles the page collection and its [Options]; a [Cursor]
// is built once from the finalized pair and then tracks a current position.
// Moving past either end is never an error: in clamping mode the cursor
// holds at the boundary, and with Options.InfinitePages it re-enters at the
// opposite end.
//
// # Usage
//
//	cur, err := pagination.NewBuilder[string]().
//	    AddPages("intro", "setup", "usage").
//	    SetOptions(pagination.Options{InfinitePages: true}).
//	    Build()
//	if err != nil {
//	    return err
//	}
//
//	page, _ := cur.Next()   // "setup"
//	page, _ = cur.Last()    // "usage"
//	page, _ = cur.Next()    // "intro" (wrapped)
//	fmt.Println(cur.Indicator()) // "1/3"
//
// # Indexing
//
// Indexes are 0-based. Every index-taking method has a Human variant taking
// a 1-based index, and [View] carries both forms. Out-of-range indexes are
// corrected one boundary at a time: -5 on a circular three-page cursor
// resolves to the last page, not to -5 mod 3.
//
// # Empty collections
//
// A cursor over zero pages is valid. It reports a page count of 1, an
// indicator of "1/1", and navigation methods return ok == false.
//
// # Concurrency
//
// A Cursor is not safe for concurrent use. Callers sharing one must
// serialize access themselves.
package pagination
