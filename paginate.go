package cartera

// Page sizes of the listings.
const (
	MovementsPageSize = 20
	LedgerPageSize    = 5
)

// Page is a slice of a listing.
type Page[T any] struct {
	Rows   []T
	Number int // 1 based, within [1, Total]
	Total  int // number of pages, at least 1
	Size   int
	Count  int // number of rows in the whole listing
}

// Paginate returns the page-th page of rows, clamping page to the available pages.
func Paginate[T any](rows []T, page, size int) Page[T] {
	if size <= 0 {
		size = len(rows)
		if size == 0 {
			size = 1
		}
	}
	total := max(1, (len(rows)+size-1)/size)
	page = min(max(1, page), total)
	start := (page - 1) * size
	end := min(start+size, len(rows))
	return Page[T]{
		Rows:   rows[start:end],
		Number: page,
		Total:  total,
		Size:   size,
		Count:  len(rows),
	}
}

// HasPrev reports whether there is a page before.
func (p Page[T]) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether there is a page after.
func (p Page[T]) HasNext() bool { return p.Number < p.Total }

// Prev returns the previous page number.
func (p Page[T]) Prev() int { return max(1, p.Number-1) }

// Next returns the next page number.
func (p Page[T]) Next() int { return min(p.Total, p.Number+1) }
