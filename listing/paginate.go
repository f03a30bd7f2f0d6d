package listing

// MaxPages is the deepest page the API will serve for list endpoints
const MaxPages = 500

// Paginate returns the 1-based page of size elements. Pages outside the
// range are empty; a size of zero or less returns every element.
func Paginate[T any](items []T, page, size int) []T {
	if size <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	if page-1 > len(items)/size {
		return nil
	}
	start := (page - 1) * size
	if start >= len(items) {
		return nil
	}
	end := min(start+size, len(items))
	return items[start:end]
}

// PageCount returns how many pages of size hold total elements
func PageCount(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// ClampPages caps the API's total_pages at limit; limit <= 0 means MaxPages
func ClampPages(totalPages, limit int) int {
	if limit <= 0 {
		limit = MaxPages
	}
	return max(0, min(totalPages, limit))
}

// Pager describes the position within a paged list
type Pager struct {
	Page       int
	TotalPages int
}

// NewPager clamps page into [1, totalPages]
func NewPager(page, totalPages int) Pager {
	if totalPages < 1 {
		totalPages = 1
	}
	page = max(1, min(page, totalPages))
	return Pager{Page: page, TotalPages: totalPages}
}

// HasPrev reports whether there is a previous page
func (p Pager) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether there is a next page
func (p Pager) HasNext() bool { return p.Page < p.TotalPages }

// Prev returns the previous page number
func (p Pager) Prev() int { return max(1, p.Page-1) }

// Next returns the next page number
func (p Pager) Next() int { return min(p.TotalPages, p.Page+1) }

// Window returns up to width page numbers centred on the current page
func (p Pager) Window(width int) []int {
	if width <= 0 || p.TotalPages <= 0 {
		return nil
	}
	width = min(width, p.TotalPages)

	start := p.Page - width/2
	start = max(1, min(start, p.TotalPages-width+1))

	pages := make([]int, width)
	for i := range pages {
		pages[i] = start + i
	}
	return pages
}
