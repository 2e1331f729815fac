package results

// DefaultPageSize is the number of items shown per page.
const DefaultPageSize = 6

// Paginator holds the items of one search and the page being shown.
type Paginator struct {
	items    []Item
	pageSize int
	current  int
}

// Page is everything needed to draw one page and its navigation bar.
type Page struct {
	Number     int    // 1-based. Zero when Empty.
	TotalPages int    // Zero when Empty.
	TotalItems int    // Item count across every page.
	Items      []Item // The items on this page.
	Empty      bool   // No results at all; no navigation is drawn.
}

// NewPaginator creates a paginator over items. A pageSize below 1 uses DefaultPageSize.
func NewPaginator(items []Item, pageSize int) *Paginator {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Paginator{items: items, pageSize: pageSize}
}

// Len returns the number of items.
func (p *Paginator) Len() int {
	return len(p.items)
}

// PageSize returns the configured page size.
func (p *Paginator) PageSize() int {
	return p.pageSize
}

// TotalPages returns ceil(items/pageSize), or 0 when there are no items.
func (p *Paginator) TotalPages() int {
	return (len(p.items) + p.pageSize - 1) / p.pageSize
}

// Current returns the page last rendered. Zero until Render is called or
// when there are no items.
func (p *Paginator) Current() int {
	return p.current
}

// Render clamps requested into [1, TotalPages], makes it the current page
// and returns it.
func (p *Paginator) Render(requested int) Page {
	total := p.TotalPages()
	if total == 0 {
		p.current = 0
		return Page{Empty: true}
	}

	page := min(max(requested, 1), total)
	p.current = page

	start := (page - 1) * p.pageSize
	end := min(start+p.pageSize, len(p.items))

	return Page{
		Number:     page,
		TotalPages: total,
		TotalItems: len(p.items),
		Items:      p.items[start:end],
	}
}

// HasPrev reports whether a previous page exists.
func (pg Page) HasPrev() bool {
	return !pg.Empty && pg.Number > 1
}

// HasNext reports whether a next page exists.
func (pg Page) HasNext() bool {
	return !pg.Empty && pg.Number < pg.TotalPages
}

// Prev is the page number the previous control navigates to.
func (pg Page) Prev() int {
	return pg.Number - 1
}

// Next is the page number the next control navigates to.
func (pg Page) Next() int {
	return pg.Number + 1
}
