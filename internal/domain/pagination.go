package domain

// Pagination selects one page of a listing. Pages are numbered from 1.
type Pagination struct {
	Page     int
	PageSize int
}

func (p Pagination) Limit() int {
	return p.PageSize
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Metadata places a page within a listing of TotalRecords entries.
type Metadata struct {
	CurrentPage  int
	FirstPage    int
	LastPage     int
	PageSize     int
	TotalRecords int
}

// Describe reports where p sits in a listing of total entries. An empty
// listing has no last page.
func (p Pagination) Describe(total int) *Metadata {
	m := &Metadata{
		CurrentPage:  p.Page,
		FirstPage:    1,
		PageSize:     p.PageSize,
		TotalRecords: total,
	}

	if p.PageSize > 0 {
		m.LastPage = (total + p.PageSize - 1) / p.PageSize
	}

	return m
}
