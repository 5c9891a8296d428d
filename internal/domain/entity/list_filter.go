package entity

// ListFilter is an AND of equality predicates plus an optional search term,
// already restricted to the columns a repository accepts.
type ListFilter struct {
	Equals   map[string]interface{}
	Search   string
	Page     int
	PageSize int
}

func (f ListFilter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}
