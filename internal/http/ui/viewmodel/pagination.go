package viewmodel

// Pagination contains pagination metadata for list views. Page is as the
// list's URL carries it (1-based for documents, 0-based for users).
type Pagination struct {
	Page       int
	PageSize   int
	HasPrev    bool
	HasNext    bool
	StartIndex int
	EndIndex   int
	TotalCount int
	PrevURL    string
	NextURL    string
}

// Pager binds a Pagination to the element its links swap.
type Pager struct {
	Pagination Pagination
	Target     string
}
