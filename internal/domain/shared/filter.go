package shared

// Filter carries the list-query options repositories understand: pagination,
// ordering, a free-text search term, and exact-match column filters. Order
// columns are whitelisted at the persistence layer, never interpolated raw.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]interface{}
}

// DefaultFilter returns first page of twenty, newest first
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}
}
