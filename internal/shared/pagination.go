package shared

// Pagination contains metadata for paginated listings. Pages are zero-based,
// matching the service of record.
type Pagination struct {
	Page       int `json:"page"`
	Size       int `json:"size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// NormalizePageRequest clamps page/size query values to usable defaults.
func NormalizePageRequest(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 10
	}
	if size > 100 {
		size = 100
	}
	return page, size
}
