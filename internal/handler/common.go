package handler

import (
	"net/http"
	"strconv"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// pagination reads page/limit query params and converts them to limit/offset.
// Page numbering starts at 1; out-of-range values fall back to defaults.
func pagination(r *http.Request) (limit, offset int) {
	limit = defaultPageSize
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}

	return limit, (page - 1) * limit
}
