// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"
)

// DefaultLimit is the page size used when the request does not carry
// a limit parameter.
const DefaultLimit = 10

// MaxLimit caps the page size a client can request.
const MaxLimit = 100

// Params is a parsed page/limit pair, always valid: Page >= 1 and
// 1 <= Limit <= MaxLimit.
type Params struct {
	Page  int64
	Limit int64
}

// FromRequest parses the "page" and "limit" query parameters, falling
// back to page 1 and DefaultLimit on missing or invalid values.
func FromRequest(r *http.Request) Params {
	return Params{
		Page:  queryInt64(r, "page", 1, 1<<31),
		Limit: queryInt64(r, "limit", DefaultLimit, MaxLimit),
	}
}

// TotalPages returns the number of pages needed to show total rows at
// the given limit. Zero rows yield zero pages.
func TotalPages(total, limit int64) int64 {
	if limit < 1 {
		return 0
	}
	return (total + limit - 1) / limit
}

func queryInt64(r *http.Request, key string, def, max int64) int64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 1 {
		return def
	}
	if n > max {
		return max
	}
	return n
}
