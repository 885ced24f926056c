package paging

import (
	"net/http/httptest"
	"testing"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantPage  int64
		wantLimit int64
	}{
		{"defaults", "/?", 1, DefaultLimit},
		{"explicit", "/?page=3&limit=25", 3, 25},
		{"garbage falls back", "/?page=abc&limit=-5", 1, DefaultLimit},
		{"zero falls back", "/?page=0&limit=0", 1, DefaultLimit},
		{"limit capped", "/?limit=5000", 1, MaxLimit},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tc.url, nil)
			p := FromRequest(r)
			if p.Page != tc.wantPage || p.Limit != tc.wantLimit {
				t.Errorf("FromRequest(%q) = %+v, want page=%d limit=%d", tc.url, p, tc.wantPage, tc.wantLimit)
			}
		})
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, limit, want int64
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
		{5, 0, 0},
	}

	for _, tc := range tests {
		if got := TotalPages(tc.total, tc.limit); got != tc.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tc.total, tc.limit, got, tc.want)
		}
	}
}
