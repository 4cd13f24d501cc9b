package dto

import "testing"

func TestPageQueryNormalize(t *testing.T) {
	q := PageQuery{}
	if offset := q.Normalize(10); offset != 0 || q.Page != 1 || q.Limit != 10 {
		t.Errorf("defaults: offset=%d page=%d limit=%d", offset, q.Page, q.Limit)
	}

	q = PageQuery{Page: 3, Limit: 20}
	if offset := q.Normalize(10); offset != 40 {
		t.Errorf("offset = %d, want 40", offset)
	}
}

func TestNewPaginationMeta(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		pages int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
	}
	for _, tt := range tests {
		meta := NewPaginationMeta(1, tt.limit, tt.total)
		if meta.TotalPages != tt.pages {
			t.Errorf("total=%d limit=%d: pages = %d, want %d", tt.total, tt.limit, meta.TotalPages, tt.pages)
		}
	}
}
