package domain

import "testing"

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name         string
		page, size   int
		wantP, wantS int
	}{
		{"valid", 2, 25, 2, 25},
		{"zero page", 0, 25, 1, 25},
		{"negative page", -5, 25, 1, 25},
		{"zero size", 3, 0, 3, DefaultPageSize},
		{"negative size", 3, -1, 3, DefaultPageSize},
		{"both invalid", 0, 0, 1, DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, s := NormalizePage(tt.page, tt.size)
			if p != tt.wantP || s != tt.wantS {
				t.Errorf("NormalizePage(%d,%d) = %d,%d; want %d,%d",
					tt.page, tt.size, p, s, tt.wantP, tt.wantS)
			}
		})
	}
}

func TestNewPagedList_HasNext(t *testing.T) {
	tests := []struct {
		name     string
		items    int
		total    int
		page     int
		pageSize int
		hasNext  bool
	}{
		{"first of many", 10, 25, 1, 10, true},
		{"middle", 10, 25, 2, 10, true},
		{"last partial", 5, 25, 3, 10, false},
		{"exact fit last", 10, 20, 2, 10, false},
		{"empty", 0, 0, 1, 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]int, tt.items)
			paged := NewPagedList(items, tt.total, tt.page, tt.pageSize)
			if paged.HasNext != tt.hasNext {
				t.Errorf("HasNext = %v, want %v", paged.HasNext, tt.hasNext)
			}
		})
	}
}

func TestPagedList_TotalPages(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{25, 10, 3},
		{20, 10, 2},
		{1, 10, 1},
		{0, 10, 0},
		{10, 0, 0},
	}

	for _, tt := range tests {
		paged := PagedList[int]{TotalCount: tt.total, PageSize: tt.size}
		if got := paged.TotalPages(); got != tt.want {
			t.Errorf("TotalPages(total=%d,size=%d) = %d, want %d", tt.total, tt.size, got, tt.want)
		}
	}
}
