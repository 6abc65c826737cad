package query

import "testing"

func TestParsePageArgs(t *testing.T) {
	tests := []struct {
		name        string
		pageRaw     string
		perPageRaw  string
		wantPage    int
		wantPerPage int
	}{
		{"both valid", "3", "50", 3, 50},
		{"empty input", "", "", 1, 25},
		{"non-numeric page", "abc", "25", 1, 25},
		{"zero page", "0", "25", 1, 25},
		{"negative page", "-2", "25", 1, 25},
		{"per_page not in options", "2", "33", 2, 25},
		{"per_page largest option", "1", "200", 1, 200},
		{"non-numeric per_page", "1", "lots", 1, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, perPage := ParsePageArgs(tt.pageRaw, tt.perPageRaw)
			if page != tt.wantPage || perPage != tt.wantPerPage {
				t.Errorf("ParsePageArgs(%q, %q) = (%d, %d), want (%d, %d)",
					tt.pageRaw, tt.perPageRaw, page, perPage, tt.wantPage, tt.wantPerPage)
			}
		})
	}
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name      string
		totalRows int
		page      int
		perPage   int
		want      Pagination
	}{
		{
			name: "empty set still has one page", totalRows: 0, page: 1, perPage: 25,
			want: Pagination{Page: 1, PerPage: 25, TotalRows: 0, TotalPages: 1, PrevPage: 1, NextPage: 1},
		},
		{
			name: "exact page boundary", totalRows: 50, page: 2, perPage: 25,
			want: Pagination{Page: 2, PerPage: 25, TotalRows: 50, TotalPages: 2, HasPrev: true, PrevPage: 1, NextPage: 2},
		},
		{
			name: "partial last page", totalRows: 51, page: 1, perPage: 25,
			want: Pagination{Page: 1, PerPage: 25, TotalRows: 51, TotalPages: 3, HasNext: true, PrevPage: 1, NextPage: 2},
		},
		{
			name: "page clamped to last", totalRows: 10, page: 99, perPage: 25,
			want: Pagination{Page: 1, PerPage: 25, TotalRows: 10, TotalPages: 1, PrevPage: 1, NextPage: 1},
		},
		{
			name: "page below one clamped up", totalRows: 10, page: -5, perPage: 25,
			want: Pagination{Page: 1, PerPage: 25, TotalRows: 10, TotalPages: 1, PrevPage: 1, NextPage: 1},
		},
		{
			name: "middle page", totalRows: 300, page: 2, perPage: 100,
			want: Pagination{Page: 2, PerPage: 100, TotalRows: 300, TotalPages: 3, HasPrev: true, HasNext: true, PrevPage: 1, NextPage: 3},
		},
		{
			name: "invalid per page falls back", totalRows: 30, page: 1, perPage: 0,
			want: Pagination{Page: 1, PerPage: 25, TotalRows: 30, TotalPages: 2, HasNext: true, PrevPage: 1, NextPage: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPagination(tt.totalRows, tt.page, tt.perPage)
			if got != tt.want {
				t.Errorf("NewPagination(%d, %d, %d) = %+v, want %+v",
					tt.totalRows, tt.page, tt.perPage, got, tt.want)
			}

			// Pure function: a second call yields the same window.
			if again := NewPagination(tt.totalRows, tt.page, tt.perPage); again != got {
				t.Errorf("NewPagination not deterministic: %+v vs %+v", got, again)
			}
		})
	}
}

func TestPaginationOffset(t *testing.T) {
	pg := NewPagination(300, 3, 100)
	if got := pg.Offset(); got != 200 {
		t.Errorf("Offset() = %d, want 200", got)
	}
}
