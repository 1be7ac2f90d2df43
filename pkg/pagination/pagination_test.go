package pagination

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   Params
		want Params
	}{
		{"zero values", Params{}, Params{Page: 1, PageSize: DefaultPageSize}},
		{"negative page", Params{Page: -3, PageSize: 10}, Params{Page: 1, PageSize: 10}},
		{"over max", Params{Page: 2, PageSize: 500}, Params{Page: 2, PageSize: MaxPageSize}},
		{"in range", Params{Page: 4, PageSize: 50}, Params{Page: 4, PageSize: 50}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.in); got != tc.want {
				t.Fatalf("Normalize(%+v) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	if got := (Params{Page: 3, PageSize: 20}).Offset(); got != 40 {
		t.Fatalf("offset = %d, want 40", got)
	}
	if got := (Params{}).Offset(); got != 0 {
		t.Fatalf("offset for defaults = %d, want 0", got)
	}
}

func TestNewPage(t *testing.T) {
	page := NewPage([]string{"a", "b"}, Params{Page: 1, PageSize: 2}, 5)
	if page.TotalPages != 3 {
		t.Fatalf("total pages = %d, want 3", page.TotalPages)
	}
	if page.TotalCount != 5 {
		t.Fatalf("total count = %d, want 5", page.TotalCount)
	}

	empty := NewPage[string](nil, Params{}, 0)
	if empty.Items == nil {
		t.Fatal("items should never be nil")
	}
	if empty.TotalPages != 0 {
		t.Fatalf("total pages = %d, want 0", empty.TotalPages)
	}
}
