package utils

import (
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestParsePagination(t *testing.T) {
	cases := []struct {
		url                   string
		wantPage, wantLimit   int64
		wantSkip              int64
	}{
		{"/x", 1, 10, 0},
		{"/x?page=3&limit=20", 3, 20, 40},
		{"/x?page=0&limit=0", 1, 10, 0},
		{"/x?page=-5", 1, 10, 0},
		{"/x?limit=9999", 1, 100, 0},
		{"/x?page=abc&limit=xyz", 1, 10, 0},
	}

	for _, c := range cases {
		r := httptest.NewRequest("GET", c.url, nil)
		page, limit, skip := ParsePagination(r, 10, 100)
		if page != c.wantPage || limit != c.wantLimit || skip != c.wantSkip {
			t.Errorf("%s: got (%d,%d,%d), want (%d,%d,%d)",
				c.url, page, limit, skip, c.wantPage, c.wantLimit, c.wantSkip)
		}
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(15, 2, 10)
	if p.Pages != 2 {
		t.Errorf("15 docs, limit 10: pages = %d, want 2", p.Pages)
	}
	if p.Total != 15 || p.Page != 2 || p.Limit != 10 {
		t.Errorf("unexpected pagination %+v", p)
	}

	p = NewPagination(0, 1, 10)
	if p.Pages != 0 {
		t.Errorf("0 docs: pages = %d, want 0", p.Pages)
	}

	p = NewPagination(30, 1, 10)
	if p.Pages != 3 {
		t.Errorf("30 docs, limit 10: pages = %d, want 3", p.Pages)
	}
}

func TestRegexFilter(t *testing.T) {
	f := RegexFilter("name", "Chem")
	inner, ok := f["name"].(bson.M)
	if !ok {
		t.Fatalf("unexpected filter shape %#v", f)
	}
	if inner["$regex"] != "Chem" || inner["$options"] != "i" {
		t.Errorf("unexpected regex filter %#v", inner)
	}
}

func TestIsAllSentinel(t *testing.T) {
	if !IsAllSentinel("@all") || !IsAllSentinel("@all-extra") {
		t.Error("@all prefix not recognized")
	}
	if IsAllSentinel("all") || IsAllSentinel("") || IsAllSentinel("@admin") {
		t.Error("false positive for non-sentinel")
	}
}
