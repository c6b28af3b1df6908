package move

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestResolveField(t *testing.T) {
	cases := []struct {
		kind, container string
		want            string
		wantErr         bool
	}{
		{KindItem, ContainerLab, "items", false},
		{KindItem, ContainerItem, "deviceList", false},
		{KindComponent, ContainerLab, "components", false},
		{KindComponent, ContainerItem, "componentList", false},
		{"lab", ContainerLab, "", true},
		{KindItem, "user", "", true},
		{"", "", "", true},
	}

	for _, c := range cases {
		got, err := ResolveField(c.kind, c.container)
		if c.wantErr {
			if err == nil {
				t.Errorf("ResolveField(%q, %q): expected error, got %q", c.kind, c.container, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ResolveField(%q, %q): unexpected error %v", c.kind, c.container, err)
			continue
		}
		if got != c.want {
			t.Errorf("ResolveField(%q, %q) = %q, want %q", c.kind, c.container, got, c.want)
		}
	}
}

func TestPayloadIDs(t *testing.T) {
	p := payload{ID: []byte(`"abc"`)}
	ids, err := p.ids()
	if err != nil {
		t.Fatalf("single id: %v", err)
	}
	if len(ids) != 1 || ids[0] != "abc" {
		t.Fatalf("single id: got %v", ids)
	}

	p = payload{ID: []byte(`["a","b"]`)}
	ids, err = p.ids()
	if err != nil {
		t.Fatalf("id array: %v", err)
	}
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Fatalf("id array: got %v", ids)
	}

	p = payload{ID: []byte(`42`)}
	if _, err := p.ids(); err == nil {
		t.Fatal("numeric id: expected error")
	}
}

func doMove(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, "/common/move-items", strings.NewReader(body))
	rec := httptest.NewRecorder()
	MoveItems(rec, req, nil)
	return rec
}

func TestMoveItemsRejectsSameLocation(t *testing.T) {
	rec := doMove(t, `{
		"moveFrom": {"type": "lab", "id": "x1"},
		"moveTo":   {"type": "lab", "id": "x1"},
		"item":     {"type": "item", "id": "y1"}
	}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestMoveItemsRejectsSelfContainment(t *testing.T) {
	rec := doMove(t, `{
		"moveFrom": {"type": "lab", "id": "x1"},
		"moveTo":   {"type": "item", "id": "y1"},
		"item":     {"type": "item", "id": ["y1", "y2"]}
	}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestMoveItemsRejectsEmptyIDs(t *testing.T) {
	rec := doMove(t, `{
		"moveFrom": {"type": "lab", "id": "x1"},
		"moveTo":   {"type": "lab", "id": "x2"},
		"item":     {"type": "item", "id": []}
	}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestMoveItemsRejectsUnmappedPair(t *testing.T) {
	// components cannot live on an unknown container type
	rec := doMove(t, `{
		"moveFrom": {"type": "user", "id": "x1"},
		"moveTo":   {"type": "lab", "id": "x2"},
		"item":     {"type": "component", "id": "y1"}
	}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestMoveItemsRejectsMalformedBody(t *testing.T) {
	rec := doMove(t, `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
