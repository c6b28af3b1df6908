package logsvc

import (
	"bytes"
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"labstock/models"
)

func TestNormalizeStatus(t *testing.T) {
	cases := []struct{ in, want string }{
		{models.StateWorking, models.StateWorking},
		{models.StateBroken, models.StateBroken},
		{models.StateUnderMaintenance, models.StateUnderMaintenance},
		{"repaired", models.StateWorking},
		{"exploded", models.StateWorking},
		{"", models.StateWorking},
		{"WORKING", models.StateWorking},
	}
	for _, c := range cases {
		if got := NormalizeStatus(c.in); got != c.want {
			t.Errorf("NormalizeStatus(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestUpdateStateLogRejectsBadID(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, "/common/updateStateLog",
		strings.NewReader(`{"status":"broken","itemId":"not-hex","itemType":"item"}`))
	rec := httptest.NewRecorder()

	UpdateStateLog(rec, req, nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestUpdateStateLogStoreFailureIsNot404(t *testing.T) {
	// a dead request context makes the write fail before matching anything;
	// that must surface as a server error, not as a missing device
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := httptest.NewRequest(http.MethodPut, "/common/updateStateLog",
		strings.NewReader(`{"status":"broken","itemId":"64a000000000000000000001","itemType":"item"}`)).WithContext(ctx)
	rec := httptest.NewRecorder()

	UpdateStateLog(rec, req, nil)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestWriteCSV(t *testing.T) {
	rows := []exportRow{
		{ID: "1", Item: "Oscilloscope", Operation: "broken", Scope: "whole",
			Message: "display dead", User: "Priya", Date: "2026-01-05"},
		{ID: "2", Item: "N/A", Operation: "moved", Scope: "",
			Message: "", User: "N/A", Date: "2026-01-06"},
	}

	var buf bytes.Buffer
	if err := WriteCSV(csv.NewWriter(&buf), rows); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "ID,Item,Operation,Type,Message,User,Date" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "Oscilloscope") || !strings.Contains(lines[1], "display dead") {
		t.Errorf("row 1 = %q", lines[1])
	}
}
