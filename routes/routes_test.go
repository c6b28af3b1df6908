package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"labstock/live"

	"github.com/julienschmidt/httprouter"
)

func testRouter() *httprouter.Router {
	router := httprouter.New()
	AddRootRoutes(router)
	AddCommonRoutes(router, live.NewHub())
	AddAdminRoutes(router)
	AddStaffRoutes(router)
	return router
}

func TestLabSearchRequiresSession(t *testing.T) {
	router := testRouter()

	for _, path := range []string{"/common/searchLab", "/common/searchLabToInsert"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s without session: status = %d, want 401", path, rec.Code)
		}
	}
}

func TestGuardedRoutesRejectAnonymous(t *testing.T) {
	router := testRouter()

	cases := []struct{ method, path string }{
		{http.MethodGet, "/common/profile"},
		{http.MethodGet, "/admin/labs"},
		{http.MethodGet, "/staff/myLabs"},
		{http.MethodPut, "/common/move-items"},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(c.method, c.path, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without session: status = %d, want 401", c.method, c.path, rec.Code)
		}
	}
}

func TestNotFoundEnvelope(t *testing.T) {
	router := testRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/no/such/path", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"success":false`) || !strings.Contains(body, "API Path not found") {
		t.Errorf("unexpected body %s", body)
	}
}
