package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"labstock/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

func signToken(t *testing.T, userID string, ttl time.Duration) string {
	t.Helper()
	claims := &Claims{
		UserID: userID,
		Email:  "test@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(config.JwtSecret)
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

func TestValidateJWTRoundTrip(t *testing.T) {
	token := signToken(t, "64a000000000000000000001", time.Hour)

	claims, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.UserID != "64a000000000000000000001" {
		t.Errorf("userID = %q", claims.UserID)
	}
	if claims.Email != "test@example.com" {
		t.Errorf("email = %q", claims.Email)
	}
}

func TestValidateJWTRejectsExpired(t *testing.T) {
	token := signToken(t, "64a000000000000000000001", -time.Minute)
	if _, err := ValidateJWT(token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := ValidateJWT(token); err == nil {
			t.Errorf("expected error for token %q", token)
		}
	}
}

func TestStripBearer(t *testing.T) {
	if got := StripBearer("Bearer abc123"); got != "abc123" {
		t.Errorf("got %q", got)
	}
	if got := StripBearer("abc123"); got != "abc123" {
		t.Errorf("bare token mangled: %q", got)
	}
}

func TestCookieToken(t *testing.T) {
	r := httptest.NewRequest("GET", "/common/profile", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "Bearer tok"})

	token, err := CookieToken(r)
	if err != nil {
		t.Fatalf("CookieToken: %v", err)
	}
	if token != "tok" {
		t.Errorf("token = %q", token)
	}

	r = httptest.NewRequest("GET", "/common/profile", nil)
	if _, err := CookieToken(r); err == nil {
		t.Fatal("expected error without cookie")
	}
}

func TestGuardRejectsMissingCookie(t *testing.T) {
	called := false
	handler := RequireUser(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		called = true
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("GET", "/common/profile", nil), nil)

	if called {
		t.Fatal("handler ran without a session cookie")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestGuardRejectsInvalidToken(t *testing.T) {
	handler := RequireAdmin(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler ran with an invalid token")
	})

	r := httptest.NewRequest("GET", "/admin/labs", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "Bearer garbage"})

	rec := httptest.NewRecorder()
	handler(rec, r, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
