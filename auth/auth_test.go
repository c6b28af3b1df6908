package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"labstock/middleware"
	"labstock/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newRecorder() *httptest.ResponseRecorder { return httptest.NewRecorder() }

func testUser() *models.User {
	return &models.User{
		ID:           primitive.NewObjectID(),
		Name:         "Test User",
		EmailAddress: "test@example.com",
		Role:         models.RoleUser,
	}
}

func TestHashAndComparePassword(t *testing.T) {
	hashed, err := hashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("hashPassword: %v", err)
	}
	if hashed == "s3cret-pass" {
		t.Fatal("password stored in plain text")
	}
	if !comparePassword("s3cret-pass", hashed) {
		t.Fatal("correct password rejected")
	}
	if comparePassword("wrong-pass", hashed) {
		t.Fatal("wrong password accepted")
	}
}

func TestSessionCookieAttributes(t *testing.T) {
	c := sessionCookie("tok123", rememberCookieTTL)

	if c.Name != middleware.SessionCookie {
		t.Errorf("name = %q", c.Name)
	}
	if c.Value != "Bearer tok123" {
		t.Errorf("value = %q, want Bearer prefix", c.Value)
	}
	if !c.HttpOnly {
		t.Error("cookie must be HttpOnly")
	}
	if c.Path != "/" {
		t.Errorf("path = %q", c.Path)
	}
	if c.Expires.IsZero() {
		t.Error("expected an expiry on a remembered session cookie")
	}
	if !c.Expires.After(time.Now().Add(rememberCookieTTL - time.Minute)) {
		t.Errorf("expiry %v shorter than the remember window", c.Expires)
	}
}

func TestClearSessionCookieExpires(t *testing.T) {
	rec := newRecorder()
	clearSessionCookie(rec)

	cookies := (&http.Response{Header: rec.Header()}).Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != middleware.SessionCookie {
		t.Errorf("name = %q", c.Name)
	}
	if c.MaxAge >= 0 && c.Value != "" {
		t.Error("clearing cookie should empty the value or set a negative MaxAge")
	}
}

func TestGenerateTokenCarriesClaims(t *testing.T) {
	user := testUser()
	token, err := generateToken(user, time.Hour)
	if err != nil {
		t.Fatalf("generateToken: %v", err)
	}

	claims, err := middleware.ValidateJWT(token)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.UserID != user.ID.Hex() {
		t.Errorf("userID = %q, want %q", claims.UserID, user.ID.Hex())
	}
	if claims.Email != user.EmailAddress {
		t.Errorf("email = %q", claims.Email)
	}
}

func TestGenerateTokenExpiry(t *testing.T) {
	token, err := generateToken(testUser(), -time.Minute)
	if err != nil {
		t.Fatalf("generateToken: %v", err)
	}
	if _, err := middleware.ValidateJWT(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}
