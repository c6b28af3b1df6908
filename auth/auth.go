package auth

import (
	"context"
	"log"
	"net/http"
	"time"

	"labstock/config"
	"labstock/db"
	"labstock/middleware"
	"labstock/models"
	"labstock/rdx"
	"labstock/utils"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

const (
	rememberTokenTTL = 7 * 24 * time.Hour
	shortTokenTTL    = time.Hour

	rememberCookieTTL = 7 * 24 * time.Hour
	shortCookieTTL    = 12 * time.Hour

	sessionKeyPrefix = "session:"
)

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hashed), err
}

func comparePassword(password, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}

// generateToken signs an HS256 JWT carrying the user id and email.
func generateToken(user *models.User, ttl time.Duration) (string, error) {
	claims := &middleware.Claims{
		UserID: user.ID.Hex(),
		Email:  user.EmailAddress,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JwtSecret)
}

// revokeSessions drops the redis mirror entries for the given tokens.
// Without this a token removed from Mongo would keep passing the cache
// check until its TTL ran out.
func revokeSessions(tokens []models.Token) {
	for _, t := range tokens {
		rdx.RdxDel(sessionKeyPrefix + t.Token)
	}
}

// storeToken replaces every prior token for the user with the new one.
// Single active session: concurrent logins invalidate each other, in the
// cache as well as in Mongo.
func storeToken(ctx context.Context, user *models.User, token string) error {
	prior, err := utils.FindAndDecode[models.Token](ctx, db.TokenCollection, bson.M{"user": user.ID})
	if err != nil {
		return err
	}
	revokeSessions(prior)

	if _, err := db.TokenCollection.DeleteMany(ctx, bson.M{"user": user.ID}); err != nil {
		return err
	}
	if _, err := db.TokenCollection.InsertOne(ctx, models.Token{
		User:      user.ID,
		Token:     token,
		CreatedAt: time.Now(),
	}); err != nil {
		return err
	}
	// best-effort cache; Mongo stays the source of truth
	if cerr := rdx.SetWithExpiry(sessionKeyPrefix+token, user.ID.Hex(), models.TokenTTL); cerr != nil {
		log.Printf("session cache write failed: %v", cerr)
	}
	return nil
}

// tokenPersisted checks the cache first, then Mongo.
func tokenPersisted(ctx context.Context, token string) bool {
	if _, err := rdx.RdxGet(sessionKeyPrefix + token); err == nil {
		return true
	}
	err := db.TokenCollection.FindOne(ctx, bson.M{"token": token}).Err()
	return err == nil
}

func deleteToken(ctx context.Context, token string) error {
	rdx.RdxDel(sessionKeyPrefix + token)
	_, err := db.TokenCollection.DeleteMany(ctx, bson.M{"token": token})
	return err
}

// cookieOptions mirrors the frontend contract: HttpOnly always, Secure and
// SameSite=None only behind TLS in production.
func sessionCookie(token string, maxAge time.Duration) *http.Cookie {
	c := &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "Bearer " + token,
		Path:     "/",
		Domain:   config.CookieDomain,
		HttpOnly: true,
		Secure:   config.ProdMode,
		SameSite: http.SameSiteLaxMode,
	}
	if config.ProdMode {
		c.SameSite = http.SameSiteNoneMode
	}
	if maxAge > 0 {
		c.Expires = time.Now().Add(maxAge)
	}
	return c
}

func clearSessionCookie(w http.ResponseWriter) {
	c := sessionCookie("", 0)
	c.Value = ""
	c.MaxAge = -1
	http.SetCookie(w, c)
}
