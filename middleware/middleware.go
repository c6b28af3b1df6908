package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"labstock/config"
	"labstock/db"
	"labstock/globals"
	"labstock/models"
	"labstock/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionCookie carries the session token as "Bearer <jwt>".
const SessionCookie = "access_token"

// JWT claims
type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// CookieToken extracts the raw token from the session cookie, stripping the
// "Bearer " prefix.
func CookieToken(r *http.Request) (string, error) {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return "", err
	}
	return StripBearer(c.Value), nil
}

func StripBearer(token string) string {
	return strings.TrimPrefix(token, "Bearer ")
}

// ValidateJWT checks signature and expiry. It never panics; an invalid or
// expired token yields an error.
func ValidateJWT(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("invalid token")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return config.JwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}
	return claims, nil
}

// resolveUser runs the shared guard core: cookie token, JWT verification,
// then a user lookup with the disabled check. Writes the 401 itself on
// failure and returns nil.
func resolveUser(w http.ResponseWriter, r *http.Request) *models.User {
	token, err := CookieToken(r)
	if err != nil || token == "" {
		utils.SendError(w, http.StatusUnauthorized, "Token required. Please login first.")
		return nil
	}

	claims, err := ValidateJWT(token)
	if err != nil {
		utils.SendError(w, http.StatusUnauthorized, "Invalid or expired token.")
		return nil
	}

	uid, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		utils.SendError(w, http.StatusUnauthorized, "Invalid or expired token.")
		return nil
	}

	var user models.User
	if err := db.UserCollection.FindOne(r.Context(), bson.M{"_id": uid}).Decode(&user); err != nil || user.Disabled {
		utils.SendError(w, http.StatusUnauthorized, "User not found or disabled.")
		return nil
	}
	return &user
}

// withUser is the single parameterized guard: the three exported variants
// differ only in the role predicate and the 403 message.
func withUser(next httprouter.Handle, allowed func(*models.User) bool, denyMsg string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		user := resolveUser(w, r)
		if user == nil {
			return
		}
		if allowed != nil && !allowed(user) {
			utils.SendError(w, http.StatusForbidden, denyMsg)
			return
		}
		ctx := context.WithValue(r.Context(), globals.UserKey, user)
		next(w, r.WithContext(ctx), ps)
	}
}

// RequireUser admits any registered, non-disabled user.
func RequireUser(next httprouter.Handle) httprouter.Handle {
	return withUser(next, nil, "")
}

// RequireStaff admits staff and admins.
func RequireStaff(next httprouter.Handle) httprouter.Handle {
	return withUser(next, func(u *models.User) bool {
		return u.IsStaff() || u.IsAdmin()
	}, "Access denied. Staff or Admin privileges required.")
}

// RequireAdmin admits admins only.
func RequireAdmin(next httprouter.Handle) httprouter.Handle {
	return withUser(next, (*models.User).IsAdmin, "Access denied. Admin privileges required.")
}
