package utils

import (
	"net/http"

	"labstock/globals"
	"labstock/models"
)

// UserFromRequest returns the user the auth middleware resolved, or nil on
// an unguarded route.
func UserFromRequest(r *http.Request) *models.User {
	u, ok := r.Context().Value(globals.UserKey).(*models.User)
	if !ok {
		return nil
	}
	return u
}
