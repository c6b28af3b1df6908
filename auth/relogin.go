package auth

import (
	"encoding/json"
	"net/http"

	"labstock/db"
	"labstock/middleware"
	"labstock/models"
	"labstock/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// resumeSession validates a raw token against its signature, the token
// store, and the user record. On any failure the session cookie is cleared
// and a success=false envelope goes back with a 200, which is what the
// frontend's silent re-login flow expects.
func resumeSession(w http.ResponseWriter, r *http.Request, token string, failMsg string) (*models.User, bool) {
	claims, err := middleware.ValidateJWT(token)
	if err != nil {
		clearSessionCookie(w)
		utils.RespondWithJSON(w, http.StatusOK, utils.M{
			"success": false, "message": failMsg, "data": utils.M{},
		})
		return nil, false
	}

	if !tokenPersisted(r.Context(), token) {
		clearSessionCookie(w)
		utils.RespondWithJSON(w, http.StatusOK, utils.M{
			"success": false, "message": failMsg, "data": utils.M{},
		})
		return nil, false
	}

	uid, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		clearSessionCookie(w)
		utils.RespondWithJSON(w, http.StatusOK, utils.M{
			"success": false, "message": failMsg, "data": utils.M{},
		})
		return nil, false
	}

	var user models.User
	if err := db.UserCollection.FindOne(r.Context(), bson.M{"_id": uid}).Decode(&user); err != nil {
		clearSessionCookie(w)
		utils.RespondWithJSON(w, http.StatusOK, utils.M{
			"success": false, "message": failMsg, "data": utils.M{},
		})
		return nil, false
	}
	return &user, true
}

// LoginWithCookie handles PUT /auth/login_with_cookie.
func LoginWithCookie(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	token, err := middleware.CookieToken(r)
	if err != nil || token == "" {
		utils.SendError(w, http.StatusBadRequest, "Token required.")
		return
	}

	user, ok := resumeSession(w, r, token, "Operation Failed")
	if !ok {
		return
	}
	utils.SendSuccess(w, http.StatusOK, "Token valid.", utils.M{
		"name":  user.Name,
		"email": user.EmailAddress,
		"role":  user.Role,
	})
}

// LoginWithToken handles PUT /auth/login_with_token. Same flow, but the
// token travels in the body instead of the cookie.
func LoginWithToken(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Token == "" {
		utils.SendError(w, http.StatusBadRequest, "Token required.")
		return
	}

	user, ok := resumeSession(w, r, middleware.StripBearer(input.Token), "Token verification failure")
	if !ok {
		return
	}
	utils.SendSuccess(w, http.StatusOK, "Token valid.", user)
}
