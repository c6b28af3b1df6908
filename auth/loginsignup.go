package auth

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"labstock/db"
	"labstock/middleware"
	"labstock/models"
	"labstock/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type loginInput struct {
	EmailAddress string `json:"email_address"`
	Password     string `json:"password"`
	Remember     bool   `json:"remember"`
}

type registerInput struct {
	Name         string `json:"name"`
	EmailAddress string `json:"email_address"`
	Password     string `json:"password"`
	Terms        bool   `json:"terms"`
}

// userEnvelope is the identity block login/register hand back to the client.
func userEnvelope(u *models.User) utils.M {
	return utils.M{
		"name":          u.Name,
		"email_address": u.EmailAddress,
		"role":          u.Role,
	}
}

// Login handles PUT /auth/login.
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input loginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.EmailAddress == "" || input.Password == "" {
		utils.SendError(w, http.StatusBadRequest, "Email and password are required.")
		return
	}

	var user models.User
	err := db.UserCollection.FindOne(r.Context(), bson.M{"email_address": input.EmailAddress}).Decode(&user)
	if err != nil {
		utils.SendError(w, http.StatusUnauthorized, "Invalid email or password.")
		return
	}

	if !comparePassword(input.Password, user.Password) {
		utils.SendError(w, http.StatusUnauthorized, "Invalid email or password.")
		return
	}

	tokenTTL, cookieTTL := shortTokenTTL, shortCookieTTL
	if input.Remember {
		tokenTTL, cookieTTL = rememberTokenTTL, rememberCookieTTL
	}

	token, err := generateToken(&user, tokenTTL)
	if err != nil {
		log.Printf("token generation failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error during login.")
		return
	}

	if err := storeToken(r.Context(), &user, token); err != nil {
		log.Printf("token store failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error during login.")
		return
	}

	http.SetCookie(w, sessionCookie(token, cookieTTL))
	utils.SendSuccess(w, http.StatusOK, "Operation Successful", userEnvelope(&user))
}

// Register handles POST /auth/register.
func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input registerInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Name == "" || input.EmailAddress == "" || input.Password == "" {
		utils.SendError(w, http.StatusBadRequest, "All fields are required.")
		return
	}

	err := db.UserCollection.FindOne(r.Context(), bson.M{"email_address": input.EmailAddress}).Err()
	if err == nil {
		utils.SendError(w, http.StatusConflict, "Email address already registered.")
		return
	} else if err != mongo.ErrNoDocuments {
		log.Printf("register lookup failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error during registration.")
		return
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		log.Printf("password hash failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error during registration.")
		return
	}

	now := time.Now()
	user := models.User{
		Name:         input.Name,
		EmailAddress: input.EmailAddress,
		Password:     hashed,
		Terms:        input.Terms,
		Role:         models.RoleUser,
		Labs:         []primitive.ObjectID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	res, err := db.UserCollection.InsertOne(r.Context(), user)
	if err != nil {
		if db.IsDup(err) {
			utils.SendError(w, http.StatusConflict, "Email address already registered.")
			return
		}
		log.Printf("register insert failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error during registration.")
		return
	}
	user.ID = res.InsertedID.(primitive.ObjectID)

	token, err := generateToken(&user, rememberTokenTTL)
	if err != nil {
		log.Printf("token generation failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error during registration.")
		return
	}
	if err := storeToken(r.Context(), &user, token); err != nil {
		log.Printf("token store failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error during registration.")
		return
	}

	http.SetCookie(w, sessionCookie(token, rememberCookieTTL))
	utils.SendSuccess(w, http.StatusOK, "Operation Successful", userEnvelope(&user))
}

// Logout handles DELETE /auth/logout. Deletes the presented token and
// clears the cookie.
func Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	token, err := middleware.CookieToken(r)
	if err != nil || token == "" {
		utils.SendError(w, http.StatusBadRequest, "Token required.")
		return
	}

	if err := deleteToken(r.Context(), token); err != nil {
		log.Printf("logout token delete failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error while Logging out.")
		return
	}

	clearSessionCookie(w)
	utils.SendSuccess(w, http.StatusOK, "Operation Successful", nil)
}
