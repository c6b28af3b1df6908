package users

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"labstock/db"
	"labstock/models"
	"labstock/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// GetProfile handles GET /common/profile.
func GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user := utils.UserFromRequest(r)
	utils.SendSuccess(w, http.StatusOK, "Profile retrieved successfully.", user)
}

type profileInput struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdateProfile handles PUT /common/profile — partial update of the
// caller's own name, phone, and address.
func UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user := utils.UserFromRequest(r)

	var input profileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if input.Name != "" {
		update["name"] = input.Name
	}
	if input.Phone != "" {
		update["phone"] = input.Phone
	}
	if input.Address != "" {
		update["address"] = input.Address
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.User
	err := db.UserCollection.FindOneAndUpdate(r.Context(),
		bson.M{"_id": user.ID}, bson.M{"$set": update}, opts).Decode(&updated)
	if err != nil {
		log.Printf("profile update failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error while updating profile.")
		return
	}

	utils.SendSuccess(w, http.StatusOK, "Profile updated successfully.", updated)
}

type passwordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ChangePassword handles PUT /common/change-password. The current password
// must verify, and the new one must be confirmed and at least 6 characters.
func ChangePassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user := utils.UserFromRequest(r)

	var input passwordInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.CurrentPassword == "" || input.NewPassword == "" {
		utils.SendError(w, http.StatusBadRequest, "Current and new passwords are required.")
		return
	}
	if input.NewPassword != input.ConfirmPassword {
		utils.SendError(w, http.StatusBadRequest, "New password and confirmation do not match.")
		return
	}
	if len(input.NewPassword) < 6 {
		utils.SendError(w, http.StatusBadRequest, "Password must be at least 6 characters.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.CurrentPassword)); err != nil {
		utils.SendError(w, http.StatusUnauthorized, "Current password is incorrect.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("password hash failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error while changing password.")
		return
	}

	_, err = db.UserCollection.UpdateOne(r.Context(),
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"password": string(hashed), "updatedAt": time.Now()}})
	if err != nil {
		log.Printf("password update failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error while changing password.")
		return
	}

	utils.SendSuccess(w, http.StatusOK, "Password changed successfully.", nil)
}

// GetUserSummary handles GET /common/user/:userId — slim shape.
func GetUserSummary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("userId"))
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid user id.")
		return
	}

	var user models.UserSummary
	if err := db.UserCollection.FindOne(r.Context(), bson.M{"_id": id}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.SendError(w, http.StatusNotFound, "User not found.")
			return
		}
		utils.SendError(w, http.StatusInternalServerError, "Server error while retrieving user.")
		return
	}

	utils.SendSuccess(w, http.StatusCreated, "found data", user)
}

// CountUsers handles GET /common/countUsers?role=<role|all>.
func CountUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := bson.M{}
	if role := r.URL.Query().Get("role"); role != "" && role != "all" {
		filter["role"] = role
	}

	total, err := db.UserCollection.CountDocuments(r.Context(), filter)
	if err != nil {
		log.Printf("users count failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error while counting users.")
		return
	}
	utils.SendSuccess(w, http.StatusOK, "Count retrieved successfully.", utils.M{"total": total})
}
