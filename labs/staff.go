package labs

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
)

type staffInput struct {
	LabID   string `json:"labId"`
	StaffID string `json:"staffId"`
}

func findUser(w http.ResponseWriter, r *http.Request, rawID string) (*models.User, bool) {
	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid user id.")
		return nil, false
	}
	var user models.User
	if err := db.UserCollection.FindOne(r.Context(), bson.M{"_id": id}).Decode(&user); err != nil {
		utils.SendError(w, http.StatusNotFound, "No User Found")
		return nil, false
	}
	return &user, true
}

// MakeStaff handles PUT /admin/makeStaff: promotes a plain user to staff.
// Refused when the target already holds staff or admin role.
func MakeStaff(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input staffInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	target, ok := findUser(w, r, input.StaffID)
	if !ok {
		return
	}
	if target.IsStaff() || target.IsAdmin() {
		utils.SendError(w, http.StatusUnauthorized, "The user is already "+target.Role)
		return
	}

	res := db.UserCollection.FindOneAndUpdate(r.Context(),
		bson.M{"_id": target.ID},
		bson.M{"$set": bson.M{"role": models.RoleStaff, "updatedAt": time.Now()}},
	)
	if res.Err() != nil {
		log.Printf("promote failed: %v", res.Err())
		utils.SendError(w, http.StatusNotFound, "Some Error happened")
		return
	}

	utils.SendSuccess(w, http.StatusCreated, "Staff added to lab successfully.", models.UserSummary{
		ID: target.ID, Name: target.Name, EmailAddress: target.EmailAddress, Role: models.RoleStaff,
	})
}

// DemoteStaff handles PUT /admin/removeStaffRole: staff back to plain user.
// Admins cannot be demoted; non-staff targets are refused. The demotion
// clears the user's lab set and pulls them out of every lab's staff array —
// two sequential writes with no transaction, so a failure on the second is
// surfaced rather than swallowed.
func DemoteStaff(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input staffInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	target, ok := findUser(w, r, input.StaffID)
	if !ok {
		return
	}
	if target.IsAdmin() {
		utils.SendError(w, http.StatusForbidden, "Admins cannot be demoted.")
		return
	}
	if !target.IsStaff() {
		utils.SendError(w, http.StatusBadRequest, "The user is not a staff member.")
		return
	}

	res := db.UserCollection.FindOneAndUpdate(r.Context(),
		bson.M{"_id": target.ID},
		bson.M{"$set": bson.M{
			"role": models.RoleUser, "labs": []primitive.ObjectID{}, "updatedAt": time.Now(),
		}},
	)
	if res.Err() != nil {
		log.Printf("demote failed: %v", res.Err())
		utils.SendError(w, http.StatusInternalServerError, "Server error while removing staff role.")
		return
	}

	if _, err := db.LabCollection.UpdateMany(r.Context(),
		bson.M{"staffs": target.ID},
		bson.M{"$pull": bson.M{"staffs": target.ID}}); err != nil {
		log.Printf("demoted %s but lab staff detach failed: %v", target.ID.Hex(), err)
		utils.SendError(w, http.StatusInternalServerError,
			"Role removed, but detaching the user from lab staff lists failed.")
		return
	}

	utils.SendSuccess(w, http.StatusOK, "Staff role removed successfully.", nil)
}

// AssignStaff handles PUT /admin/assignStaff: adds a staff user to a lab.
// Set-union on both sides; adding an already-present staff is a no-op
// reported as a failure to add (matches the guarded findOneAndUpdate).
func AssignStaff(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input staffInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	target, ok := findUser(w, r, input.StaffID)
	if !ok {
		return
	}
	if !target.IsStaff() {
		utils.SendError(w, http.StatusForbidden, "user-not-staff")
		return
	}

	labID, err := primitive.ObjectIDFromHex(input.LabID)
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid lab id.")
		return
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var lab models.Lab
	err = db.LabCollection.FindOneAndUpdate(r.Context(),
		bson.M{"_id": labID, "staffs": bson.M{"$ne": target.ID}},
		bson.M{"$addToSet": bson.M{"staffs": target.ID}},
		opts,
	).Decode(&lab)
	if err != nil {
		utils.SendError(w, http.StatusNotFound, "Failed to Add Staff")
		return
	}

	// Mirror write on the user's lab set. Partial failure leaves the lab
	// updated; report it so someone can repair the relation.
	if _, err := db.UserCollection.UpdateOne(r.Context(),
		bson.M{"_id": target.ID},
		bson.M{"$addToSet": bson.M{"labs": labID}}); err != nil {
		log.Printf("staff %s added to lab %s but user lab set update failed: %v",
			target.ID.Hex(), labID.Hex(), err)
		utils.SendError(w, http.StatusInternalServerError,
			"Staff added to lab, but updating the user's lab list failed.")
		return
	}

	utils.SendSuccess(w, http.StatusCreated, "Staff added to lab successfully.", utils.M{
		"labId":       lab.ID,
		"staffAdded":  target.Name,
		"totalStaffs": len(lab.Staffs),
	})
}

// RemoveStaff handles PUT /admin/removeStaff: the symmetric removal.
func RemoveStaff(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input staffInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	removeStaffFromLab(w, r, input.LabID, input.StaffID)
}

// RemoveStaffFromLab handles DELETE /admin/labs/:labId/staffs/:staffId.
func RemoveStaffFromLab(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	removeStaffFromLab(w, r, ps.ByName("labId"), ps.ByName("staffId"))
}

func removeStaffFromLab(w http.ResponseWriter, r *http.Request, rawLabID, rawStaffID string) {
	labID, err := primitive.ObjectIDFromHex(rawLabID)
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid lab id.")
		return
	}
	staffID, err := primitive.ObjectIDFromHex(rawStaffID)
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid user id.")
		return
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var lab models.Lab
	err = db.LabCollection.FindOneAndUpdate(r.Context(),
		bson.M{"_id": labID},
		bson.M{"$pull": bson.M{"staffs": staffID}},
		opts,
	).Decode(&lab)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.SendError(w, http.StatusNotFound, "Failed to Remove Staff")
			return
		}
		log.Printf("staff removal failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error while removing staff.")
		return
	}

	if _, err := db.UserCollection.UpdateOne(r.Context(),
		bson.M{"_id": staffID},
		bson.M{"$pull": bson.M{"labs": labID}}); err != nil {
		log.Printf("staff %s removed from lab %s but user lab set update failed: %v",
			staffID.Hex(), labID.Hex(), err)
		utils.SendError(w, http.StatusInternalServerError,
			"Staff removed from lab, but updating the user's lab list failed.")
		return
	}

	utils.SendSuccess(w, http.StatusOK, "Staff Removed from lab successfully.", utils.M{
		"labId":        lab.ID,
		"staffRemoved": staffID,
		"totalStaffs":  len(lab.Staffs),
	})
}
