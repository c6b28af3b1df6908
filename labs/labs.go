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

type labInput struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	Dept string `json:"dept"`
}

// CreateLab handles POST /admin/create-lab. The creating admin becomes the
// lab's first admin.
func CreateLab(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	admin := utils.UserFromRequest(r)

	var input labInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Name == "" || input.Type == "" || input.Dept == "" {
		utils.SendError(w, http.StatusBadRequest, "Lab name, type, and department are required.")
		return
	}

	now := time.Now()
	lab := models.Lab{
		Name:       input.Name,
		Type:       input.Type,
		Dept:       input.Dept,
		Admins:     []primitive.ObjectID{admin.ID},
		Staffs:     []primitive.ObjectID{},
		Items:      []primitive.ObjectID{},
		Components: []primitive.ObjectID{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	res, err := db.LabCollection.InsertOne(r.Context(), lab)
	if err != nil {
		log.Printf("lab insert failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error while creating lab.")
		return
	}
	lab.ID = res.InsertedID.(primitive.ObjectID)

	utils.SendSuccess(w, http.StatusOK, "Lab created Successful", lab)
}

// UpdateLab handles PUT /admin/update-lab (full update, id in body).
func UpdateLab(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input labInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Name == "" || input.Type == "" || input.Dept == "" {
		utils.SendError(w, http.StatusBadRequest, "Lab name, type, and department are required.")
		return
	}
	id, err := primitive.ObjectIDFromHex(input.ID)
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid lab id.")
		return
	}

	res := db.LabCollection.FindOneAndUpdate(r.Context(),
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"name": input.Name, "type": input.Type, "dept": input.Dept,
			"updatedAt": time.Now(),
		}},
	)
	if res.Err() != nil {
		if res.Err() == mongo.ErrNoDocuments {
			utils.SendError(w, http.StatusNotFound, "Lab not found.")
			return
		}
		log.Printf("lab update failed: %v", res.Err())
		utils.SendError(w, http.StatusInternalServerError, "Server error while updating lab.")
		return
	}

	utils.SendSuccess(w, http.StatusOK, "Lab updated successfully.", nil)
}

// UpdateLabByID handles PUT /admin/labs/:labId (partial update; omitted
// fields stay untouched).
func UpdateLabByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("labId"))
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid lab id.")
		return
	}

	var input labInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if input.Name != "" {
		update["name"] = input.Name
	}
	if input.Type != "" {
		update["type"] = input.Type
	}
	if input.Dept != "" {
		update["dept"] = input.Dept
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var lab models.Lab
	err = db.LabCollection.FindOneAndUpdate(r.Context(),
		bson.M{"_id": id}, bson.M{"$set": update}, opts).Decode(&lab)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.SendError(w, http.StatusNotFound, "Lab not found.")
			return
		}
		log.Printf("lab update failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error while updating lab.")
		return
	}

	utils.SendSuccess(w, http.StatusOK, "Lab updated successfully.", lab)
}

// GetLabs handles GET /admin/labs and GET /common/labs: paginated listing.
// An optional dept query narrows the result; empty or @all lists everything.
func GetLabs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	page, limit, skip := utils.ParsePagination(r, 10, 100)

	filter := bson.M{}
	if dept := r.URL.Query().Get("dept"); dept != "" && !utils.IsAllSentinel(dept) {
		filter["dept"] = dept
	}

	opts := options.Find().SetSkip(skip).SetLimit(limit)
	labs, err := utils.FindAndDecode[models.Lab](r.Context(), db.LabCollection, filter, opts)
	if err != nil {
		log.Printf("labs find failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error while retrieving labs.")
		return
	}

	total, err := db.LabCollection.CountDocuments(r.Context(), filter)
	if err != nil {
		log.Printf("labs count failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error while retrieving labs.")
		return
	}

	utils.SendSuccess(w, http.StatusOK, "Labs retrieved successfully.", utils.M{
		"labs":       labs,
		"pagination": utils.NewPagination(total, page, limit),
	})
}

// GetLab handles GET /admin/labs/:labId and GET /common/labs/:labId.
func GetLab(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("labId"))
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid lab id.")
		return
	}

	var lab models.Lab
	if err := db.LabCollection.FindOne(r.Context(), bson.M{"_id": id}).Decode(&lab); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.SendError(w, http.StatusNotFound, "Lab not found.")
			return
		}
		log.Printf("lab find failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error while retrieving lab.")
		return
	}

	// Expand member and item references the way the frontend consumes them.
	admins, _ := utils.FindAndDecode[models.UserSummary](r.Context(), db.UserCollection,
		bson.M{"_id": bson.M{"$in": lab.Admins}})
	staffs, _ := utils.FindAndDecode[models.UserSummary](r.Context(), db.UserCollection,
		bson.M{"_id": bson.M{"$in": lab.Staffs}})
	items, _ := utils.FindAndDecode[models.Item](r.Context(), db.ItemCollection,
		bson.M{"_id": bson.M{"$in": lab.Items}})
	components, _ := utils.FindAndDecode[models.Component](r.Context(), db.ComponentCollection,
		bson.M{"_id": bson.M{"$in": lab.Components}})

	utils.SendSuccess(w, http.StatusOK, "Lab details retrieved successfully.", utils.M{
		"id":         lab.ID,
		"name":       lab.Name,
		"type":       lab.Type,
		"dept":       lab.Dept,
		"admins":     admins,
		"staffs":     staffs,
		"items":      items,
		"components": components,
		"createdAt":  lab.CreatedAt,
		"updatedAt":  lab.UpdatedAt,
	})
}

// GetSingleLab handles GET /common/singleLab/:labId — slim shape only.
func GetSingleLab(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("labId"))
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid lab id.")
		return
	}

	var lab models.LabSummary
	if err := db.LabCollection.FindOne(r.Context(), bson.M{"_id": id}).Decode(&lab); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.SendError(w, http.StatusNotFound, "Lab not found.")
			return
		}
		utils.SendError(w, http.StatusInternalServerError, "Server error while retrieving lab.")
		return
	}

	utils.SendSuccess(w, http.StatusCreated, "found data", lab)
}

// DeleteLab handles DELETE /admin/labs/:labId. The lab is removed first,
// then detached from every user's lab set; a failed detach is surfaced so
// the stale references are not silent.
func DeleteLab(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("labId"))
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid lab id.")
		return
	}

	res := db.LabCollection.FindOneAndDelete(r.Context(), bson.M{"_id": id})
	if res.Err() != nil {
		if res.Err() == mongo.ErrNoDocuments {
			utils.SendError(w, http.StatusNotFound, "Lab not found.")
			return
		}
		log.Printf("lab delete failed: %v", res.Err())
		utils.SendError(w, http.StatusInternalServerError, "Server error while deleting lab.")
		return
	}

	if _, err := db.UserCollection.UpdateMany(r.Context(),
		bson.M{"labs": id}, bson.M{"$pull": bson.M{"labs": id}}); err != nil {
		log.Printf("lab %s deleted but user detach failed: %v", id.Hex(), err)
		utils.SendError(w, http.StatusInternalServerError,
			"Lab deleted, but removing it from user records failed.")
		return
	}

	utils.SendSuccess(w, http.StatusOK, "Lab deleted successfully.", utils.M{"labId": id})
}

// GetStaffLabs handles GET /common/staffLabs: the caller's own lab set,
// expanded.
func GetStaffLabs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user := utils.UserFromRequest(r)

	result, err := utils.FindAndDecode[models.Lab](r.Context(), db.LabCollection,
		bson.M{"_id": bson.M{"$in": user.Labs}})
	if err != nil {
		log.Printf("staff labs find failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error occurred")
		return
	}

	utils.SendSuccess(w, http.StatusOK, "Here is the search Result", result)
}

// CountLabs handles GET /common/countLabs.
func CountLabs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	total, err := db.LabCollection.CountDocuments(r.Context(), bson.M{})
	if err != nil {
		log.Printf("labs count failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error while counting labs.")
		return
	}
	utils.SendSuccess(w, http.StatusOK, "Count retrieved successfully.", utils.M{"total": total})
}
