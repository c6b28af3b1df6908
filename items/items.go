package items

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"labstock/db"
	"labstock/models"
	"labstock/trash"
	"labstock/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type deviceInput struct {
	Name       string `json:"name"`
	Category   string `json:"category"`
	LabID      string `json:"labId"`
	TemplateID string `json:"templateId"`
}

// CreateDevice handles POST /admin/devices. The new item is attached to its
// lab's items array with a second, set-union write.
func CreateDevice(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	admin := utils.UserFromRequest(r)

	var input deviceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Name == "" || input.Category == "" || input.LabID == "" {
		utils.SendError(w, http.StatusBadRequest, "Device name, category, and lab are required.")
		return
	}

	labID, err := primitive.ObjectIDFromHex(input.LabID)
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid lab id.")
		return
	}

	now := time.Now()
	item := models.Item{
		Name:          input.Name,
		Category:      input.Category,
		LabID:         labID,
		ComponentList: []primitive.ObjectID{},
		DeviceList:    []primitive.ObjectID{},
		CurrentState:  models.StateWorking,
		CreatedBy:     admin.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if input.TemplateID != "" {
		tid, err := primitive.ObjectIDFromHex(input.TemplateID)
		if err != nil {
			utils.SendError(w, http.StatusBadRequest, "Invalid template id.")
			return
		}
		item.TemplateID = &tid
	}

	res, err := db.ItemCollection.InsertOne(r.Context(), item)
	if err != nil {
		log.Printf("device insert failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error while creating device.")
		return
	}
	item.ID = res.InsertedID.(primitive.ObjectID)

	if _, err := db.LabCollection.UpdateOne(r.Context(),
		bson.M{"_id": labID},
		bson.M{"$addToSet": bson.M{"items": item.ID}}); err != nil {
		log.Printf("device %s created but lab attach failed: %v", item.ID.Hex(), err)
		utils.SendError(w, http.StatusInternalServerError,
			"Device created, but attaching it to the lab failed.")
		return
	}

	utils.SendSuccess(w, http.StatusCreated, "Device created successfully.", utils.M{
		"deviceId": item.ID,
		"name":     item.Name,
		"category": item.Category,
		"status":   item.CurrentState,
	})
}

// GetDevices handles GET /admin/devices: paginated listing.
func GetDevices(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	page, limit, skip := utils.ParsePagination(r, 10, 100)

	opts := options.Find().SetSkip(skip).SetLimit(limit)
	items, err := utils.FindAndDecode[models.Item](r.Context(), db.ItemCollection, bson.M{}, opts)
	if err != nil {
		log.Printf("devices find failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error while retrieving devices.")
		return
	}

	total, err := db.ItemCollection.CountDocuments(r.Context(), bson.M{})
	if err != nil {
		log.Printf("devices count failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error while retrieving devices.")
		return
	}

	utils.SendSuccess(w, http.StatusOK, "Devices retrieved successfully.", utils.M{
		"items":      items,
		"pagination": utils.NewPagination(total, page, limit),
	})
}

// GetDevice handles GET /admin/devices/:deviceId.
func GetDevice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("deviceId"))
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid device id.")
		return
	}

	var item models.Item
	if err := db.ItemCollection.FindOne(r.Context(), bson.M{"_id": id}).Decode(&item); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.SendError(w, http.StatusNotFound, "Device not found.")
			return
		}
		log.Printf("device find failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error while retrieving device.")
		return
	}

	utils.SendSuccess(w, http.StatusOK, "Device details retrieved successfully.", item)
}

// UpdateDevice handles PUT /admin/devices/:deviceId — partial update.
func UpdateDevice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("deviceId"))
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid device id.")
		return
	}

	var input deviceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if input.Name != "" {
		update["name"] = input.Name
	}
	if input.Category != "" {
		update["category"] = input.Category
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var item models.Item
	err = db.ItemCollection.FindOneAndUpdate(r.Context(),
		bson.M{"_id": id}, bson.M{"$set": update}, opts).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.SendError(w, http.StatusNotFound, "Device not found.")
			return
		}
		log.Printf("device update failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error while updating device.")
		return
	}

	utils.SendSuccess(w, http.StatusOK, "Device updated successfully.", item)
}

// DeleteDevice handles DELETE /admin/devices/:deviceId. Detaches the item
// from its lab; with ?trash=true the reference is parked in the trash
// container instead of vanishing.
func DeleteDevice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("deviceId"))
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid device id.")
		return
	}

	var item models.Item
	if err := db.ItemCollection.FindOneAndDelete(r.Context(), bson.M{"_id": id}).Decode(&item); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.SendError(w, http.StatusNotFound, "Device not found.")
			return
		}
		log.Printf("device delete failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error while deleting device.")
		return
	}

	if !item.LabID.IsZero() {
		if _, err := db.LabCollection.UpdateOne(r.Context(),
			bson.M{"_id": item.LabID},
			bson.M{"$pull": bson.M{"items": id}}); err != nil {
			log.Printf("device %s deleted but lab detach failed: %v", id.Hex(), err)
			utils.SendError(w, http.StatusInternalServerError,
				"Device deleted, but detaching it from the lab failed.")
			return
		}
	}

	if r.URL.Query().Get("trash") == "true" {
		if err := trash.ParkItem(r.Context(), id); err != nil {
			log.Printf("device %s deleted but trash park failed: %v", id.Hex(), err)
		}
	}

	utils.SendSuccess(w, http.StatusOK, "Device deleted successfully.", utils.M{"deviceId": id})
}

// GetItemSummary handles GET /common/items/:itemId — slim shape.
func GetItemSummary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("itemId"))
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid item id.")
		return
	}

	var item models.ItemSummary
	if err := db.ItemCollection.FindOne(r.Context(), bson.M{"_id": id}).Decode(&item); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.SendError(w, http.StatusNotFound, "Device not found.")
			return
		}
		utils.SendError(w, http.StatusInternalServerError, "Server error while retrieving device.")
		return
	}

	utils.SendSuccess(w, http.StatusCreated, "found data", item)
}

// CountItems handles GET /common/countItems?currentState=<state|all>.
func CountItems(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := bson.M{}
	if state := r.URL.Query().Get("currentState"); state != "" && state != "all" {
		filter["currentState"] = state
	}

	total, err := db.ItemCollection.CountDocuments(r.Context(), filter)
	if err != nil {
		log.Printf("items count failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error while counting devices.")
		return
	}
	utils.SendSuccess(w, http.StatusOK, "Count retrieved successfully.", utils.M{"total": total})
}
