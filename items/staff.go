package items

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"labstock/db"
	"labstock/logsvc"
	"labstock/models"
	"labstock/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MyLabItems handles GET /staff/myLabs: every item across the labs the
// caller is assigned to, paginated.
func MyLabItems(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user := utils.UserFromRequest(r)
	page, limit, skip := utils.ParsePagination(r, 10, 100)

	if len(user.Labs) == 0 {
		utils.SendSuccess(w, http.StatusOK, "Devices retrieved successfully.", utils.M{
			"items":      []models.Item{},
			"pagination": utils.NewPagination(0, page, limit),
		})
		return
	}

	filter := bson.M{"labId": bson.M{"$in": user.Labs}}
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.M{"updatedAt": -1})
	items, err := utils.FindAndDecode[models.Item](r.Context(), db.ItemCollection, filter, opts)
	if err != nil {
		log.Printf("staff lab items find failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error while retrieving devices.")
		return
	}

	total, err := db.ItemCollection.CountDocuments(r.Context(), filter)
	if err != nil {
		log.Printf("staff lab items count failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error while retrieving devices.")
		return
	}

	utils.SendSuccess(w, http.StatusOK, "Devices retrieved successfully.", utils.M{
		"items":      items,
		"pagination": utils.NewPagination(total, page, limit),
	})
}

type markStatusInput struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// UpdateMarkStatus handles PUT /staff/devices/:deviceId/update-mark-status.
// Staff may only mark devices inside their own labs; admins are unscoped.
func UpdateMarkStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	user := utils.UserFromRequest(r)

	id, err := primitive.ObjectIDFromHex(ps.ByName("deviceId"))
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid device id.")
		return
	}

	var input markStatusInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Status == "" {
		utils.SendError(w, http.StatusBadRequest, "Status is required.")
		return
	}
	status := logsvc.NormalizeStatus(input.Status)

	var item models.Item
	if err := db.ItemCollection.FindOne(r.Context(), bson.M{"_id": id}).Decode(&item); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.SendError(w, http.StatusNotFound, "Device not found.")
			return
		}
		utils.SendError(w, http.StatusInternalServerError, "Server error while updating device.")
		return
	}

	if !user.IsAdmin() && !user.InLab(item.LabID) {
		utils.SendError(w, http.StatusForbidden, "You can only update devices in your own labs.")
		return
	}

	_, err = db.ItemCollection.UpdateOne(r.Context(),
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"currentState": status, "updatedAt": time.Now()}})
	if err != nil {
		log.Printf("mark status update failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error while updating device.")
		return
	}

	utils.SendSuccess(w, http.StatusOK, "Device status updated successfully.", utils.M{
		"deviceId":     id,
		"currentState": status,
	})

	message := input.Message
	if message == "" {
		message = fmt.Sprintf("Device marked as %s", status)
	}
	go logsvc.Append(models.Log{
		ItemID:    id,
		ItemType:  "item",
		Scope:     models.ScopeWhole,
		Operation: status,
		Message:   message,
		UserID:    user.ID,
	})
}
