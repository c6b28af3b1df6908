package logsvc

import (
	"encoding/json"
	"fmt"
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
)

// componentStatuses is the set accepted for generic state updates. Anything
// else is coerced to working rather than rejected; the frontend has relied
// on that leniency since the first release.
var componentStatuses = []string{
	models.StateWorking,
	models.StateBroken,
	models.StateUnderMaintenance,
}

// NormalizeStatus coerces unknown status values to the default.
func NormalizeStatus(status string) string {
	for _, s := range componentStatuses {
		if s == status {
			return s
		}
	}
	return models.StateWorking
}

type stateUpdateInput struct {
	Status   string `json:"status"`
	ItemID   string `json:"itemId"`
	ItemType string `json:"itemType"`
	Message  string `json:"message"`
}

// UpdateStateLog handles PUT /common/updateStateLog: writes the new state to
// the item or component and appends one audit record after responding.
func UpdateStateLog(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor := utils.UserFromRequest(r)

	var input stateUpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	id, err := primitive.ObjectIDFromHex(input.ItemID)
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid item id.")
		return
	}

	status := NormalizeStatus(input.Status)

	coll := db.ComponentCollection
	if input.ItemType == "item" {
		coll = db.ItemCollection
	}

	res := coll.FindOneAndUpdate(r.Context(),
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"currentState": status, "updatedAt": time.Now()}},
	)
	if err := res.Err(); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.SendError(w, http.StatusNotFound, "Device not found.")
			return
		}
		log.Printf("state update failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error while updating device.")
		return
	}

	utils.SendSuccess(w, http.StatusOK, "Device status updated successfully.", nil)

	message := input.Message
	if message == "" {
		message = fmt.Sprintf("Device marked as %s", status)
	}
	entry := models.Log{
		ItemID:    id,
		ItemType:  input.ItemType,
		Operation: status,
		Message:   message,
	}
	if actor != nil {
		entry.UserID = actor.ID
	} else {
		log.Printf("state update without resolved actor for %s", input.ItemID)
	}
	go Append(entry)
}
