package logsvc

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"labstock/db"
	"labstock/live"
	"labstock/models"
	"labstock/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Append writes one audit record and publishes it to the live stream.
// Fire-and-forget: callers run it after the response went out, and a failed
// insert is only logged.
func Append(entry models.Log) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	entry.UpdatedAt = entry.CreatedAt

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := db.LogCollection.InsertOne(ctx, entry)
	if err != nil {
		log.Printf("audit log write failed: %v", err)
		return
	}
	entry.ID, _ = res.InsertedID.(primitive.ObjectID)

	if data, err := json.Marshal(entry); err == nil {
		live.Publish(data)
	}
}

// GetLogs handles GET /common/logs and GET /admin/logs: newest first,
// paginated.
func GetLogs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	page, limit, skip := utils.ParsePagination(r, 10, 100)

	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(skip).
		SetLimit(limit)

	logs, err := utils.FindAndDecode[models.Log](r.Context(), db.LogCollection, bson.M{}, opts)
	if err != nil {
		log.Printf("logs find failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error while retrieving logs.")
		return
	}

	total, err := db.LogCollection.CountDocuments(r.Context(), bson.M{})
	if err != nil {
		log.Printf("logs count failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error while retrieving logs.")
		return
	}

	utils.SendSuccess(w, http.StatusOK, "Logs retrieved successfully.", utils.M{
		"logs":       logs,
		"pagination": utils.NewPagination(total, page, limit),
	})
}

// GetLog handles GET /common/logs/:id.
func GetLog(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid log id.")
		return
	}

	var entry models.Log
	if err := db.LogCollection.FindOne(r.Context(), bson.M{"_id": id}).Decode(&entry); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.SendError(w, http.StatusNotFound, "Log not found.")
			return
		}
		log.Printf("log find failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error while retrieving logs.")
		return
	}

	utils.SendSuccess(w, http.StatusOK, "Logs retrieved successfully.", entry)
}
