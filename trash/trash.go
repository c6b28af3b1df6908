package trash

import (
	"context"
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

// The trash container is a singleton document keyed by name. Parked
// references stay retrievable until an operator empties the bin by hand.
const trashName = "trash"

func ensure(ctx context.Context) (primitive.ObjectID, error) {
	now := time.Now()
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var t models.Trash
	err := db.TrashCollection.FindOneAndUpdate(ctx,
		bson.M{"name": trashName},
		bson.M{
			"$setOnInsert": bson.M{
				"name":       trashName,
				"type":       "system",
				"dept":       "system",
				"items":      []primitive.ObjectID{},
				"components": []primitive.ObjectID{},
				"createdAt":  now,
			},
			"$set": bson.M{"updatedAt": now},
		}, opts).Decode(&t)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return t.ID, nil
}

func park(ctx context.Context, field string, id primitive.ObjectID) error {
	trashID, err := ensure(ctx)
	if err != nil {
		return err
	}
	_, err = db.TrashCollection.UpdateOne(ctx,
		bson.M{"_id": trashID},
		bson.M{"$addToSet": bson.M{field: id}})
	return err
}

// ParkItem records a deleted item's id in the trash container.
func ParkItem(ctx context.Context, id primitive.ObjectID) error {
	return park(ctx, "items", id)
}

// ParkComponent records a deleted component's id in the trash container.
func ParkComponent(ctx context.Context, id primitive.ObjectID) error {
	return park(ctx, "components", id)
}

// GetTrash handles GET /admin/trash.
func GetTrash(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var t models.Trash
	err := db.TrashCollection.FindOne(r.Context(), bson.M{"name": trashName}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		utils.SendSuccess(w, http.StatusOK, "Trash is empty.", utils.M{
			"items":      []primitive.ObjectID{},
			"components": []primitive.ObjectID{},
		})
		return
	}
	if err != nil {
		log.Printf("trash find failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error while retrieving trash.")
		return
	}
	utils.SendSuccess(w, http.StatusOK, "Trash retrieved successfully.", t)
}
