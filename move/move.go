package move

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
)

// Container kinds a move can address.
const (
	ContainerLab  = "lab"
	ContainerItem = "item"
)

// Entity kinds a move can relocate.
const (
	KindItem      = "item"
	KindComponent = "component"
)

// fieldMap resolves (moved kind, container type) to the membership array on
// the container document. A missing entry means the combination is not a
// legal move.
var fieldMap = map[string]map[string]string{
	KindItem: {
		ContainerLab:  "items",      // lab.items
		ContainerItem: "deviceList", // device.deviceList
	},
	KindComponent: {
		ContainerLab:  "components",    // lab.components
		ContainerItem: "componentList", // device.componentList
	},
}

// ResolveField returns the array field for a kind×container pair.
func ResolveField(kind, container string) (string, error) {
	fields, ok := fieldMap[kind]
	if !ok {
		return "", fmt.Errorf("unknown entity kind %q", kind)
	}
	field, ok := fields[container]
	if !ok {
		return "", fmt.Errorf("kind %q cannot be moved on container %q", kind, container)
	}
	return field, nil
}

func collectionFor(container string) *mongo.Collection {
	switch container {
	case ContainerLab:
		return db.LabCollection
	case ContainerItem:
		return db.ItemCollection
	default:
		return nil
	}
}

type endpoint struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type payload struct {
	Type string          `json:"type"`
	ID   json.RawMessage `json:"id"` // single id or array of ids
}

type moveRequest struct {
	MoveFrom endpoint `json:"moveFrom"`
	MoveTo   endpoint `json:"moveTo"`
	Item     payload  `json:"item"`
}

// ids normalizes the payload id field to a slice.
func (p payload) ids() ([]string, error) {
	var many []string
	if err := json.Unmarshal(p.ID, &many); err == nil {
		return many, nil
	}
	var one string
	if err := json.Unmarshal(p.ID, &one); err == nil {
		return []string{one}, nil
	}
	return nil, fmt.Errorf("item.id must be a string or an array of strings")
}

// validate runs every check that does not require a database read.
func (req *moveRequest) validate() ([]string, error) {
	if req.MoveFrom.ID == req.MoveTo.ID {
		return nil, fmt.Errorf("Cannot move items to the same location.")
	}

	ids, err := req.Item.ids()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("No items to move.")
	}
	for _, id := range ids {
		if id == req.MoveTo.ID {
			return nil, fmt.Errorf("Cannot move items into themselves.")
		}
	}
	return ids, nil
}

// MoveItems handles PUT /common/move-items: pull the moved ids from the
// source container's array, push them onto the destination's. The two writes
// are independent; there is no transaction, and a failed push after a
// successful pull is reported but not rolled back.
func MoveItems(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor := utils.UserFromRequest(r)

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ids, err := req.validate()
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, err.Error())
		return
	}

	fromField, err := ResolveField(req.Item.Type, req.MoveFrom.Type)
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid move operation.")
		return
	}
	toField, err := ResolveField(req.Item.Type, req.MoveTo.Type)
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid move operation.")
		return
	}

	fromID, err := primitive.ObjectIDFromHex(req.MoveFrom.ID)
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid source id.")
		return
	}
	toID, err := primitive.ObjectIDFromHex(req.MoveTo.ID)
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid destination id.")
		return
	}

	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			utils.SendError(w, http.StatusBadRequest, "Invalid entity id.")
			return
		}
		oids = append(oids, oid)
	}

	fromColl, toColl := collectionFor(req.MoveFrom.Type), collectionFor(req.MoveTo.Type)

	pull := bson.M{"$pull": bson.M{fromField: bson.M{"$in": oids}}}
	res := fromColl.FindOneAndUpdate(r.Context(), bson.M{"_id": fromID}, pull)
	if res.Err() != nil {
		if res.Err() == mongo.ErrNoDocuments {
			utils.SendError(w, http.StatusNotFound, "Source container not found.")
			return
		}
		log.Printf("move pull failed: %v", res.Err())
		utils.SendError(w, http.StatusInternalServerError, "Server error while performing move operation.")
		return
	}

	push := bson.M{"$push": bson.M{toField: bson.M{"$each": oids}}}
	res = toColl.FindOneAndUpdate(r.Context(), bson.M{"_id": toID}, push)
	if res.Err() != nil {
		// The pull already landed; surface the partial state instead of
		// pretending nothing happened.
		log.Printf("move push failed after pull from %s: %v", req.MoveFrom.ID, res.Err())
		utils.SendError(w, http.StatusInternalServerError,
			"Move partially applied: items were removed from the source but not added to the destination.")
		return
	}

	utils.SendSuccess(w, http.StatusOK, "Items moved successfully.", nil)

	// Audit record after the response; failures are logged, never surfaced.
	entry := models.Log{
		Operation:  models.OpMoved,
		ItemType:   req.Item.Type,
		MoveFrom:   req.MoveFrom.Type,
		MoveFromID: fromID,
		MoveTo:     req.MoveTo.Type,
		MoveToID:   toID,
		MovedIDs:   ids,
		CreatedAt:  time.Now(),
	}
	if len(oids) == 1 {
		entry.ItemID = oids[0]
	}
	if actor != nil {
		entry.UserID = actor.ID
	}
	go logsvc.Append(entry)
}
