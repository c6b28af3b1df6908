package components

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

type componentInput struct {
	Name     string `json:"name"`
	Key      string `json:"key"`
	Value    string `json:"value"`
	Category string `json:"category"`
	DataType string `json:"dataType"`
	LabID    string `json:"labId"`
}

// CreateComponent handles POST /admin/components. The component is attached
// to its lab's components array with a second write.
func CreateComponent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	admin := utils.UserFromRequest(r)

	var input componentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Name == "" || input.Key == "" || input.LabID == "" {
		utils.SendError(w, http.StatusBadRequest, "Component name, key, and lab are required.")
		return
	}
	if input.DataType != "" && !models.ValidDataType(input.DataType) {
		utils.SendError(w, http.StatusBadRequest, "Invalid data type.")
		return
	}

	labID, err := primitive.ObjectIDFromHex(input.LabID)
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid lab id.")
		return
	}

	now := time.Now()
	comp := models.Component{
		Name:         input.Name,
		Key:          input.Key,
		Value:        input.Value,
		Category:     input.Category,
		DataType:     input.DataType,
		CurrentState: models.StateWorking,
		CreatedBy:    admin.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	res, err := db.ComponentCollection.InsertOne(r.Context(), comp)
	if err != nil {
		log.Printf("component insert failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error while creating component.")
		return
	}
	comp.ID = res.InsertedID.(primitive.ObjectID)

	if _, err := db.LabCollection.UpdateOne(r.Context(),
		bson.M{"_id": labID},
		bson.M{"$addToSet": bson.M{"components": comp.ID}}); err != nil {
		log.Printf("component %s created but lab attach failed: %v", comp.ID.Hex(), err)
		utils.SendError(w, http.StatusInternalServerError,
			"Component created, but attaching it to the lab failed.")
		return
	}

	utils.SendSuccess(w, http.StatusCreated, "Component created successfully.", utils.M{
		"componentId": comp.ID,
		"name":        comp.Name,
		"key":         comp.Key,
	})
}

// UpdateComponent handles PUT /admin/components/:componentId — partial update.
func UpdateComponent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("componentId"))
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid component id.")
		return
	}

	var input componentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.DataType != "" && !models.ValidDataType(input.DataType) {
		utils.SendError(w, http.StatusBadRequest, "Invalid data type.")
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if input.Name != "" {
		update["name"] = input.Name
	}
	if input.Key != "" {
		update["key"] = input.Key
	}
	if input.Value != "" {
		update["value"] = input.Value
	}
	if input.Category != "" {
		update["category"] = input.Category
	}
	if input.DataType != "" {
		update["dataType"] = input.DataType
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var comp models.Component
	err = db.ComponentCollection.FindOneAndUpdate(r.Context(),
		bson.M{"_id": id}, bson.M{"$set": update}, opts).Decode(&comp)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.SendError(w, http.StatusNotFound, "Component not found.")
			return
		}
		log.Printf("component update failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error while updating component.")
		return
	}

	utils.SendSuccess(w, http.StatusOK, "Component updated successfully.", comp)
}

// DeleteComponent handles DELETE /admin/components/:componentId. Detaches
// the component from any lab and item lists referring to it; ?trash=true
// parks the reference in the trash container.
func DeleteComponent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("componentId"))
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid component id.")
		return
	}

	var comp models.Component
	if err := db.ComponentCollection.FindOneAndDelete(r.Context(), bson.M{"_id": id}).Decode(&comp); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.SendError(w, http.StatusNotFound, "Component not found.")
			return
		}
		log.Printf("component delete failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error while deleting component.")
		return
	}

	var detachErr error
	if _, err := db.LabCollection.UpdateMany(r.Context(),
		bson.M{"components": id},
		bson.M{"$pull": bson.M{"components": id}}); err != nil {
		detachErr = err
	}
	if _, err := db.ItemCollection.UpdateMany(r.Context(),
		bson.M{"componentList": id},
		bson.M{"$pull": bson.M{"componentList": id}}); err != nil {
		detachErr = err
	}
	if detachErr != nil {
		log.Printf("component %s deleted but detach failed: %v", id.Hex(), detachErr)
		utils.SendError(w, http.StatusInternalServerError,
			"Component deleted, but removing its references failed.")
		return
	}

	if r.URL.Query().Get("trash") == "true" {
		if err := trash.ParkComponent(r.Context(), id); err != nil {
			log.Printf("component %s deleted but trash park failed: %v", id.Hex(), err)
		}
	}

	utils.SendSuccess(w, http.StatusOK, "Component deleted successfully.", utils.M{"componentId": id})
}

// GetComponentSummary handles GET /common/components/:componentId — slim shape.
func GetComponentSummary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("componentId"))
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid component id.")
		return
	}

	var comp models.ComponentSummary
	if err := db.ComponentCollection.FindOne(r.Context(), bson.M{"_id": id}).Decode(&comp); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.SendError(w, http.StatusNotFound, "Component not found.")
			return
		}
		utils.SendError(w, http.StatusInternalServerError, "Server error while retrieving component.")
		return
	}

	utils.SendSuccess(w, http.StatusCreated, "found data", comp)
}

// CountComponents handles GET /common/countComponents?currentState=<state|all>.
func CountComponents(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := bson.M{}
	if state := r.URL.Query().Get("currentState"); state != "" && state != "all" {
		filter["currentState"] = state
	}

	total, err := db.ComponentCollection.CountDocuments(r.Context(), filter)
	if err != nil {
		log.Printf("components count failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error while counting components.")
		return
	}
	utils.SendSuccess(w, http.StatusOK, "Count retrieved successfully.", utils.M{"total": total})
}
