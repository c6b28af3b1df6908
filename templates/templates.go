package templates

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
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

type templateInput struct {
	ID        string                 `json:"id"`
	Category  string                 `json:"category"`
	DataModel []models.TemplateField `json:"dataModel"`
}

func validateDataModel(fields []models.TemplateField) error {
	for _, f := range fields {
		if err := f.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// AddTemplate handles POST /admin/templates. Categories are stored
// lowercased and must be unique.
func AddTemplate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	admin := utils.UserFromRequest(r)

	var input templateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Category == "" {
		utils.SendError(w, http.StatusBadRequest, "Template category is required.")
		return
	}
	if err := validateDataModel(input.DataModel); err != nil {
		utils.SendError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now()
	tpl := models.Template{
		Category:  strings.ToLower(input.Category),
		CreatedBy: admin.ID,
		DataModel: input.DataModel,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if tpl.DataModel == nil {
		tpl.DataModel = []models.TemplateField{}
	}

	res, err := db.TemplateCollection.InsertOne(r.Context(), tpl)
	if err != nil {
		if db.IsDup(err) {
			utils.SendError(w, http.StatusConflict, "A template with this category already exists.")
			return
		}
		log.Printf("template insert failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error while creating template.")
		return
	}
	tpl.ID = res.InsertedID.(primitive.ObjectID)

	utils.SendSuccess(w, http.StatusCreated, "Template created successfully.", tpl)
}

// UpdateTemplate handles PUT /admin/update-template. The target id travels
// in the body, matching the create/delete pair.
func UpdateTemplate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input templateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	id, err := primitive.ObjectIDFromHex(input.ID)
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid template id.")
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if input.Category != "" {
		update["category"] = strings.ToLower(input.Category)
	}
	if input.DataModel != nil {
		if err := validateDataModel(input.DataModel); err != nil {
			utils.SendError(w, http.StatusBadRequest, err.Error())
			return
		}
		update["dataModel"] = input.DataModel
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var tpl models.Template
	err = db.TemplateCollection.FindOneAndUpdate(r.Context(),
		bson.M{"_id": id}, bson.M{"$set": update}, opts).Decode(&tpl)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.SendError(w, http.StatusNotFound, "Template not found.")
			return
		}
		if db.IsDup(err) {
			utils.SendError(w, http.StatusConflict, "A template with this category already exists.")
			return
		}
		log.Printf("template update failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error while updating template.")
		return
	}

	utils.SendSuccess(w, http.StatusOK, "Template updated successfully.", tpl)
}

// DeleteTemplate handles DELETE /admin/delete-template. Items keep their
// templateId reference; lookups on a deleted template return 404.
func DeleteTemplate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input templateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	id, err := primitive.ObjectIDFromHex(input.ID)
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid template id.")
		return
	}

	res, err := db.TemplateCollection.DeleteOne(r.Context(), bson.M{"_id": id})
	if err != nil {
		log.Printf("template delete failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error while deleting template.")
		return
	}
	if res.DeletedCount == 0 {
		utils.SendError(w, http.StatusNotFound, "Template not found.")
		return
	}

	utils.SendSuccess(w, http.StatusOK, "Template deleted successfully.", utils.M{"templateId": id})
}

// SearchTemplate handles GET /common/searchTemplate?template=. A category
// match is a case-insensitive substring; an empty result for the @all
// sentinel falls back to the full listing.
func SearchTemplate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	category := r.URL.Query().Get("template")

	filter := bson.M{}
	if category != "" && !utils.IsAllSentinel(category) {
		filter = utils.RegexFilter("category", category)
	}

	tpls, err := utils.FindAndDecode[models.Template](r.Context(), db.TemplateCollection, filter)
	if err != nil {
		log.Printf("template search failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error while searching templates.")
		return
	}

	if len(tpls) == 0 && utils.IsAllSentinel(category) {
		tpls, err = utils.FindAndDecode[models.Template](r.Context(), db.TemplateCollection, bson.M{})
		if err != nil {
			utils.SendError(w, http.StatusInternalServerError, "Server error while searching templates.")
			return
		}
	}

	utils.SendSuccess(w, http.StatusOK, "Templates retrieved successfully.", tpls)
}

// GetTemplateByID handles GET /common/templates/:templateId.
func GetTemplateByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("templateId"))
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid template id.")
		return
	}

	var tpl models.Template
	if err := db.TemplateCollection.FindOne(r.Context(), bson.M{"_id": id}).Decode(&tpl); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.SendError(w, http.StatusNotFound, "Template not found.")
			return
		}
		utils.SendError(w, http.StatusInternalServerError, "Server error while retrieving template.")
		return
	}

	utils.SendSuccess(w, http.StatusOK, "Template retrieved successfully.", tpl)
}
