package labs

import (
	"log"
	"net/http"

	"labstock/db"
	"labstock/models"
	"labstock/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// SearchLab handles GET /common/searchLab?lab=<q>: case-insensitive
// substring match on the lab name. When the filtered result is empty and
// the query carries the @all sentinel, the full listing comes back instead.
func SearchLab(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	name := r.URL.Query().Get("lab")

	result, err := utils.FindAndDecode[models.Lab](r.Context(), db.LabCollection,
		utils.RegexFilter("name", name))
	if err != nil {
		log.Printf("lab search failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error occurred")
		return
	}

	if len(result) == 0 && utils.IsAllSentinel(name) {
		result, err = utils.FindAndDecode[models.Lab](r.Context(), db.LabCollection, bson.M{})
		if err != nil {
			log.Printf("lab search fallback failed: %v", err)
			utils.SendError(w, http.StatusInternalServerError, "Server error occurred")
			return
		}
	}

	utils.SendSuccess(w, http.StatusOK, "Here is the search Result", result)
}

// SearchLabToInsert handles GET /common/searchLabToInsert?lab=<q>. Staff
// callers only see labs they belong to; admins see everything. Same @all
// fallback as SearchLab, with the staff scoping kept on the fallback path.
func SearchLabToInsert(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user := utils.UserFromRequest(r)
	name := r.URL.Query().Get("lab")

	query := utils.RegexFilter("name", name)
	if user.IsStaff() {
		query["staffs"] = user.ID
	}

	result, err := utils.FindAndDecode[models.Lab](r.Context(), db.LabCollection, query)
	if err != nil {
		log.Printf("lab search failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error occurred")
		return
	}

	if len(result) == 0 && utils.IsAllSentinel(name) {
		fallback := bson.M{}
		if user.IsStaff() {
			fallback["staffs"] = user.ID
		}
		result, err = utils.FindAndDecode[models.Lab](r.Context(), db.LabCollection, fallback)
		if err != nil {
			log.Printf("lab search fallback failed: %v", err)
			utils.SendError(w, http.StatusInternalServerError, "Server error occurred")
			return
		}
	}

	utils.SendSuccess(w, http.StatusOK, "Here is the search Result", result)
}
