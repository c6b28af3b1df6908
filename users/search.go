package users

import (
	"log"
	"net/http"
	"strings"

	"labstock/db"
	"labstock/models"
	"labstock/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// directedLookup resolves the @staff-/@admin- query forms:
// "@staff-all" lists every staff member, "@staff-<labId>" expands that lab's
// staffs, "@admin-all" lists the admins, "@admin-<userId>" looks up a single
// user. Malformed ids resolve to an empty list rather than an error.
func directedLookup(r *http.Request, query string) ([]models.UserSummary, error) {
	prefix, arg, _ := strings.Cut(query, "-")

	switch prefix {
	case "@staff":
		if arg == "all" {
			return utils.FindAndDecode[models.UserSummary](r.Context(),
				db.UserCollection, bson.M{"role": models.RoleStaff})
		}
		labID, err := primitive.ObjectIDFromHex(arg)
		if err != nil {
			return []models.UserSummary{}, nil
		}
		var lab models.Lab
		if err := db.LabCollection.FindOne(r.Context(), bson.M{"_id": labID}).Decode(&lab); err != nil {
			if err == mongo.ErrNoDocuments {
				return []models.UserSummary{}, nil
			}
			return nil, err
		}
		if len(lab.Staffs) == 0 {
			return []models.UserSummary{}, nil
		}
		return utils.FindAndDecode[models.UserSummary](r.Context(),
			db.UserCollection, bson.M{"_id": bson.M{"$in": lab.Staffs}})
	case "@admin":
		if arg == "all" {
			return utils.FindAndDecode[models.UserSummary](r.Context(),
				db.UserCollection, bson.M{"role": models.RoleAdmin})
		}
		userID, err := primitive.ObjectIDFromHex(arg)
		if err != nil {
			return []models.UserSummary{}, nil
		}
		var user models.UserSummary
		if err := db.UserCollection.FindOne(r.Context(), bson.M{"_id": userID}).Decode(&user); err != nil {
			if err == mongo.ErrNoDocuments {
				return []models.UserSummary{}, nil
			}
			return nil, err
		}
		return []models.UserSummary{user}, nil
	}
	return []models.UserSummary{}, nil
}

// SearchUser handles GET /common/searchUser?user=. A plain query is a
// case-insensitive email substring; queries starting with "@" use the
// directed lookup forms.
func SearchUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query().Get("user")

	var (
		result []models.UserSummary
		err    error
	)
	if strings.HasPrefix(query, "@") {
		result, err = directedLookup(r, query)
	} else {
		result, err = utils.FindAndDecode[models.UserSummary](r.Context(),
			db.UserCollection, utils.RegexFilter("email_address", query))
	}
	if err != nil {
		log.Printf("user search failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error while searching users.")
		return
	}

	utils.SendSuccess(w, http.StatusOK, "Here is the search result.", result)
}

// SearchUserWithFilter handles GET /common/searchUserWithFilter?user=&role=.
// Both parameters default to the @all sentinel, meaning unfiltered.
func SearchUserWithFilter(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	email := r.URL.Query().Get("user")
	if email == "" {
		email = utils.AllSentinel
	}
	role := r.URL.Query().Get("role")
	if role == "" {
		role = utils.AllSentinel
	}

	filter := bson.M{}
	if !utils.IsAllSentinel(email) {
		filter = utils.RegexFilter("email_address", email)
	}
	if !utils.IsAllSentinel(role) {
		filter["role"] = role
	}

	result, err := utils.FindAndDecode[models.UserSummary](r.Context(), db.UserCollection, filter)
	if err != nil {
		log.Printf("filtered user search failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Server error while searching users.")
		return
	}

	utils.SendSuccess(w, http.StatusOK, "Here is the search result.", result)
}
