package items

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"labstock/config"
	"labstock/db"
	"labstock/models"
	"labstock/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// signQRPayload returns itemID|labID|timestamp|signature so a scanned label
// can be verified against the signing key.
func signQRPayload(itemID, labID string) string {
	data := fmt.Sprintf("%s|%s|%d", itemID, labID, time.Now().Unix())
	h := hmac.New(sha256.New, config.JwtSecret)
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("%s|%s", data, sig)
}

// DeviceQR handles GET /common/items/:itemId/qr and writes a PNG label.
// An optional ?size= overrides the default 256px edge.
func DeviceQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("itemId"))
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid item id.")
		return
	}

	var item models.Item
	if err := db.ItemCollection.FindOne(r.Context(), bson.M{"_id": id}).Decode(&item); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.SendError(w, http.StatusNotFound, "Device not found.")
			return
		}
		utils.SendError(w, http.StatusInternalServerError, "Server error while retrieving device.")
		return
	}

	size := 256
	if s := r.URL.Query().Get("size"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 64 && n <= 1024 {
			size = n
		}
	}

	payload := signQRPayload(item.ID.Hex(), item.LabID.Hex())
	png, err := qrcode.Encode(payload, qrcode.Medium, size)
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to generate QR code.")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("inline; filename=device-%s.png", item.ID.Hex()))
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
