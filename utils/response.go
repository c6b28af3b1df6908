package utils

import (
	"encoding/json"
	"net/http"
)

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// SendSuccess writes the uniform success envelope.
func SendSuccess(w http.ResponseWriter, status int, message string, data any) {
	if data == nil {
		data = map[string]any{}
	}
	RespondWithJSON(w, status, map[string]any{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// SendError writes the uniform error envelope. The data field is omitted.
func SendError(w http.ResponseWriter, status int, message string) {
	RespondWithJSON(w, status, map[string]any{
		"success": false,
		"message": message,
	})
}

type M map[string]interface{}
