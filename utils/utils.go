package utils

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

func GetUUID() string {
	return uuid.New().String()
}

// DelayHandler sleeps for ?delay= milliseconds and answers with a success or
// error envelope depending on ?type=. Kept as a frontend testing aid.
func DelayHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	delay, err := strconv.Atoi(r.URL.Query().Get("delay"))
	if err != nil || delay <= 0 {
		delay = 1000
	}
	if delay > 30000 {
		delay = 30000
	}

	select {
	case <-time.After(time.Duration(delay) * time.Millisecond):
	case <-r.Context().Done():
		return
	}

	if r.URL.Query().Get("type") == "error" {
		SendError(w, http.StatusOK, "Delay api message")
		return
	}
	SendSuccess(w, http.StatusOK, "Delay api success message", nil)
}
