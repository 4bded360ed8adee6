package response

import (
	"encoding/json"
	"net/http"
)

// JSON writes an envelope with message and data
func JSON(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Envelope{Message: message, Data: data})
}

// Message writes an envelope with a message only
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, message, nil)
}
