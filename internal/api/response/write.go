package response

import (
	"encoding/json"
	"net/http"
)

// JSON writes data as a JSON body with the given status. A nil data
// value sends the status line alone.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// NoContent answers with 204 and an empty body
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
