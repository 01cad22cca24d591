package response

import (
	"encoding/json"
	"net/http"

	"github.com/ai-discovery/discovery-backend/internal/entity"
)

// JSON writes a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		// Headers are already sent, nothing useful can be done on failure
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Error writes {"detail": ...} with the given status
func Error(w http.ResponseWriter, status int, detail string) {
	JSON(w, status, entity.ErrorResponse{Detail: detail})
}

// Success writes a 200 OK response
func Success(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// NoContent writes a 204 No Content response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
