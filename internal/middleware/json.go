package middleware

import (
	"encoding/json"
	"net/http"

	"sportify-admin/internal/model"
)

// writeError writes the same failure envelope the backend uses, so the
// dashboard handles edge errors and API errors alike.
func writeError(w http.ResponseWriter, status int, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.Envelope[any]{
		Success: false,
		Error:   &model.ErrorBody{Code: code, Message: message},
	})
}
