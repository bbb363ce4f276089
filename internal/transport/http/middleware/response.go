package middleware

import (
	"encoding/json"
	"net/http"
)

// writeJSONError is the error shape the auth, admin, and rate-limit
// middleware emit, matching the handlers' MessageEnvelope error field.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
