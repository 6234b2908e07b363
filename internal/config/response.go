package config

import (
	"encoding/json"
	"net/http"
)

func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		Logger.WithError(err).Error("Failed to encode JSON response")
	}
}

// Error writes the {success:false, error} envelope shared by every handler.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

// InternalError writes a 500 envelope. The underlying error is only exposed
// when the server runs in development mode.
func InternalError(w http.ResponseWriter, message string, err error, devMode bool) {
	body := map[string]interface{}{
		"success": false,
		"error":   message,
	}
	if devMode && err != nil {
		body["details"] = err.Error()
	}
	JSON(w, http.StatusInternalServerError, body)
}
