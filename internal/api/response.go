// Package api provides HTTP response utilities for CurioGate.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/curiogate/curiogate/internal/models"
)

// fallbackBody is served when marshaling a response fails. It mirrors the
// models.APIResponse error shape so clients can parse it like any other reply.
const fallbackBody = `{"status":"error","message":"Internal server error"}`

// writeJSONResponse marshals response and writes it with the given status
// code. Marshaling happens before any header is written so an encoding
// failure can still be reported as a 500.
func writeJSONResponse(w http.ResponseWriter, statusCode int, response interface{}) {
	body, err := json.Marshal(response)
	if err != nil {
		slog.Error("Server.writeJSONResponse: failed to marshal JSON response", "error", err)
		body = []byte(fallbackBody)
		statusCode = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, writeErr := w.Write(body); writeErr != nil {
		slog.Error("Server.writeJSONResponse: failed to write JSON response", "error", writeErr)
	}
}

// writeError writes a models.APIResponse error with the given message.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSONResponse(w, statusCode, models.Error(message))
}
