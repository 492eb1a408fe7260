// internal/controller/respond.go
package controller

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	appErrors "github.com/unclebandit/simple-crm/internal/errors"
)

// MessageResponse is the body of every non-entity response.
type MessageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, MessageResponse{Message: message})
}

// writeError maps service errors to HTTP responses.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case appErrors.IsNotFound(err):
		writeMessage(w, http.StatusNotFound, "Customer not found")
	case appErrors.IsValidation(err):
		writeMessage(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error("request failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}
