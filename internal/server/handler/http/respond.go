// Package http provides the HTTP handlers and routing for the PassVault API.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vknyazev/passvault/internal/service"
)

// writeJSON encodes v as the response body with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the canonical {"error": message} body.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeMessage writes the canonical {"message": message} body.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeServiceError maps service-level failures onto the API error
// contract. Unknown errors surface as 500 with the error text as-is.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusBadRequest, "User already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, "Invalid credentials")
	case errors.Is(err, service.ErrVaultNotFound):
		writeError(w, http.StatusNotFound, "Vault not found")
	case errors.Is(err, service.ErrItemNotFound):
		writeError(w, http.StatusNotFound, "Item not found")
	case errors.Is(err, service.ErrFolderNotFound):
		writeError(w, http.StatusNotFound, "Folder not found")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
