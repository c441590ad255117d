package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/vknyazev/passvault/internal/middleware"
	"github.com/vknyazev/passvault/internal/models"
)

// VaultService defines the interface for vault operations required by the
// HTTP handlers.
type VaultService interface {
	// List returns all vaults owned by the user.
	List(ctx context.Context, userID string) ([]models.Vault, error)
	// Create makes a new vault owned by the user.
	Create(ctx context.Context, userID, name string) (*models.Vault, error)
}

// VaultHandler handles HTTP requests for vault listing and creation.
type VaultHandler struct {
	VaultService VaultService
}

// List handles GET /api/vaults and responds with every vault the
// authenticated user owns.
func (h *VaultHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	vaults, err := h.VaultService.List(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if vaults == nil {
		vaults = []models.Vault{}
	}
	writeJSON(w, http.StatusOK, vaults)
}

// Create handles POST /api/vaults. It expects a JSON body with a
// non-empty "name" and responds with 201 and the new vault's id and name.
func (h *VaultHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "Vault name is required")
		return
	}

	vault, err := h.VaultService.Create(r.Context(), user.ID, req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": vault.ID, "name": vault.Name})
}
