package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vknyazev/passvault/internal/middleware"
	"github.com/vknyazev/passvault/internal/models"
	"github.com/vknyazev/passvault/internal/service"
)

// ItemService defines the interface for item operations required by the
// HTTP handlers.
type ItemService interface {
	// ListByVault returns all items in a vault the user owns.
	ListByVault(ctx context.Context, userID, vaultID string) ([]models.Item, error)
	// Create stores a new item in a vault the user owns.
	Create(ctx context.Context, userID, vaultID, itemType, name string, data json.RawMessage, favorite bool) (*models.Item, error)
	// Get fetches a single item the user owns.
	Get(ctx context.Context, userID, itemID string) (*models.Item, error)
	// Update applies a partial patch and returns the re-read item.
	Update(ctx context.Context, userID, itemID string, patch service.ItemPatch) (*models.Item, error)
	// Delete removes an item the user owns.
	Delete(ctx context.Context, userID, itemID string) error
	// Search returns the user's items matching a name substring and
	// optional type filter.
	Search(ctx context.Context, userID, query, itemType string) ([]models.Item, error)
}

// ItemHandler handles HTTP requests for item CRUD and search.
type ItemHandler struct {
	ItemService ItemService
}

// payloadPresent reports whether a decoded data field carries an actual
// JSON value. A missing key and an explicit null both count as absent.
func payloadPresent(data json.RawMessage) bool {
	return len(data) > 0 && string(data) != "null"
}

// ListByVault handles GET /api/vaults/{vaultID}/items.
func (h *ItemHandler) ListByVault(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	vaultID := chi.URLParam(r, "vaultID")

	items, err := h.ItemService.ListByVault(r.Context(), user.ID, vaultID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if items == nil {
		items = []models.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

// Create handles POST /api/vaults/{vaultID}/items. Type, name and a data
// payload are required; favorite defaults to false. The stored payload is
// echoed back exactly as it was sent.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	vaultID := chi.URLParam(r, "vaultID")

	var req struct {
		Type     string          `json:"type"`
		Name     string          `json:"name"`
		Data     json.RawMessage `json:"data"`
		Favorite bool            `json:"favorite"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.Type == "" || req.Name == "" || !payloadPresent(req.Data) {
		writeError(w, http.StatusBadRequest, "Type, name and data are required")
		return
	}

	item, err := h.ItemService.Create(r.Context(), user.ID, vaultID, req.Type, req.Name, req.Data, req.Favorite)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// Get handles GET /api/items/{itemID}.
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	itemID := chi.URLParam(r, "itemID")

	item, err := h.ItemService.Get(r.Context(), user.ID, itemID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Update handles PUT /api/items/{itemID}. Only fields present in the body
// are applied; favorite uses a pointer so an explicit false is applied too.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	itemID := chi.URLParam(r, "itemID")

	var req struct {
		Type     string          `json:"type"`
		Name     string          `json:"name"`
		Data     json.RawMessage `json:"data"`
		Favorite *bool           `json:"favorite"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	patch := service.ItemPatch{
		Type:     req.Type,
		Name:     req.Name,
		Favorite: req.Favorite,
	}
	if payloadPresent(req.Data) {
		patch.Data = req.Data
	}

	item, err := h.ItemService.Update(r.Context(), user.ID, itemID, patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /api/items/{itemID} and responds with a
// confirmation message, not the deleted record.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	itemID := chi.URLParam(r, "itemID")

	if err := h.ItemService.Delete(r.Context(), user.ID, itemID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Item deleted successfully")
}

// Search handles GET /api/search?q=&type=. An empty q matches all of the
// user's items.
func (h *ItemHandler) Search(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	query := r.URL.Query().Get("q")
	itemType := r.URL.Query().Get("type")

	items, err := h.ItemService.Search(r.Context(), user.ID, query, itemType)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if items == nil {
		items = []models.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}
