package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vknyazev/passvault/internal/middleware"
	"github.com/vknyazev/passvault/internal/models"
)

// FolderService defines the interface for folder and association
// operations required by the HTTP handlers.
type FolderService interface {
	// List returns all folders owned by the user.
	List(ctx context.Context, userID string) ([]models.Folder, error)
	// Create makes a new folder owned by the user.
	Create(ctx context.Context, userID, name string) (*models.Folder, error)
	// AddItem links an item to a folder; reports whether the link is new.
	AddItem(ctx context.Context, userID, itemID, folderID string) (bool, error)
	// RemoveItem unlinks an item from a folder.
	RemoveItem(ctx context.Context, userID, itemID, folderID string) error
	// ListItems returns the user's items linked to a folder.
	ListItems(ctx context.Context, userID, folderID string) ([]models.Item, error)
}

// FolderHandler handles HTTP requests for folders and item-folder
// associations.
type FolderHandler struct {
	FolderService FolderService
}

// List handles GET /api/folders.
func (h *FolderHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	folders, err := h.FolderService.List(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if folders == nil {
		folders = []models.Folder{}
	}
	writeJSON(w, http.StatusOK, folders)
}

// Create handles POST /api/folders. It expects a JSON body with a
// non-empty "name" and responds with 201 and the new folder's id and name.
func (h *FolderHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "Folder name is required")
		return
	}

	folder, err := h.FolderService.Create(r.Context(), user.ID, req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": folder.ID, "name": folder.Name})
}

// AddItem handles POST /api/items/{itemID}/folders/{folderID}.
// A fresh link responds 201; adding an already linked pair is a
// successful no-op and responds 200.
func (h *FolderHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	itemID := chi.URLParam(r, "itemID")
	folderID := chi.URLParam(r, "folderID")

	added, err := h.FolderService.AddItem(r.Context(), user.ID, itemID, folderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if !added {
		writeMessage(w, http.StatusOK, "Item already in folder")
		return
	}
	writeMessage(w, http.StatusCreated, "Item added to folder successfully")
}

// RemoveItem handles DELETE /api/items/{itemID}/folders/{folderID}.
// Removing an association that does not exist still succeeds.
func (h *FolderHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	itemID := chi.URLParam(r, "itemID")
	folderID := chi.URLParam(r, "folderID")

	if err := h.FolderService.RemoveItem(r.Context(), user.ID, itemID, folderID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Item removed from folder successfully")
}

// ListItems handles GET /api/folders/{folderID}/items.
func (h *FolderHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	folderID := chi.URLParam(r, "folderID")

	items, err := h.FolderService.ListItems(r.Context(), user.ID, folderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if items == nil {
		items = []models.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}
