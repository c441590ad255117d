package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/vknyazev/passvault/internal/models"
	"github.com/vknyazev/passvault/internal/repository"
)

// ItemRepository defines the persistence operations needed by the item
// and folder services.
type ItemRepository interface {
	// GetByVault retrieves all items in a vault scoped to the owner.
	GetByVault(ctx context.Context, vaultID, userID string) ([]models.Item, error)
	// Create inserts a new item.
	Create(ctx context.Context, item *models.Item) error
	// GetByIDAndUser fetches an item by id scoped to its owner,
	// repository.ErrNotFound otherwise.
	GetByIDAndUser(ctx context.Context, id, userID string) (*models.Item, error)
	// Update rewrites the mutable item columns.
	Update(ctx context.Context, item *models.Item) error
	// Delete removes an item by id.
	Delete(ctx context.Context, id string) error
	// GetByFolder retrieves the user's items linked to a folder.
	GetByFolder(ctx context.Context, folderID, userID string) ([]models.Item, error)
	// Search retrieves the user's items by name substring and optional type.
	Search(ctx context.Context, userID, query, itemType string) ([]models.Item, error)
}

// ItemPatch carries the optional fields of a partial item update.
// Type, Name and Data are applied when non-zero; Favorite is applied
// whenever present, so an explicit false is honored.
type ItemPatch struct {
	Type     string
	Name     string
	Data     json.RawMessage
	Favorite *bool
}

// ItemService implements item business logic: every operation verifies the
// ownership chain before touching the item store.
type ItemService struct {
	items  ItemRepository
	vaults VaultRepository
}

// NewItemService constructs an ItemService over the item and vault
// repositories.
func NewItemService(items ItemRepository, vaults VaultRepository) *ItemService {
	return &ItemService{items: items, vaults: vaults}
}

// checkVault verifies the vault exists and belongs to userID.
func (s *ItemService) checkVault(ctx context.Context, vaultID, userID string) error {
	if _, err := s.vaults.GetByIDAndUser(ctx, vaultID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrVaultNotFound
		}
		return err
	}
	return nil
}

// ListByVault returns all items in the vault. The vault must exist and be
// owned by the user; absence and foreign ownership both yield
// ErrVaultNotFound.
func (s *ItemService) ListByVault(ctx context.Context, userID, vaultID string) ([]models.Item, error) {
	if err := s.checkVault(ctx, vaultID, userID); err != nil {
		return nil, err
	}
	return s.items.GetByVault(ctx, vaultID, userID)
}

// Create stores a new item in the vault after re-verifying vault ownership.
// The payload is kept as the exact JSON the caller sent.
func (s *ItemService) Create(ctx context.Context, userID, vaultID, itemType, name string, data json.RawMessage, favorite bool) (*models.Item, error) {
	if err := s.checkVault(ctx, vaultID, userID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item := &models.Item{
		ID:        uuid.NewString(),
		VaultID:   vaultID,
		UserID:    userID,
		Type:      itemType,
		Name:      name,
		Favorite:  favorite,
		Data:      data,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Get fetches a single item owned by the user.
func (s *ItemService) Get(ctx context.Context, userID, itemID string) (*models.Item, error) {
	item, err := s.items.GetByIDAndUser(ctx, itemID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrItemNotFound
	}
	return item, err
}

// Update applies a partial patch to an item the user owns, refreshes
// updated_at, and returns the item re-read from the store.
func (s *ItemService) Update(ctx context.Context, userID, itemID string, patch ItemPatch) (*models.Item, error) {
	item, err := s.items.GetByIDAndUser(ctx, itemID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	if patch.Type != "" {
		item.Type = patch.Type
	}
	if patch.Name != "" {
		item.Name = patch.Name
	}
	if len(patch.Data) > 0 {
		item.Data = patch.Data
	}
	// Presence check, not truthiness: {"favorite": false} must clear the flag.
	if patch.Favorite != nil {
		item.Favorite = *patch.Favorite
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}

	updated, err := s.items.GetByIDAndUser(ctx, itemID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrItemNotFound
	}
	return updated, err
}

// Delete removes an item the user owns. Once ownership holds the removal
// is unconditional.
func (s *ItemService) Delete(ctx context.Context, userID, itemID string) error {
	if _, err := s.items.GetByIDAndUser(ctx, itemID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrItemNotFound
		}
		return err
	}
	return s.items.Delete(ctx, itemID)
}

// Search returns the user's items whose name contains query, optionally
// filtered by exact type. An empty query matches everything.
func (s *ItemService) Search(ctx context.Context, userID, query, itemType string) ([]models.Item, error) {
	return s.items.Search(ctx, userID, query, itemType)
}
