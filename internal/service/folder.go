package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/vknyazev/passvault/internal/models"
	"github.com/vknyazev/passvault/internal/repository"
)

// FolderRepository defines the persistence operations needed by the
// folder service.
type FolderRepository interface {
	// GetByUser retrieves all folders belonging to the specified user.
	GetByUser(ctx context.Context, userID string) ([]models.Folder, error)
	// Create inserts a new folder.
	Create(ctx context.Context, folder *models.Folder) error
	// GetByIDAndUser fetches a folder by id scoped to its owner,
	// repository.ErrNotFound otherwise.
	GetByIDAndUser(ctx context.Context, id, userID string) (*models.Folder, error)
	// AddItem idempotently links an item to a folder. Reports whether a
	// new link was created.
	AddItem(ctx context.Context, itemID, folderID string) (bool, error)
	// RemoveItem unlinks an item from a folder; absent links are a no-op.
	RemoveItem(ctx context.Context, itemID, folderID string) error
}

// FolderService implements folder and item-folder association logic.
// Association operations verify ownership of both sides, item first.
type FolderService struct {
	folders FolderRepository
	items   ItemRepository
}

// NewFolderService constructs a FolderService over the folder and item
// repositories.
func NewFolderService(folders FolderRepository, items ItemRepository) *FolderService {
	return &FolderService{folders: folders, items: items}
}

// List returns all folders owned by the user.
func (s *FolderService) List(ctx context.Context, userID string) ([]models.Folder, error) {
	return s.folders.GetByUser(ctx, userID)
}

// Create makes a new folder owned by the user.
func (s *FolderService) Create(ctx context.Context, userID, name string) (*models.Folder, error) {
	now := time.Now().UTC()
	folder := &models.Folder{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.folders.Create(ctx, folder); err != nil {
		return nil, err
	}
	return folder, nil
}

// checkPair verifies that both the item and the folder belong to the user.
// The item is checked first; the first failing side decides the error.
func (s *FolderService) checkPair(ctx context.Context, userID, itemID, folderID string) error {
	if _, err := s.items.GetByIDAndUser(ctx, itemID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrItemNotFound
		}
		return err
	}
	if _, err := s.folders.GetByIDAndUser(ctx, folderID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrFolderNotFound
		}
		return err
	}
	return nil
}

// AddItem links an item to a folder. Both must belong to the user.
// Returns true when a new association was created, false when the pair
// was already linked; both outcomes are success.
func (s *FolderService) AddItem(ctx context.Context, userID, itemID, folderID string) (bool, error) {
	if err := s.checkPair(ctx, userID, itemID, folderID); err != nil {
		return false, err
	}
	return s.folders.AddItem(ctx, itemID, folderID)
}

// RemoveItem unlinks an item from a folder. Both must belong to the user;
// removing a link that does not exist still succeeds.
func (s *FolderService) RemoveItem(ctx context.Context, userID, itemID, folderID string) error {
	if err := s.checkPair(ctx, userID, itemID, folderID); err != nil {
		return err
	}
	return s.folders.RemoveItem(ctx, itemID, folderID)
}

// ListItems returns the user's items linked to the folder. The folder must
// exist and belong to the user.
func (s *FolderService) ListItems(ctx context.Context, userID, folderID string) ([]models.Item, error) {
	if _, err := s.folders.GetByIDAndUser(ctx, folderID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFolderNotFound
		}
		return nil, err
	}
	return s.items.GetByFolder(ctx, folderID, userID)
}
