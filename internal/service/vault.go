package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vknyazev/passvault/internal/models"
)

// VaultRepository defines the persistence operations needed by the
// vault and item services.
type VaultRepository interface {
	// GetByUser retrieves all vaults belonging to the specified user.
	GetByUser(ctx context.Context, userID string) ([]models.Vault, error)
	// Create inserts a new vault.
	Create(ctx context.Context, vault *models.Vault) error
	// GetByIDAndUser fetches a vault by id scoped to its owner,
	// repository.ErrNotFound otherwise.
	GetByIDAndUser(ctx context.Context, id, userID string) (*models.Vault, error)
}

// VaultService implements vault business logic for a single
// authenticated user.
type VaultService struct {
	repo VaultRepository
}

// NewVaultService constructs a VaultService with the provided repository.
func NewVaultService(repo VaultRepository) *VaultService {
	return &VaultService{repo: repo}
}

// List returns all vaults owned by the user.
func (s *VaultService) List(ctx context.Context, userID string) ([]models.Vault, error) {
	return s.repo.GetByUser(ctx, userID)
}

// Create makes a new vault owned by the user.
func (s *VaultService) Create(ctx context.Context, userID, name string) (*models.Vault, error) {
	now := time.Now().UTC()
	vault := &models.Vault{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, vault); err != nil {
		return nil, err
	}
	return vault, nil
}
